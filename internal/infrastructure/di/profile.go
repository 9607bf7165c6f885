package di

import (
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	profilecmd "github.com/Hiro-mackay/tripshare/internal/usecase/profile/command"
	profileqry "github.com/Hiro-mackay/tripshare/internal/usecase/profile/query"
)

// ProfileUseCases はProfile関連のUseCaseを保持します
type ProfileUseCases struct {
	// Queries
	GetProfile *profileqry.GetProfileQuery

	// Commands
	UpdateProfile *profilecmd.UpdateProfileCommand
}

// NewProfileUseCases は新しいProfileUseCasesを作成します
func NewProfileUseCases(profileRepo repository.UserProfileRepository, profiles service.ProfileResolver) *ProfileUseCases {
	return &ProfileUseCases{
		GetProfile:    profileqry.NewGetProfileQuery(profiles),
		UpdateProfile: profilecmd.NewUpdateProfileCommand(profileRepo, profiles),
	}
}
