package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/usecase/profile/query"
	"github.com/Hiro-mackay/tripshare/tests/testutil/mocks"
)

func TestGetProfileQuery_Execute_PassesClaimsToResolver(t *testing.T) {
	ctx := context.Background()
	profiles := mocks.NewMockProfileResolver(t)
	photo := "https://example.com/p.png"
	created := entity.NewUserProfile("uid-1", "Aiko", "aiko@example.com", &photo)

	profiles.On("GetOrCreate", ctx, mock.MatchedBy(func(c *entity.UserProfile) bool {
		return c.UserID == "uid-1" && c.DisplayName == "Aiko" && c.Email == "aiko@example.com" && c.PhotoURL == &photo
	})).Return(created, nil)

	output, err := query.NewGetProfileQuery(profiles).Execute(ctx, query.GetProfileInput{
		UserID:      "uid-1",
		DisplayName: "Aiko",
		Email:       "aiko@example.com",
		PhotoURL:    &photo,
	})

	require.NoError(t, err)
	assert.Same(t, created, output.Profile)
}
