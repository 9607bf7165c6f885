package di

import (
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/command"
	"github.com/Hiro-mackay/tripshare/internal/usecase/membership/query"
)

// MembershipUseCases はグループメンバーシップ関連のUseCaseを保持します
type MembershipUseCases struct {
	// Commands
	CreateGroup         *command.CreateGroupCommand
	UpdateGroupSettings *command.UpdateGroupSettingsCommand
	DeleteGroup         *command.DeleteGroupCommand
	JoinGroup           *command.JoinGroupCommand
	JoinGroupByCode     *command.JoinGroupByCodeCommand
	LeaveGroup          *command.LeaveGroupCommand
	RemoveMember        *command.RemoveMemberCommand
	ToggleAdminRole     *command.ToggleAdminRoleCommand
	SubmitJoinRequest   *command.SubmitJoinRequestCommand
	ApproveJoinRequest  *command.ApproveJoinRequestCommand
	RejectJoinRequest   *command.RejectJoinRequestCommand

	// Queries
	GetGroup          *query.GetGroupQuery
	GetGroupByCode    *query.GetGroupByCodeQuery
	ListMyGroups      *query.ListMyGroupsQuery
	ListMembers       *query.ListMembersQuery
	ListJoinRequests  *query.ListJoinRequestsQuery
	CountJoinRequests *query.CountPendingJoinRequestsQuery
	GetMyJoinRequest  *query.GetMyJoinRequestQuery
}

// NewMembershipUseCases は新しいMembershipUseCasesを作成します
func NewMembershipUseCases(repos *Repositories, profiles service.ProfileResolver, mediaCleaner service.GroupMediaCleaner, audit service.AuditService) *MembershipUseCases {
	codeGen := service.NewGroupCodeGenerator(repos.Groups)

	joinGroup := command.NewJoinGroupCommand(repos.Groups, audit)
	submitJoinRequest := command.NewSubmitJoinRequestCommand(repos.Groups, repos.JoinRequests, profiles, audit)

	return &MembershipUseCases{
		// Commands
		CreateGroup:         command.NewCreateGroupCommand(repos.Groups, codeGen, audit),
		UpdateGroupSettings: command.NewUpdateGroupSettingsCommand(repos.Groups, audit),
		DeleteGroup: command.NewDeleteGroupCommand(
			repos.Groups,
			repos.JoinRequests,
			repos.Photos,
			repos.Comments,
			mediaCleaner,
			repos.TxManager,
			audit,
		),
		JoinGroup:          joinGroup,
		JoinGroupByCode:    command.NewJoinGroupByCodeCommand(repos.Groups, joinGroup, submitJoinRequest),
		LeaveGroup:         command.NewLeaveGroupCommand(repos.Groups, audit),
		RemoveMember:       command.NewRemoveMemberCommand(repos.Groups, audit),
		ToggleAdminRole:    command.NewToggleAdminRoleCommand(repos.Groups, audit),
		SubmitJoinRequest:  submitJoinRequest,
		ApproveJoinRequest: command.NewApproveJoinRequestCommand(repos.Groups, repos.JoinRequests, repos.TxManager, audit),
		RejectJoinRequest:  command.NewRejectJoinRequestCommand(repos.Groups, repos.JoinRequests, audit),

		// Queries
		GetGroup:          query.NewGetGroupQuery(repos.Groups),
		GetGroupByCode:    query.NewGetGroupByCodeQuery(repos.Groups),
		ListMyGroups:      query.NewListMyGroupsQuery(repos.Groups),
		ListMembers:       query.NewListMembersQuery(repos.Groups, profiles),
		ListJoinRequests:  query.NewListJoinRequestsQuery(repos.Groups, repos.JoinRequests),
		CountJoinRequests: query.NewCountPendingJoinRequestsQuery(repos.Groups, repos.JoinRequests),
		GetMyJoinRequest:  query.NewGetMyJoinRequestQuery(repos.JoinRequests),
	}
}
