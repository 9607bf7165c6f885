package di

import (
	"github.com/Hiro-mackay/tripshare/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health      *handler.HealthHandler
	Group       *handler.GroupHandler
	JoinRequest *handler.JoinRequestHandler
	Profile     *handler.ProfileHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	// Health Handler
	healthHandler := handler.NewHealthHandler()
	healthHandler.RegisterChecker("store", handler.HealthCheckFunc(c.StoreHealth))
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}
	if c.MinIOClient != nil {
		healthHandler.RegisterChecker("object_storage", c.MinIOClient)
	}
	if c.natsPub != nil {
		healthHandler.RegisterChecker("nats", c.natsPub)
	}

	m := c.Membership

	return &Handlers{
		Health: healthHandler,
		Group: handler.NewGroupHandler(handler.GroupHandlerDeps{
			CreateGroup:         m.CreateGroup,
			UpdateGroupSettings: m.UpdateGroupSettings,
			DeleteGroup:         m.DeleteGroup,
			JoinGroupByCode:     m.JoinGroupByCode,
			LeaveGroup:          m.LeaveGroup,
			RemoveMember:        m.RemoveMember,
			ToggleAdminRole:     m.ToggleAdminRole,
			GetGroup:            m.GetGroup,
			GetGroupByCode:      m.GetGroupByCode,
			ListMyGroups:        m.ListMyGroups,
			ListMembers:         m.ListMembers,
		}),
		JoinRequest: handler.NewJoinRequestHandler(
			m.SubmitJoinRequest,
			m.ApproveJoinRequest,
			m.RejectJoinRequest,
			m.ListJoinRequests,
			m.CountJoinRequests,
			m.GetMyJoinRequest,
		),
		Profile: handler.NewProfileHandler(
			c.Profile.GetProfile,
			c.Profile.UpdateProfile,
		),
	}
}
