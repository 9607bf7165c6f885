package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction は監査ログのアクション種別を定義します
type AuditAction string

const (
	AuditActionGroupCreate        AuditAction = "group.create"
	AuditActionGroupUpdate        AuditAction = "group.update"
	AuditActionGroupDelete        AuditAction = "group.delete"
	AuditActionMemberJoin         AuditAction = "group.member_join"
	AuditActionMemberLeave        AuditAction = "group.member_leave"
	AuditActionMemberRemove       AuditAction = "group.member_remove"
	AuditActionAdminGrant         AuditAction = "group.admin_grant"
	AuditActionAdminRevoke        AuditAction = "group.admin_revoke"
	AuditActionJoinRequestSubmit  AuditAction = "join_request.submit"
	AuditActionJoinRequestApprove AuditAction = "join_request.approve"
	AuditActionJoinRequestReject  AuditAction = "join_request.reject"
)

// AuditResourceType はリソースの種類を定義します
type AuditResourceType string

const (
	AuditResourceGroup       AuditResourceType = "group"
	AuditResourceJoinRequest AuditResourceType = "join_request"
)

// AuditLog は監査ログエントリを表します
type AuditLog struct {
	ID           uuid.UUID
	ActorID      string
	Action       AuditAction
	ResourceType AuditResourceType
	ResourceID   uuid.UUID
	Details      map[string]interface{}
	RequestID    string
	CreatedAt    time.Time
}
