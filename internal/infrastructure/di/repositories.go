package di

import (
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/docstore"
	infraRepo "github.com/Hiro-mackay/tripshare/internal/infrastructure/repository"
)

// Repositories は選択されたストアバックエンドのリポジトリを保持します
type Repositories struct {
	Groups       repository.GroupRepository
	JoinRequests repository.JoinRequestRepository
	Photos       repository.PhotoRepository
	Comments     repository.CommentRepository
	Profiles     repository.UserProfileRepository
	AuditLogs    repository.AuditLogRepository
	TxManager    repository.TransactionManager
}

// NewPostgresRepositories はPostgreSQLアダプターのリポジトリを作成します
func NewPostgresRepositories(txManager *database.TxManager) *Repositories {
	return &Repositories{
		Groups:       infraRepo.NewGroupRepository(txManager),
		JoinRequests: infraRepo.NewJoinRequestRepository(txManager),
		Photos:       infraRepo.NewPhotoRepository(txManager),
		Comments:     infraRepo.NewCommentRepository(txManager),
		Profiles:     infraRepo.NewUserProfileRepository(txManager),
		AuditLogs:    infraRepo.NewAuditLogRepository(txManager),
		TxManager:    txManager,
	}
}

// NewDynamoRepositories はDynamoDBアダプターのリポジトリを作成します
func NewDynamoRepositories(client *docstore.Client) *Repositories {
	return &Repositories{
		Groups:       docstore.NewGroupStore(client),
		JoinRequests: docstore.NewJoinRequestStore(client),
		Photos:       docstore.NewPhotoStore(client),
		Comments:     docstore.NewCommentStore(client),
		Profiles:     docstore.NewUserProfileStore(client),
		AuditLogs:    docstore.NewAuditLogStore(client),
		TxManager:    docstore.NewTxManager(),
	}
}
