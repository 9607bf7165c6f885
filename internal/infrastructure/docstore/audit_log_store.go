package docstore

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
)

type auditLogItem struct {
	Id           string
	ResourceKey  string
	ActorId      string
	Action       string
	ResourceType string
	ResourceId   string
	Details      map[string]interface{} `dynamodbav:",omitempty"`
	RequestId    string                 `dynamodbav:",omitempty"`
	CreatedAt    int64
}

func resourceKey(resourceType entity.AuditResourceType, resourceID uuid.UUID) string {
	return string(resourceType) + "#" + resourceID.String()
}

func (i auditLogItem) toEntity() (*entity.AuditLog, error) {
	id, err := uuid.Parse(i.Id)
	if err != nil {
		return nil, err
	}
	resourceID, err := uuid.Parse(i.ResourceId)
	if err != nil {
		return nil, err
	}
	return &entity.AuditLog{
		ID:           id,
		ActorID:      i.ActorId,
		Action:       entity.AuditAction(i.Action),
		ResourceType: entity.AuditResourceType(i.ResourceType),
		ResourceID:   resourceID,
		Details:      i.Details,
		RequestID:    i.RequestId,
		CreatedAt:    fromMillis(i.CreatedAt),
	}, nil
}

// AuditLogStore はAuditLogRepositoryのDynamoDB実装です
type AuditLogStore struct {
	client *Client
}

// NewAuditLogStore は新しいAuditLogStoreを作成します
func NewAuditLogStore(client *Client) *AuditLogStore {
	return &AuditLogStore{client: client}
}

// Create は監査ログを書き込みます
func (s *AuditLogStore) Create(ctx context.Context, log *entity.AuditLog) error {
	item, err := dynamodbattribute.MarshalMap(auditLogItem{
		Id:           log.ID.String(),
		ResourceKey:  resourceKey(log.ResourceType, log.ResourceID),
		ActorId:      log.ActorID,
		Action:       string(log.Action),
		ResourceType: string(log.ResourceType),
		ResourceId:   log.ResourceID.String(),
		Details:      log.Details,
		RequestId:    log.RequestID,
		CreatedAt:    toMillis(log.CreatedAt),
	})
	if err != nil {
		return err
	}

	_, err = s.client.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.client.Table(TableAuditLogs)),
		Item:      item,
	})
	return err
}

// ListByResource はリソースの監査ログを新しい順に返します
func (s *AuditLogStore) ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("ResourceKey").Equal(expression.Value(resourceKey(resourceType, resourceID)))).
		Build()
	if err != nil {
		return nil, err
	}

	out, err := s.client.db.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.client.Table(TableAuditLogs)),
		IndexName:                 aws.String(IndexResourceCreatedAt),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int64(int64(limit)),
	})
	if err != nil {
		return nil, err
	}

	var items []auditLogItem
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}

	logs := make([]*entity.AuditLog, 0, len(items))
	for _, item := range items {
		log, err := item.toEntity()
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// インターフェースの実装を保証
var _ repository.AuditLogRepository = (*AuditLogStore)(nil)
