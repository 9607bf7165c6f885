package docstore

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

type joinRequestItem struct {
	Id              string
	GroupId         string
	UserId          string
	UserEmail       string
	UserDisplayName string
	UserPhotoUrl    *string `dynamodbav:",omitempty"`
	Message         *string `dynamodbav:",omitempty"`
	Status          string
	ResolvedBy      *string `dynamodbav:",omitempty"`
	CreatedAt       int64
	UpdatedAt       int64
}

// joinRequestLockItem は(group, user)ごとに保留中リクエストを1件に制限します
type joinRequestLockItem struct {
	Key       string
	RequestId string
}

func pendingLockKey(groupID uuid.UUID, userID string) string {
	return groupID.String() + "#" + userID
}

func newJoinRequestItem(r *entity.JoinRequest) joinRequestItem {
	return joinRequestItem{
		Id:              r.ID.String(),
		GroupId:         r.GroupID.String(),
		UserId:          r.UserID,
		UserEmail:       r.UserEmail,
		UserDisplayName: r.UserDisplayName,
		UserPhotoUrl:    r.UserPhotoURL,
		Message:         r.Message,
		Status:          r.Status.String(),
		ResolvedBy:      r.ResolvedBy,
		CreatedAt:       toMillis(r.CreatedAt),
		UpdatedAt:       toMillis(r.UpdatedAt),
	}
}

func (i joinRequestItem) toEntity() (*entity.JoinRequest, error) {
	id, err := uuid.Parse(i.Id)
	if err != nil {
		return nil, err
	}
	groupID, err := uuid.Parse(i.GroupId)
	if err != nil {
		return nil, err
	}
	return entity.ReconstructJoinRequest(
		id,
		groupID,
		i.UserId,
		i.UserEmail,
		i.UserDisplayName,
		i.UserPhotoUrl,
		i.Message,
		valueobject.JoinRequestStatus(i.Status),
		i.ResolvedBy,
		fromMillis(i.CreatedAt),
		fromMillis(i.UpdatedAt),
	), nil
}

// JoinRequestStore はJoinRequestRepositoryのDynamoDB実装です
type JoinRequestStore struct {
	client *Client
}

// NewJoinRequestStore は新しいJoinRequestStoreを作成します
func NewJoinRequestStore(client *Client) *JoinRequestStore {
	return &JoinRequestStore{client: client}
}

// Create はリクエストとロックを1つのトランザクションで書き込みます
// 保留中のリクエストが既にある場合はCONFLICTを返します
func (s *JoinRequestStore) Create(ctx context.Context, request *entity.JoinRequest) error {
	item, err := dynamodbattribute.MarshalMap(newJoinRequestItem(request))
	if err != nil {
		return err
	}
	lock, err := dynamodbattribute.MarshalMap(joinRequestLockItem{
		Key:       pendingLockKey(request.GroupID, request.UserID),
		RequestId: request.ID.String(),
	})
	if err != nil {
		return err
	}

	_, err = s.client.db.TransactWriteItemsWithContext(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []*dynamodb.TransactWriteItem{
			{
				Put: &dynamodb.Put{
					TableName:           aws.String(s.client.Table(TableJoinRequestLocks)),
					Item:                lock,
					ConditionExpression: aws.String("attribute_not_exists(#k)"),
					ExpressionAttributeNames: map[string]*string{
						"#k": aws.String("Key"),
					},
				},
			},
			{
				Put: &dynamodb.Put{
					TableName:           aws.String(s.client.Table(TableJoinRequests)),
					Item:                item,
					ConditionExpression: aws.String("attribute_not_exists(Id)"),
				},
			},
		},
	})
	if isConditionalCheckFailed(err) {
		return apperror.NewConflictError("pending join request already exists")
	}
	return err
}

// FindByID はIDでリクエストを取得します
func (s *JoinRequestStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	var item joinRequestItem
	found, err := s.client.getItem(ctx, TableJoinRequests, stringKey("Id", id.String()), &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NewJoinRequestNotFoundError()
	}
	return item.toEntity()
}

// UpdateStatus は保留中のリクエストを解決しロックを解放します
func (s *JoinRequestStore) UpdateStatus(ctx context.Context, request *entity.JoinRequest) error {
	update := expression.
		Set(expression.Name("Status"), expression.Value(request.Status.String())).
		Set(expression.Name("UpdatedAt"), expression.Value(toMillis(request.UpdatedAt)))
	if request.ResolvedBy != nil {
		update = update.Set(expression.Name("ResolvedBy"), expression.Value(*request.ResolvedBy))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.Name("Status").Equal(expression.Value(valueobject.JoinRequestStatusPending.String()))).
		Build()
	if err != nil {
		return err
	}

	_, err = s.client.db.TransactWriteItemsWithContext(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []*dynamodb.TransactWriteItem{
			{
				Update: &dynamodb.Update{
					TableName:                 aws.String(s.client.Table(TableJoinRequests)),
					Key:                       stringKey("Id", request.ID.String()),
					UpdateExpression:          expr.Update(),
					ConditionExpression:       expr.Condition(),
					ExpressionAttributeNames:  expr.Names(),
					ExpressionAttributeValues: expr.Values(),
				},
			},
			{
				Delete: &dynamodb.Delete{
					TableName: aws.String(s.client.Table(TableJoinRequestLocks)),
					Key:       stringKey("Key", pendingLockKey(request.GroupID, request.UserID)),
				},
			},
		},
	})
	if err == nil || !isConditionalCheckFailed(err) {
		return err
	}

	if _, err := s.FindByID(ctx, request.ID); err != nil {
		return err
	}
	return apperror.NewJoinRequestNotPendingError()
}

// FindPendingByGroupAndUser はロックを経由して保留中リクエストを取得します
func (s *JoinRequestStore) FindPendingByGroupAndUser(ctx context.Context, groupID uuid.UUID, userID string) (*entity.JoinRequest, error) {
	var lock joinRequestLockItem
	found, err := s.client.getItem(ctx, TableJoinRequestLocks, stringKey("Key", pendingLockKey(groupID, userID)), &lock)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NewJoinRequestNotFoundError()
	}

	id, err := uuid.Parse(lock.RequestId)
	if err != nil {
		return nil, err
	}
	request, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, apperror.NewJoinRequestNotFoundError()
	}
	return request, nil
}

// ListPendingByGroupID は保留中リクエストを新しい順にlimit件まで返します
func (s *JoinRequestStore) ListPendingByGroupID(ctx context.Context, groupID uuid.UUID, limit int) ([]*entity.JoinRequest, error) {
	input, err := s.pendingQuery(groupID)
	if err != nil {
		return nil, err
	}

	requests := make([]*entity.JoinRequest, 0)
	var pageErr error
	err = s.client.db.QueryPagesWithContext(ctx, input, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var items []joinRequestItem
		if pageErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &items); pageErr != nil {
			return false
		}
		for _, item := range items {
			request, err := item.toEntity()
			if err != nil {
				pageErr = err
				return false
			}
			requests = append(requests, request)
			if len(requests) >= limit {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if pageErr != nil {
		return nil, pageErr
	}
	return requests, nil
}

// CountPendingByGroupID は保留中リクエスト数を返します
func (s *JoinRequestStore) CountPendingByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	input, err := s.pendingQuery(groupID)
	if err != nil {
		return 0, err
	}
	input.Select = aws.String(dynamodb.SelectCount)

	count := 0
	err = s.client.db.QueryPagesWithContext(ctx, input, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		count += int(aws.Int64Value(page.Count))
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// pendingQuery はグループの保留中リクエストを新しい順に読むクエリを作ります
func (s *JoinRequestStore) pendingQuery(groupID uuid.UUID) (*dynamodb.QueryInput, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GroupId").Equal(expression.Value(groupID.String()))).
		WithFilter(expression.Name("Status").Equal(expression.Value(valueobject.JoinRequestStatusPending.String()))).
		Build()
	if err != nil {
		return nil, err
	}

	return &dynamodb.QueryInput{
		TableName:                 aws.String(s.client.Table(TableJoinRequests)),
		IndexName:                 aws.String(IndexGroupCreatedAt),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}, nil
}

// DeleteByGroupID はグループの全リクエストとロックを削除します
func (s *JoinRequestStore) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) error {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GroupId").Equal(expression.Value(groupID.String()))).
		Build()
	if err != nil {
		return err
	}

	var requestKeys, lockKeys []map[string]*dynamodb.AttributeValue
	var pageErr error
	err = s.client.db.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.client.Table(TableJoinRequests)),
		IndexName:                 aws.String(IndexGroupCreatedAt),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var items []joinRequestItem
		if pageErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &items); pageErr != nil {
			return false
		}
		for _, item := range items {
			requestKeys = append(requestKeys, stringKey("Id", item.Id))
			if item.Status == valueobject.JoinRequestStatusPending.String() {
				lockKeys = append(lockKeys, stringKey("Key", item.GroupId+"#"+item.UserId))
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if pageErr != nil {
		return pageErr
	}

	if err := s.client.batchDelete(ctx, TableJoinRequestLocks, lockKeys); err != nil {
		return err
	}
	return s.client.batchDelete(ctx, TableJoinRequests, requestKeys)
}

// DeleteResolvedBefore は指定日時より前に解決されたリクエストを削除します
func (s *JoinRequestStore) DeleteResolvedBefore(ctx context.Context, before time.Time) (int64, error) {
	filter := expression.Name("Status").NotEqual(expression.Value(valueobject.JoinRequestStatusPending.String())).
		And(expression.Name("UpdatedAt").LessThan(expression.Value(toMillis(before))))
	expr, err := expression.NewBuilder().
		WithFilter(filter).
		WithProjection(expression.NamesList(expression.Name("Id"))).
		Build()
	if err != nil {
		return 0, err
	}

	var keys []map[string]*dynamodb.AttributeValue
	err = s.client.db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(s.client.Table(TableJoinRequests)),
		FilterExpression:          expr.Filter(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		keys = append(keys, page.Items...)
		return true
	})
	if err != nil {
		return 0, err
	}

	if err := s.client.batchDelete(ctx, TableJoinRequests, keys); err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}

// インターフェースの実装を保証
var _ repository.JoinRequestRepository = (*JoinRequestStore)(nil)
