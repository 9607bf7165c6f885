package docstore

import (
	"context"
	"slices"
	"strconv"
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

// groupItem はgroupsテーブルのアイテムです
// メンバーと管理者は文字列セットで保持し、ADD/DELETEで原子的に更新します
type groupItem struct {
	Id                string
	Name              string
	Code              string
	IsPrivate         bool
	AllowJoinRequests bool
	CreatorId         string
	AdminIds          []string `dynamodbav:",stringset,omitempty"`
	MemberIds         []string `dynamodbav:",stringset,omitempty"`
	MemberCount       int
	PhotoCount        int
	CreatedAt         int64
	UpdatedAt         int64
}

// groupCodeItem は参加コードの一意性を保証するロックアイテムです
type groupCodeItem struct {
	Code    string
	GroupId string
}

func newGroupItem(g *entity.Group) groupItem {
	return groupItem{
		Id:                g.ID.String(),
		Name:              g.Name.Value(),
		Code:              g.Code.Value(),
		IsPrivate:         g.IsPrivate,
		AllowJoinRequests: g.AllowJoinRequests,
		CreatorId:         g.CreatorID,
		AdminIds:          g.AdminIDs,
		MemberIds:         g.MemberIDs,
		MemberCount:       g.MemberCount,
		PhotoCount:        g.PhotoCount,
		CreatedAt:         toMillis(g.CreatedAt),
		UpdatedAt:         toMillis(g.UpdatedAt),
	}
}

// toEntity はアイテムをエンティティに変換します
// セットは順序を持たないため、IDはソートして返します
func (i groupItem) toEntity() (*entity.Group, error) {
	id, err := uuid.Parse(i.Id)
	if err != nil {
		return nil, err
	}
	adminIDs := slices.Sorted(slices.Values(i.AdminIds))
	memberIDs := slices.Sorted(slices.Values(i.MemberIds))

	return entity.ReconstructGroup(
		id,
		valueobject.ReconstructGroupName(i.Name),
		valueobject.ReconstructGroupCode(i.Code),
		i.IsPrivate,
		i.AllowJoinRequests,
		i.CreatorId,
		adminIDs,
		memberIDs,
		i.MemberCount,
		i.PhotoCount,
		fromMillis(i.CreatedAt),
		fromMillis(i.UpdatedAt),
	), nil
}

// GroupStore はGroupRepositoryのDynamoDB実装です
type GroupStore struct {
	client *Client
}

// NewGroupStore は新しいGroupStoreを作成します
func NewGroupStore(client *Client) *GroupStore {
	return &GroupStore{client: client}
}

// Create はグループとコードロックを1つのトランザクションで書き込みます
// コードが使用済みの場合はCONFLICTを返します
func (s *GroupStore) Create(ctx context.Context, group *entity.Group) error {
	item, err := dynamodbattribute.MarshalMap(newGroupItem(group))
	if err != nil {
		return err
	}
	codeItem, err := dynamodbattribute.MarshalMap(groupCodeItem{Code: group.Code.Value(), GroupId: group.ID.String()})
	if err != nil {
		return err
	}

	_, err = s.client.db.TransactWriteItemsWithContext(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []*dynamodb.TransactWriteItem{
			{
				Put: &dynamodb.Put{
					TableName:           aws.String(s.client.Table(TableGroupCodes)),
					Item:                codeItem,
					ConditionExpression: aws.String("attribute_not_exists(Code)"),
				},
			},
			{
				Put: &dynamodb.Put{
					TableName:           aws.String(s.client.Table(TableGroups)),
					Item:                item,
					ConditionExpression: aws.String("attribute_not_exists(Id)"),
				},
			},
		},
	})
	if isConditionalCheckFailed(err) {
		return apperror.NewConflictError("group code already in use")
	}
	return err
}

// FindByID はIDでグループを取得します
func (s *GroupStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var item groupItem
	found, err := s.client.getItem(ctx, TableGroups, stringKey("Id", id.String()), &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NewGroupNotFoundError()
	}
	return item.toEntity()
}

// UpdateSettings は指定されたフィールドのみ更新します
func (s *GroupStore) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.GroupSettings) error {
	update := expression.Set(expression.Name("UpdatedAt"), expression.Value(toMillis(time.Now())))
	if settings.Name != nil {
		update = update.Set(expression.Name("Name"), expression.Value(settings.Name.Value()))
	}
	if settings.IsPrivate != nil {
		update = update.Set(expression.Name("IsPrivate"), expression.Value(*settings.IsPrivate))
	}
	if settings.AllowJoinRequests != nil {
		update = update.Set(expression.Name("AllowJoinRequests"), expression.Value(*settings.AllowJoinRequests))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("Id"))).
		Build()
	if err != nil {
		return err
	}

	_, err = s.client.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.client.Table(TableGroups)),
		Key:                       stringKey("Id", id.String()),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if isConditionalCheckFailed(err) {
		return apperror.NewGroupNotFoundError()
	}
	return err
}

// Delete はグループとコードロックを削除します
func (s *GroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	group, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.db.TransactWriteItemsWithContext(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []*dynamodb.TransactWriteItem{
			{
				Delete: &dynamodb.Delete{
					TableName:           aws.String(s.client.Table(TableGroups)),
					Key:                 stringKey("Id", id.String()),
					ConditionExpression: aws.String("attribute_exists(Id)"),
				},
			},
			{
				Delete: &dynamodb.Delete{
					TableName: aws.String(s.client.Table(TableGroupCodes)),
					Key:       stringKey("Code", group.Code.Value()),
				},
			},
		},
	})
	if isConditionalCheckFailed(err) {
		return apperror.NewGroupNotFoundError()
	}
	return err
}

// FindByCode はコードロックを経由してグループを取得します
func (s *GroupStore) FindByCode(ctx context.Context, code valueobject.GroupCode) (*entity.Group, error) {
	var lock groupCodeItem
	found, err := s.client.getItem(ctx, TableGroupCodes, stringKey("Code", code.Value()), &lock)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NewGroupNotFoundError()
	}

	id, err := uuid.Parse(lock.GroupId)
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// FindByMemberID はユーザーが所属するグループを新しい順に返します
func (s *GroupStore) FindByMemberID(ctx context.Context, userID string) ([]*entity.Group, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("MemberIds").Contains(userID)).
		Build()
	if err != nil {
		return nil, err
	}

	var items []groupItem
	var pageErr error
	err = s.client.db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(s.client.Table(TableGroups)),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var pageItems []groupItem
		if pageErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageItems); pageErr != nil {
			return false
		}
		items = append(items, pageItems...)
		return true
	})
	if err != nil {
		return nil, err
	}
	if pageErr != nil {
		return nil, pageErr
	}

	groups := make([]*entity.Group, 0, len(items))
	for _, item := range items {
		group, err := item.toEntity()
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	slices.SortFunc(groups, func(a, b *entity.Group) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return groups, nil
}

// ExistsByCode は参加コードが使用済みかを確認します
func (s *GroupStore) ExistsByCode(ctx context.Context, code valueobject.GroupCode) (bool, error) {
	var lock groupCodeItem
	return s.client.getItem(ctx, TableGroupCodes, stringKey("Code", code.Value()), &lock)
}

// AddMember はMemberIdsへの追加とMemberCountの加算を1回の更新で行います
func (s *GroupStore) AddMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	_, err := s.client.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.client.Table(TableGroups)),
		Key:                 stringKey("Id", id.String()),
		UpdateExpression:    aws.String("ADD MemberIds :users, MemberCount :one SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(Id) AND NOT contains(MemberIds, :user)"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":users": {SS: aws.StringSlice([]string{userID})},
			":user":  {S: aws.String(userID)},
			":one":   {N: aws.String("1")},
			":now":   nowValue(),
		},
	})
	if err == nil {
		return true, nil
	}
	if !isConditionalCheckFailed(err) {
		return false, err
	}
	return false, s.ensureExists(ctx, id)
}

// RemoveMember はMemberIds/AdminIdsからの削除とMemberCountの減算を1回の更新で行います
// 作成者は削除できません
func (s *GroupStore) RemoveMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	_, err := s.client.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.client.Table(TableGroups)),
		Key:                 stringKey("Id", id.String()),
		UpdateExpression:    aws.String("DELETE MemberIds :users, AdminIds :users ADD MemberCount :minus SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(Id) AND contains(MemberIds, :user) AND CreatorId <> :user"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":users": {SS: aws.StringSlice([]string{userID})},
			":user":  {S: aws.String(userID)},
			":minus": {N: aws.String("-1")},
			":now":   nowValue(),
		},
	})
	if err == nil {
		return true, nil
	}
	if !isConditionalCheckFailed(err) {
		return false, err
	}
	return false, s.ensureExists(ctx, id)
}

// AddAdmin はメンバーを管理者に追加します（既に管理者なら何もしない）
func (s *GroupStore) AddAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	_, err := s.client.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.client.Table(TableGroups)),
		Key:                 stringKey("Id", id.String()),
		UpdateExpression:    aws.String("ADD AdminIds :users SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(Id) AND contains(MemberIds, :user)"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":users": {SS: aws.StringSlice([]string{userID})},
			":user":  {S: aws.String(userID)},
			":now":   nowValue(),
		},
	})
	if err == nil || !isConditionalCheckFailed(err) {
		return err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}
	return apperror.NewNotMemberError()
}

// RemoveAdmin は管理者権限を剥奪します（作成者は対象外）
func (s *GroupStore) RemoveAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	_, err := s.client.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.client.Table(TableGroups)),
		Key:                 stringKey("Id", id.String()),
		UpdateExpression:    aws.String("DELETE AdminIds :users SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(Id) AND CreatorId <> :user"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":users": {SS: aws.StringSlice([]string{userID})},
			":user":  {S: aws.String(userID)},
			":now":   nowValue(),
		},
	})
	if err == nil || !isConditionalCheckFailed(err) {
		return err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}
	return apperror.NewCannotDemoteCreatorError()
}

func (s *GroupStore) ensureExists(ctx context.Context, id uuid.UUID) error {
	result, err := s.client.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(s.client.Table(TableGroups)),
		Key:                  stringKey("Id", id.String()),
		ProjectionExpression: aws.String("Id"),
		ConsistentRead:       aws.Bool(true),
	})
	if err != nil {
		return err
	}
	if len(result.Item) == 0 {
		return apperror.NewGroupNotFoundError()
	}
	return nil
}

func nowValue() *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatInt(toMillis(time.Now()), 10))}
}

// インターフェースの実装を保証
var _ repository.GroupRepository = (*GroupStore)(nil)
