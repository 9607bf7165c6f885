package docstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/docstore"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// mockDynamoDB は使用するAPIのみを差し替えます
type mockDynamoDB struct {
	dynamodbiface.DynamoDBAPI
	mock.Mock
}

func newMockDynamoDB(t *testing.T) *mockDynamoDB {
	m := &mockDynamoDB{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockDynamoDB) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.GetItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDynamoDB) UpdateItemWithContext(ctx aws.Context, in *dynamodb.UpdateItemInput, _ ...request.Option) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, in)
	return &dynamodb.UpdateItemOutput{}, args.Error(0)
}

func (m *mockDynamoDB) TransactWriteItemsWithContext(ctx aws.Context, in *dynamodb.TransactWriteItemsInput, _ ...request.Option) (*dynamodb.TransactWriteItemsOutput, error) {
	args := m.Called(ctx, in)
	return &dynamodb.TransactWriteItemsOutput{}, args.Error(0)
}

func (m *mockDynamoDB) QueryPagesWithContext(ctx aws.Context, in *dynamodb.QueryInput, fn func(*dynamodb.QueryOutput, bool) bool, _ ...request.Option) error {
	args := m.Called(ctx, in)
	pages := args.Get(0).([]*dynamodb.QueryOutput)
	for i, page := range pages {
		if !fn(page, i == len(pages)-1) {
			break
		}
	}
	return args.Error(1)
}

func conditionFailed() error {
	return &dynamodb.ConditionalCheckFailedException{Message_: aws.String("The conditional request failed")}
}

func transactionCanceled() error {
	return &dynamodb.TransactionCanceledException{
		Message_: aws.String("Transaction cancelled"),
		CancellationReasons: []*dynamodb.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		},
	}
}

func groupItem(t *testing.T, id uuid.UUID) map[string]*dynamodb.AttributeValue {
	t.Helper()
	return map[string]*dynamodb.AttributeValue{
		"Id":                {S: aws.String(id.String())},
		"Name":              {S: aws.String("Kyoto 2026")},
		"Code":              {S: aws.String("KYT026")},
		"IsPrivate":         {BOOL: aws.Bool(true)},
		"AllowJoinRequests": {BOOL: aws.Bool(false)},
		"CreatorId":         {S: aws.String("creator")},
		"AdminIds":          {SS: aws.StringSlice([]string{"creator"})},
		"MemberIds":         {SS: aws.StringSlice([]string{"zoe", "creator", "alice"})},
		"MemberCount":       {N: aws.String("3")},
		"PhotoCount":        {N: aws.String("0")},
		"CreatedAt":         {N: aws.String("1767225600000")},
		"UpdatedAt":         {N: aws.String("1767225600000")},
	}
}

func tableIs(name string) interface{} {
	return mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return aws.StringValue(in.TableName) == name
	})
}

func TestGroupStore_FindByID_SortsSetMembers(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	id := uuid.New()
	db.On("GetItemWithContext", ctx, tableIs("test_groups")).
		Return(&dynamodb.GetItemOutput{Item: groupItem(t, id)}, nil)

	store := docstore.NewGroupStore(docstore.NewClient(db, "test_"))
	group, err := store.FindByID(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "creator", "zoe"}, group.MemberIDs)
	assert.Equal(t, "KYT026", group.Code.Value())
	assert.Equal(t, 3, group.MemberCount)
	assert.NoError(t, group.CheckInvariants())
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), group.CreatedAt)
}

func TestGroupStore_FindByID_Missing_ReturnsGroupNotFound(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	db.On("GetItemWithContext", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	store := docstore.NewGroupStore(docstore.NewClient(db, ""))
	_, err := store.FindByID(ctx, uuid.New())

	assert.True(t, apperror.Is(err, apperror.CodeGroupNotFound))
}

func TestGroupStore_Create_CodeTaken_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	db.On("TransactWriteItemsWithContext", ctx, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
		return len(in.TransactItems) == 2 &&
			aws.StringValue(in.TransactItems[0].Put.TableName) == "group_codes" &&
			aws.StringValue(in.TransactItems[0].Put.ConditionExpression) == "attribute_not_exists(Code)"
	})).Return(transactionCanceled())

	name, _ := valueobject.NewGroupName("Kyoto 2026")
	code, _ := valueobject.NewGroupCode("KYT026")
	group := entity.NewGroup(name, code, false, false, "creator")

	store := docstore.NewGroupStore(docstore.NewClient(db, ""))
	err := store.Create(ctx, group)

	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestGroupStore_AddMember_Added(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	db.On("UpdateItemWithContext", ctx, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return aws.StringValue(in.ExpressionAttributeValues[":user"].S) == "alice" &&
			aws.StringValue(in.ExpressionAttributeValues[":one"].N) == "1"
	})).Return(nil)

	store := docstore.NewGroupStore(docstore.NewClient(db, ""))
	added, err := store.AddMember(ctx, uuid.New(), "alice")

	require.NoError(t, err)
	assert.True(t, added)
}

func TestGroupStore_AddMember_AlreadyMember_ReturnsFalse(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	id := uuid.New()
	db.On("UpdateItemWithContext", ctx, mock.Anything).Return(conditionFailed())
	db.On("GetItemWithContext", ctx, mock.Anything).
		Return(&dynamodb.GetItemOutput{Item: map[string]*dynamodb.AttributeValue{"Id": {S: aws.String(id.String())}}}, nil)

	store := docstore.NewGroupStore(docstore.NewClient(db, ""))
	added, err := store.AddMember(ctx, id, "alice")

	require.NoError(t, err)
	assert.False(t, added)
}

func TestGroupStore_RemoveMember_GroupMissing_ReturnsGroupNotFound(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	db.On("UpdateItemWithContext", ctx, mock.Anything).Return(conditionFailed())
	db.On("GetItemWithContext", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	store := docstore.NewGroupStore(docstore.NewClient(db, ""))
	removed, err := store.RemoveMember(ctx, uuid.New(), "alice")

	assert.False(t, removed)
	assert.True(t, apperror.Is(err, apperror.CodeGroupNotFound))
}

func TestGroupStore_RemoveAdmin_Creator_ReturnsCannotDemoteCreator(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	id := uuid.New()
	db.On("UpdateItemWithContext", ctx, mock.Anything).Return(conditionFailed())
	db.On("GetItemWithContext", ctx, mock.Anything).
		Return(&dynamodb.GetItemOutput{Item: map[string]*dynamodb.AttributeValue{"Id": {S: aws.String(id.String())}}}, nil)

	store := docstore.NewGroupStore(docstore.NewClient(db, ""))
	err := store.RemoveAdmin(ctx, id, "creator")

	assert.True(t, apperror.Is(err, apperror.CodeCannotDemoteCreator))
}

func TestJoinRequestStore_UpdateStatus_AlreadyResolved_ReturnsNotPending(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)

	requester := entity.NewUserProfile("alice", "Alice", "alice@example.com", nil)
	request := entity.NewJoinRequest(uuid.New(), requester, nil)
	stored, err := dynamodbattribute.MarshalMap(map[string]interface{}{
		"Id":        request.ID.String(),
		"GroupId":   request.GroupID.String(),
		"UserId":    "alice",
		"Status":    "approved",
		"CreatedAt": request.CreatedAt.UnixMilli(),
		"UpdatedAt": request.UpdatedAt.UnixMilli(),
	})
	require.NoError(t, err)
	require.NoError(t, request.Reject("admin"))

	db.On("TransactWriteItemsWithContext", ctx, mock.Anything).Return(transactionCanceled())
	db.On("GetItemWithContext", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{Item: stored}, nil)

	store := docstore.NewJoinRequestStore(docstore.NewClient(db, ""))
	err = store.UpdateStatus(ctx, request)

	assert.True(t, apperror.Is(err, apperror.CodeJoinRequestNotPending))
}

func TestJoinRequestStore_ListPendingByGroupID_StopsAtLimit(t *testing.T) {
	ctx := context.Background()
	db := newMockDynamoDB(t)
	groupID := uuid.New()

	page := func(users ...string) *dynamodb.QueryOutput {
		out := &dynamodb.QueryOutput{}
		for _, user := range users {
			item, err := dynamodbattribute.MarshalMap(map[string]interface{}{
				"Id":        uuid.NewString(),
				"GroupId":   groupID.String(),
				"UserId":    user,
				"Status":    "pending",
				"CreatedAt": int64(1),
				"UpdatedAt": int64(1),
			})
			require.NoError(t, err)
			out.Items = append(out.Items, item)
		}
		return out
	}

	db.On("QueryPagesWithContext", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return aws.StringValue(in.IndexName) == docstore.IndexGroupCreatedAt && !aws.BoolValue(in.ScanIndexForward)
	})).Return([]*dynamodb.QueryOutput{page("a", "b"), page("c", "d"), page("e")}, nil)

	store := docstore.NewJoinRequestStore(docstore.NewClient(db, ""))
	requests, err := store.ListPendingByGroupID(ctx, groupID, 3)

	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "c", requests[2].UserID)
}

func TestTxManager_RunsFunctionDirectly(t *testing.T) {
	called := false
	err := docstore.NewTxManager().WithTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}
