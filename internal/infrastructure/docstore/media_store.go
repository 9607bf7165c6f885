package docstore

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
)

// MediaStore はGroupIdインデックスを持つテーブル（写真・コメント）の連鎖削除を扱います
type MediaStore struct {
	client *Client
	table  string
}

// NewPhotoStore は写真テーブル用のMediaStoreを作成します
func NewPhotoStore(client *Client) *MediaStore {
	return &MediaStore{client: client, table: TablePhotos}
}

// NewCommentStore はコメントテーブル用のMediaStoreを作成します
func NewCommentStore(client *Client) *MediaStore {
	return &MediaStore{client: client, table: TableComments}
}

// DeleteByGroupID はグループに属するアイテムを削除し削除件数を返します
func (s *MediaStore) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GroupId").Equal(expression.Value(groupID.String()))).
		WithProjection(expression.NamesList(expression.Name("Id"))).
		Build()
	if err != nil {
		return 0, err
	}

	var keys []map[string]*dynamodb.AttributeValue
	err = s.client.db.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.client.Table(s.table)),
		IndexName:                 aws.String(IndexGroupID),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		keys = append(keys, page.Items...)
		return true
	})
	if err != nil {
		return 0, err
	}

	if err := s.client.batchDelete(ctx, s.table, keys); err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}

// インターフェースの実装を保証
var (
	_ repository.PhotoRepository   = (*MediaStore)(nil)
	_ repository.CommentRepository = (*MediaStore)(nil)
)
