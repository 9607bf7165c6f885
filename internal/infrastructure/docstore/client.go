// Package docstore はDynamoDBをバックエンドとするリポジトリ実装を提供します
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/Hiro-mackay/tripshare/pkg/config"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// テーブル名（プレフィックスなし）
const (
	TableGroups           = "groups"
	TableGroupCodes       = "group_codes"
	TableJoinRequests     = "join_requests"
	TableJoinRequestLocks = "join_request_locks"
	TablePhotos           = "photos"
	TableComments         = "comments"
	TableUserProfiles     = "user_profiles"
	TableAuditLogs        = "audit_logs"
)

// インデックス名
const (
	IndexGroupCreatedAt    = "GroupId-CreatedAt-index"
	IndexGroupID           = "GroupId-index"
	IndexResourceCreatedAt = "ResourceKey-CreatedAt-index"
)

// BatchWriteItemの1リクエストあたりの上限
const (
	maxBatchWrite = 25
	maxBatchGet   = 100
)

// Client はDynamoDBクライアントとテーブル名プレフィックスを保持します
type Client struct {
	db     dynamodbiface.DynamoDBAPI
	prefix string
}

// NewClient は既存のDynamoDB APIからClientを作成します
func NewClient(db dynamodbiface.DynamoDBAPI, tablePrefix string) *Client {
	return &Client{db: db, prefix: tablePrefix}
}

// Connect は設定からAWSセッションを作成しClientを返します
func Connect(cfg config.DynamoDBConfig) (*Client, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	return NewClient(dynamodb.New(sess), cfg.TablePrefix), nil
}

// Table はプレフィックス付きのテーブル名を返します
func (c *Client) Table(name string) string {
	return c.prefix + name
}

// Health はgroupsテーブルへの到達性を確認します
func (c *Client) Health(ctx context.Context) error {
	_, err := c.db.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(c.Table(TableGroups)),
	})
	return err
}

// getItem はキーで1件取得します。存在しない場合はfalseを返します
func (c *Client) getItem(ctx context.Context, table string, key map[string]*dynamodb.AttributeValue, out interface{}) (bool, error) {
	result, err := c.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.Table(table)),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(result.Item) == 0 {
		return false, nil
	}
	if err := dynamodbattribute.UnmarshalMap(result.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

// batchDelete はキーの一覧を25件ずつ削除します
func (c *Client) batchDelete(ctx context.Context, table string, keys []map[string]*dynamodb.AttributeValue) error {
	for start := 0; start < len(keys); start += maxBatchWrite {
		end := min(start+maxBatchWrite, len(keys))

		requests := make([]*dynamodb.WriteRequest, 0, end-start)
		for _, key := range keys[start:end] {
			requests = append(requests, &dynamodb.WriteRequest{
				DeleteRequest: &dynamodb.DeleteRequest{Key: key},
			})
		}

		pending := map[string][]*dynamodb.WriteRequest{c.Table(table): requests}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt > 0 {
				if err := sleepBackoff(ctx, attempt); err != nil {
					return err
				}
			}
			out, err := c.db.BatchWriteItemWithContext(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

// sleepBackoff は未処理アイテムの再送前に待機します
func sleepBackoff(ctx context.Context, attempt int) error {
	delay := time.Duration(1<<min(attempt, 6)) * 25 * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// stringKey は文字列のパーティションキーを作ります
func stringKey(name, value string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		name: {S: aws.String(value)},
	}
}

// isConditionalCheckFailed は条件付き書き込みの失敗かを判定します
// トランザクションの場合はキャンセル理由に条件失敗が含まれるかを確認します
func isConditionalCheckFailed(err error) bool {
	var canceled *dynamodb.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, reason := range canceled.CancellationReasons {
			if reason != nil && aws.StringValue(reason.Code) == "ConditionalCheckFailed" {
				return true
			}
		}
		return false
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
	}
	return false
}

// toMillis/fromMillis は時刻をソート可能なUnixミリ秒で保存します
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// TxManager はDynamoDB用のトランザクションマネージャーです
// 各書き込みが条件付き更新で完結するため、関数をそのまま実行します
type TxManager struct{}

// NewTxManager は新しいTxManagerを作成します
func NewTxManager() *TxManager {
	return &TxManager{}
}

// WithTransaction は関数をそのまま実行します
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// tableSpec はテーブル作成時の定義です
type tableSpec struct {
	name       string
	hashKey    string
	attributes map[string]string
	indexes    []indexSpec
}

type indexSpec struct {
	name     string
	hashKey  string
	rangeKey string
}

func tableSpecs() []tableSpec {
	return []tableSpec{
		{name: TableGroups, hashKey: "Id", attributes: map[string]string{"Id": "S"}},
		{name: TableGroupCodes, hashKey: "Code", attributes: map[string]string{"Code": "S"}},
		{
			name:       TableJoinRequests,
			hashKey:    "Id",
			attributes: map[string]string{"Id": "S", "GroupId": "S", "CreatedAt": "N"},
			indexes:    []indexSpec{{name: IndexGroupCreatedAt, hashKey: "GroupId", rangeKey: "CreatedAt"}},
		},
		{name: TableJoinRequestLocks, hashKey: "Key", attributes: map[string]string{"Key": "S"}},
		{
			name:       TablePhotos,
			hashKey:    "Id",
			attributes: map[string]string{"Id": "S", "GroupId": "S"},
			indexes:    []indexSpec{{name: IndexGroupID, hashKey: "GroupId"}},
		},
		{
			name:       TableComments,
			hashKey:    "Id",
			attributes: map[string]string{"Id": "S", "GroupId": "S"},
			indexes:    []indexSpec{{name: IndexGroupID, hashKey: "GroupId"}},
		},
		{name: TableUserProfiles, hashKey: "UserId", attributes: map[string]string{"UserId": "S"}},
		{
			name:       TableAuditLogs,
			hashKey:    "Id",
			attributes: map[string]string{"Id": "S", "ResourceKey": "S", "CreatedAt": "N"},
			indexes:    []indexSpec{{name: IndexResourceCreatedAt, hashKey: "ResourceKey", rangeKey: "CreatedAt"}},
		},
	}
}

// EnsureTables は必要なテーブルが無ければオンデマンド課金で作成します
func (c *Client) EnsureTables(ctx context.Context) error {
	for _, spec := range tableSpecs() {
		input := &dynamodb.CreateTableInput{
			TableName:   aws.String(c.Table(spec.name)),
			BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
			KeySchema: []*dynamodb.KeySchemaElement{
				{AttributeName: aws.String(spec.hashKey), KeyType: aws.String(dynamodb.KeyTypeHash)},
			},
		}
		for name, kind := range spec.attributes {
			input.AttributeDefinitions = append(input.AttributeDefinitions, &dynamodb.AttributeDefinition{
				AttributeName: aws.String(name),
				AttributeType: aws.String(kind),
			})
		}
		for _, index := range spec.indexes {
			keySchema := []*dynamodb.KeySchemaElement{
				{AttributeName: aws.String(index.hashKey), KeyType: aws.String(dynamodb.KeyTypeHash)},
			}
			if index.rangeKey != "" {
				keySchema = append(keySchema, &dynamodb.KeySchemaElement{
					AttributeName: aws.String(index.rangeKey),
					KeyType:       aws.String(dynamodb.KeyTypeRange),
				})
			}
			input.GlobalSecondaryIndexes = append(input.GlobalSecondaryIndexes, &dynamodb.GlobalSecondaryIndex{
				IndexName:  aws.String(index.name),
				KeySchema:  keySchema,
				Projection: &dynamodb.Projection{ProjectionType: aws.String(dynamodb.ProjectionTypeAll)},
			})
		}

		_, err := c.db.CreateTableWithContext(ctx, input)
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeResourceInUseException {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create table %s: %w", spec.name, err)
		}

		if err := c.db.WaitUntilTableExistsWithContext(ctx, &dynamodb.DescribeTableInput{
			TableName: input.TableName,
		}); err != nil {
			return fmt.Errorf("failed waiting for table %s: %w", spec.name, err)
		}
		logger.Info(ctx, "dynamodb table created", "table", c.Table(spec.name))
	}
	return nil
}
