package docstore

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

type userProfileItem struct {
	UserId      string
	DisplayName string
	Email       string
	PhotoUrl    *string `dynamodbav:",omitempty"`
	CreatedAt   int64
	UpdatedAt   int64
}

func (i userProfileItem) toEntity() *entity.UserProfile {
	return &entity.UserProfile{
		UserID:      i.UserId,
		DisplayName: i.DisplayName,
		Email:       i.Email,
		PhotoURL:    i.PhotoUrl,
		CreatedAt:   fromMillis(i.CreatedAt),
		UpdatedAt:   fromMillis(i.UpdatedAt),
	}
}

// UserProfileStore はUserProfileRepositoryのDynamoDB実装です
type UserProfileStore struct {
	client *Client
}

// NewUserProfileStore は新しいUserProfileStoreを作成します
func NewUserProfileStore(client *Client) *UserProfileStore {
	return &UserProfileStore{client: client}
}

// FindByUserID はユーザーIDでプロファイルを取得します
func (s *UserProfileStore) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var item userProfileItem
	found, err := s.client.getItem(ctx, TableUserProfiles, stringKey("UserId", userID), &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NewNotFoundError("user profile")
	}
	return item.toEntity(), nil
}

// FindByUserIDs はBatchGetItemで複数プロファイルを取得します
func (s *UserProfileStore) FindByUserIDs(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error) {
	profiles := make([]*entity.UserProfile, 0, len(userIDs))
	table := s.client.Table(TableUserProfiles)

	for start := 0; start < len(userIDs); start += maxBatchGet {
		end := min(start+maxBatchGet, len(userIDs))

		keys := make([]map[string]*dynamodb.AttributeValue, 0, end-start)
		seen := make(map[string]bool, end-start)
		for _, id := range userIDs[start:end] {
			if seen[id] {
				continue
			}
			seen[id] = true
			keys = append(keys, stringKey("UserId", id))
		}

		pending := map[string]*dynamodb.KeysAndAttributes{table: {Keys: keys}}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt > 0 {
				if err := sleepBackoff(ctx, attempt); err != nil {
					return nil, err
				}
			}
			out, err := s.client.db.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
			if err != nil {
				return nil, err
			}

			var items []userProfileItem
			if err := dynamodbattribute.UnmarshalListOfMaps(out.Responses[table], &items); err != nil {
				return nil, err
			}
			for _, item := range items {
				profiles = append(profiles, item.toEntity())
			}
			pending = out.UnprocessedKeys
		}
	}
	return profiles, nil
}

// Upsert はプロファイルを作成または更新します（作成日時は保持）
func (s *UserProfileStore) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	update := expression.
		Set(expression.Name("DisplayName"), expression.Value(profile.DisplayName)).
		Set(expression.Name("Email"), expression.Value(profile.Email)).
		Set(expression.Name("UpdatedAt"), expression.Value(toMillis(profile.UpdatedAt))).
		Set(expression.Name("CreatedAt"), expression.IfNotExists(expression.Name("CreatedAt"), expression.Value(toMillis(profile.CreatedAt))))
	if profile.PhotoURL != nil {
		update = update.Set(expression.Name("PhotoUrl"), expression.Value(*profile.PhotoURL))
	} else {
		update = update.Remove(expression.Name("PhotoUrl"))
	}

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return err
	}

	_, err = s.client.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.client.Table(TableUserProfiles)),
		Key:                       stringKey("UserId", profile.UserID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return err
}

// インターフェースの実装を保証
var _ repository.UserProfileRepository = (*UserProfileStore)(nil)
