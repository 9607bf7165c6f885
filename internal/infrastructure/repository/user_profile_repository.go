package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

const userProfileColumns = `user_id, display_name, email, photo_url, created_at, updated_at`

// UserProfileRepository はユーザープロファイルリポジトリの実装です
type UserProfileRepository struct {
	*database.BaseRepository
}

// NewUserProfileRepository は新しいUserProfileRepositoryを作成します
func NewUserProfileRepository(txManager *database.TxManager) *UserProfileRepository {
	return &UserProfileRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// FindByUserID はユーザーIDでプロファイルを検索します
func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	row := r.Querier(ctx).QueryRow(ctx, `SELECT `+userProfileColumns+` FROM user_profiles WHERE user_id = $1`, userID)
	profile, err := scanUserProfile(row)
	if err != nil {
		return nil, r.HandleError(err, func() *apperror.AppError {
			return apperror.NewNotFoundError("user profile")
		})
	}
	return profile, nil
}

// FindByUserIDs は複数ユーザーのプロファイルを検索します（存在しないIDは無視）
func (r *UserProfileRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error) {
	if len(userIDs) == 0 {
		return []*entity.UserProfile{}, nil
	}

	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT `+userProfileColumns+` FROM user_profiles WHERE user_id = ANY($1)`,
		userIDs,
	)
	if err != nil {
		return nil, r.HandleError(err, nil)
	}
	defer rows.Close()

	profiles := make([]*entity.UserProfile, 0, len(userIDs))
	for rows.Next() {
		profile, err := scanUserProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// Upsert はプロファイルを作成または更新します
func (r *UserProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		INSERT INTO user_profiles (`+userProfileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			photo_url = EXCLUDED.photo_url,
			updated_at = EXCLUDED.updated_at`,
		profile.UserID,
		profile.DisplayName,
		profile.Email,
		profile.PhotoURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return r.HandleError(err, nil)
}

func scanUserProfile(row pgx.Row) (*entity.UserProfile, error) {
	var p entity.UserProfile
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Email, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// インターフェースの実装を保証
var _ repository.UserProfileRepository = (*UserProfileRepository)(nil)
