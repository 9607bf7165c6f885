package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// PostgreSQLエラーコード
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// BaseRepository はリポジトリの基底構造体
type BaseRepository struct {
	txManager *TxManager
}

// NewBaseRepository は新しいBaseRepositoryを作成する
func NewBaseRepository(txManager *TxManager) *BaseRepository {
	return &BaseRepository{txManager: txManager}
}

// Querier はクエリ実行用のインターフェースを返す
// トランザクション中であればTx、そうでなければPoolを返す
func (r *BaseRepository) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// HandleError はpgxのエラーをAppErrorに変換する
// 行が見つからない場合はnotFoundを返し、それ以外の未知のエラーはそのまま返す
func (r *BaseRepository) HandleError(err error, notFound func() *apperror.AppError) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewConflictError("record already exists: " + pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return apperror.NewValidationError("referenced record does not exist", nil)
		case pgCheckViolation:
			return apperror.NewValidationError("check constraint violation: "+pgErr.ConstraintName, nil)
		}
	}

	return err
}

// IsUniqueViolation は一意制約違反かを判定する
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
