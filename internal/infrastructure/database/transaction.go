package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// 再試行対象のPostgreSQLエラーコード
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Querier はpgxpool.PoolとTxの共通インターフェースです
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// TxManager はコンテキストにpgx.Txを載せてトランザクションを管理します
// グループ削除のカスケードはREPEATABLE READで実行し、直列化失敗とデッドロックは再試行します
type TxManager struct {
	pool       *pgxpool.Pool
	options    pgx.TxOptions
	maxRetries int
	backoff    time.Duration
}

// NewTxManager は新しいTxManagerを作成します
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{
		pool:       pool,
		options:    pgx.TxOptions{IsoLevel: pgx.RepeatableRead},
		maxRetries: 3,
		backoff:    20 * time.Millisecond,
	}
}

// WithTransaction はトランザクション内でfnを実行します
// 既にトランザクション中であればそれに参加します
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn(ctx, "retrying transaction", "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.backoff * time.Duration(attempt)):
			}
		}

		err = m.runOnce(ctx, fn)
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.pool.BeginTx(ctx, m.options)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback failed: %v, original error: %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetQuerier はトランザクション中であればTx、そうでなければPoolを返します
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return m.pool
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}
