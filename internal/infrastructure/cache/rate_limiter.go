package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult はレート制限チェックの結果を表します
type RateLimitResult struct {
	Allowed   bool      // リクエストが許可されたか
	Remaining int       // 残りリクエスト数
	ResetAt   time.Time // リセット時刻
}

// RateLimitConfig はレート制限の設定を定義します
type RateLimitConfig struct {
	Type     string        // 制限タイプ
	Requests int           // ウィンドウ内の最大リクエスト数
	Window   time.Duration // ウィンドウサイズ
}

// 事前定義されたレート制限設定
// 参加コードは6文字しかないため、コードによる参加と参加リクエストは総当たり対策で厳しく制限します
var (
	RateLimitAPIDefault = RateLimitConfig{
		Type:     "api:default",
		Requests: 600,
		Window:   time.Minute,
	}
	RateLimitJoinByCode = RateLimitConfig{
		Type:     "group:join_by_code",
		Requests: 10,
		Window:   time.Minute,
	}
	RateLimitJoinRequest = RateLimitConfig{
		Type:     "group:join_request",
		Requests: 20,
		Window:   time.Hour,
	}
)

// RateLimiter はSliding Window方式のレート制限を提供します
type RateLimiter struct {
	client redis.UniversalClient
}

// NewRateLimiter は新しいRateLimiterを作成します
func NewRateLimiter(client redis.UniversalClient) *RateLimiter {
	return &RateLimiter{client: client}
}

// ソート済みセットにリクエスト時刻を記録し、ウィンドウ外のエントリを削除してから数えます
var slidingWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window = tonumber(ARGV[2])
    local limit = tonumber(ARGV[3])
    local member = ARGV[4]

    redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

    local count = redis.call('ZCARD', key)

    if count < limit then
        redis.call('ZADD', key, now, member)
        redis.call('PEXPIRE', key, window)
        return {1, limit - count - 1, now + window}
    end

    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    return {0, 0, tonumber(oldest[2]) + window}
`)

// Allow はリクエストが許可されるかチェックします
func (r *RateLimiter) Allow(ctx context.Context, identifier string, config RateLimitConfig) (*RateLimitResult, error) {
	now := time.Now()
	nowMs := now.UnixMilli()

	result, err := slidingWindowScript.Run(
		ctx,
		r.client,
		[]string{RateLimitKey(config.Type, identifier)},
		nowMs,
		config.Window.Milliseconds(),
		config.Requests,
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return &RateLimitResult{
		Allowed:   result[0] == 1,
		Remaining: int(result[1]),
		ResetAt:   time.UnixMilli(result[2]),
	}, nil
}
