package cache

import (
	"fmt"
)

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	PrefixRateLimit KeyPrefix = "ratelimit" // ratelimit:{type}:{identifier}
	PrefixCache     KeyPrefix = "cache"     // cache:{namespace}:{key}
)

// キャッシュの名前空間
const (
	NamespaceProfile = "profile" // cache:profile:{user_id}
)

// RateLimitKey はレート制限キーを生成します
func RateLimitKey(limitType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixRateLimit, limitType, identifier)
}

// CacheKey は名前空間付きのキャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixCache, namespace, key)
}
