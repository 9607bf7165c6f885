package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss はキャッシュミスを表すエラーです
var ErrCacheMiss = errors.New("cache miss")

// Cache は名前空間付きのJSONキャッシュです
type Cache struct {
	client     redis.UniversalClient
	namespace  string
	defaultTTL time.Duration
}

// NewCache は新しいCacheを作成します
func NewCache(client redis.UniversalClient, namespace string, defaultTTL time.Duration) *Cache {
	return &Cache{
		client:     client,
		namespace:  namespace,
		defaultTTL: defaultTTL,
	}
}

// Get はキャッシュから値を取得します
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, CacheKey(c.namespace, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

// GetMany は複数キーをMGETで取得し、ヒットした値のJSONをキーごとに返します
func (c *Cache) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}

	cacheKeys := make([]string, len(keys))
	for i, key := range keys {
		cacheKeys[i] = CacheKey(c.namespace, key)
	}

	values, err := c.client.MGet(ctx, cacheKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mget from cache: %w", err)
	}

	hits := make(map[string][]byte, len(keys))
	for i, value := range values {
		if s, ok := value.(string); ok {
			hits[keys[i]] = []byte(s)
		}
	}
	return hits, nil
}

// Set はキャッシュに値を設定します
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	expiry := c.defaultTTL
	if len(ttl) > 0 {
		expiry = ttl[0]
	}

	if err := c.client.Set(ctx, CacheKey(c.namespace, key), data, expiry).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete はキャッシュから値を削除します
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, CacheKey(c.namespace, key)).Err()
}

// TTL はキーの残り生存時間を取得します
func (c *Cache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, CacheKey(c.namespace, key)).Result()
}
