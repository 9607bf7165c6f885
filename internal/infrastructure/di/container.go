package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/audit"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/cache"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/docstore"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/events"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/metrics"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/profile"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/storage"
	"github.com/Hiro-mackay/tripshare/pkg/config"
	"github.com/Hiro-mackay/tripshare/pkg/jwt"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// auditBufferSize は監査キューの容量です
const auditBufferSize = 1000

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	DocClient   *docstore.Client
	RedisClient *cache.RedisClient
	MinIOClient *storage.MinIOClient
	natsPub     *events.NATSPublisher

	// Repositories
	Repos *Repositories

	// Services
	Metrics      *metrics.Metrics
	Verifier     *jwt.Verifier
	RateLimiter  *cache.RateLimiter
	Profiles     *profile.Resolver
	Publisher    service.EventPublisher
	MediaCleaner service.GroupMediaCleaner
	Audit        *audit.Service

	// UseCases
	Membership *MembershipUseCases
	Profile    *ProfileUseCases

	config *config.Config
}

// Options はContainer作成時のオプションを定義します
// 指定された依存は接続処理を省略してそのまま使われます（テスト用）
type Options struct {
	Repositories *Repositories
	RedisClient  redis.UniversalClient
	Publisher    service.EventPublisher
	MediaCleaner service.GroupMediaCleaner
	Metrics      *metrics.Metrics
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{config: cfg}

	// Metrics
	c.Metrics = opts.Metrics
	if c.Metrics == nil {
		c.Metrics = metrics.New()
	}

	// JWT Verifier
	jwtConfig := jwt.DefaultConfig()
	jwtConfig.SecretKey = cfg.JWT.Secret
	jwtConfig.Issuer = cfg.JWT.Issuer
	jwtConfig.Audience = cfg.JWT.Audience
	verifier, err := jwt.NewVerifier(jwtConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}
	c.Verifier = verifier

	// Store
	if opts.Repositories != nil {
		c.Repos = opts.Repositories
	} else if err := c.connectStore(ctx); err != nil {
		return nil, err
	}

	// Redis（任意）
	var profileCache profile.Cache = profile.NoCache{}
	redisClient := opts.RedisClient
	if redisClient == nil && cfg.Redis.URL != "" {
		logger.Info(ctx, "connecting to Redis...")
		rc, err := cache.NewRedisClient(ctx, cache.DefaultConfig(cfg.Redis.URL))
		if err != nil {
			logger.Warn(ctx, "redis unavailable, running without cache and rate limits", "error", err)
		} else {
			c.RedisClient = rc
			redisClient = rc.Client()
			logger.Info(ctx, "connected to Redis")
		}
	}
	if redisClient != nil {
		profileCache = cache.NewCache(redisClient, cache.NamespaceProfile, cfg.Membership.ProfileCacheTTL)
		c.RateLimiter = cache.NewRateLimiter(redisClient)
	}
	c.Profiles = profile.NewResolver(c.Repos.Profiles, profileCache, cfg.Membership.ProfileCacheTTL)

	// Object storage（任意）
	switch {
	case opts.MediaCleaner != nil:
		c.MediaCleaner = opts.MediaCleaner
	case cfg.MinIO.Endpoint != "":
		client, err := storage.NewMinIOClient(storage.Config{
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKeyID,
			SecretAccessKey: cfg.MinIO.SecretAccessKey,
			BucketName:      cfg.MinIO.Bucket,
			UseSSL:          cfg.MinIO.UseSSL,
			Region:          cfg.MinIO.Region,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create object storage client: %w", err)
		}
		c.MinIOClient = client
		c.MediaCleaner = storage.NewMediaCleaner(client)
	default:
		c.MediaCleaner = storage.NoopMediaCleaner{}
	}

	// Events（任意）
	switch {
	case opts.Publisher != nil:
		c.Publisher = opts.Publisher
	case cfg.NATS.URL != "":
		logger.Info(ctx, "connecting to NATS...")
		pub, err := events.NewNATSPublisher(events.Config{
			URL:           cfg.NATS.URL,
			SubjectPrefix: cfg.NATS.SubjectPrefix,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		c.natsPub = pub
		c.Publisher = pub
		logger.Info(ctx, "connected to NATS")
	default:
		c.Publisher = events.NoopPublisher{}
	}

	// Audit
	c.Audit = audit.NewService(c.Repos.AuditLogs, c.Publisher, c.Metrics, auditBufferSize)

	// UseCases
	c.Membership = NewMembershipUseCases(c.Repos, c.Profiles, c.MediaCleaner, c.Audit)
	c.Profile = NewProfileUseCases(c.Repos.Profiles, c.Profiles)

	return c, nil
}

// connectStore は設定されたバックエンドに接続してリポジトリを作成します
func (c *Container) connectStore(ctx context.Context) error {
	switch c.config.Store.Backend {
	case config.BackendDynamoDB:
		logger.Info(ctx, "connecting to DynamoDB...", "region", c.config.DynamoDB.Region)
		client, err := docstore.Connect(c.config.DynamoDB)
		if err != nil {
			return fmt.Errorf("failed to connect to DynamoDB: %w", err)
		}
		c.DocClient = client
		c.Repos = NewDynamoRepositories(client)
	default:
		logger.Info(ctx, "connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, c.config.Database.URL, database.DefaultDBConfig(c.config.Database.MaxConns))
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.Repos = NewPostgresRepositories(database.NewTxManager(pgClient.Pool()))
		logger.Info(ctx, "connected to PostgreSQL")
	}
	return nil
}

// Migrate は選択されたバックエンドのスキーマ（テーブル）を作成します
func (c *Container) Migrate(ctx context.Context) error {
	switch {
	case c.PgClient != nil:
		return c.PgClient.Migrate(ctx)
	case c.DocClient != nil:
		return c.DocClient.EnsureTables(ctx)
	default:
		return errors.New("no store connection to migrate")
	}
}

// StoreHealth はストアへの疎通を確認します
func (c *Container) StoreHealth(ctx context.Context) error {
	switch {
	case c.PgClient != nil:
		return c.PgClient.Health(ctx)
	case c.DocClient != nil:
		return c.DocClient.Health(ctx)
	default:
		return nil
	}
}

// Close はリソースをクリーンアップします
// 監査キューを先に処理し、その後で接続を閉じます
func (c *Container) Close() error {
	var errs []error

	if c.Audit != nil {
		c.Audit.Shutdown()
	}

	if c.natsPub != nil {
		if err := c.natsPub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close NATS: %w", err))
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	return errors.Join(errs...)
}
