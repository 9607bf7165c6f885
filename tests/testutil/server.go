package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/di"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/events"
	"github.com/Hiro-mackay/tripshare/internal/interface/router"
	"github.com/Hiro-mackay/tripshare/internal/interface/server"
	"github.com/Hiro-mackay/tripshare/pkg/config"
	"github.com/Hiro-mackay/tripshare/pkg/jwt"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
	"github.com/Hiro-mackay/tripshare/tests/testutil/fakes"
)

// TestJWTSecret is the shared secret used to sign tokens in tests
const TestJWTSecret = "test-secret-key-for-integration-tests"

// TestServer holds all test server dependencies
type TestServer struct {
	Echo         *echo.Echo
	Container    *di.Container
	Redis        *miniredis.Miniredis
	Groups       *fakes.GroupRepository
	JoinRequests *fakes.JoinRequestRepository
	Profiles     *fakes.UserProfileRepository
	AuditLogs    *fakes.AuditLogRepository
	Media        *fakes.MediaRepository
	MediaCleaner *fakes.MediaCleaner
}

// TestConfig returns a configuration suitable for in-memory tests
func TestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Store:  config.StoreConfig{Backend: config.BackendPostgres},
		JWT: config.JWTConfig{
			Secret:   TestJWTSecret,
			Issuer:   "tripshare-test",
			Audience: []string{"tripshare-api-test"},
		},
		NATS: config.NATSConfig{SubjectPrefix: "tripshare"},
		Membership: config.MembershipConfig{
			JoinRequestRetention: 24 * time.Hour,
			ProfileCacheTTL:      time.Minute,
		},
	}
}

// NewTestServer creates a fully wired server backed by in-memory stores and miniredis
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	logger.Discard()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	ts := &TestServer{
		Redis:        mr,
		Groups:       fakes.NewGroupRepository(),
		JoinRequests: fakes.NewJoinRequestRepository(),
		Profiles:     fakes.NewUserProfileRepository(),
		AuditLogs:    fakes.NewAuditLogRepository(),
		Media:        fakes.NewMediaRepository(),
		MediaCleaner: &fakes.MediaCleaner{},
	}

	cfg := TestConfig()
	container, err := di.NewContainerWithOptions(context.Background(), cfg, di.Options{
		Repositories: &di.Repositories{
			Groups:       ts.Groups,
			JoinRequests: ts.JoinRequests,
			Photos:       ts.Media,
			Comments:     ts.Media,
			Profiles:     ts.Profiles,
			AuditLogs:    ts.AuditLogs,
			TxManager:    fakes.TransactionManager{},
		},
		RedisClient:  redisClient,
		Publisher:    events.NoopPublisher{},
		MediaCleaner: ts.MediaCleaner,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })
	ts.Container = container

	serverConfig := server.DefaultConfig()
	serverConfig.CORSOrigins = []string{"http://localhost:3000"}
	srv := server.NewServer(serverConfig, container.Metrics)
	router.NewRouter(
		srv.Echo(),
		di.NewHandlers(container),
		di.NewMiddlewares(container),
		container.Metrics.Handler(),
	).Setup()
	ts.Echo = srv.Echo()

	return ts
}

// Token issues a signed access token for the given user
func (ts *TestServer) Token(t *testing.T, userID, name string) string {
	t.Helper()
	token, err := ts.Container.Verifier.Issue(jwt.Identity{
		UserID: userID,
		Name:   name,
		Email:  userID + "@example.com",
	})
	require.NoError(t, err)
	return token
}

// Cleanup resets rate limit counters and cached profiles between tests
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()
	ts.Redis.FlushAll()
}
