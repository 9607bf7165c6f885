package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/di"
	"github.com/Hiro-mackay/tripshare/internal/interface/router"
	"github.com/Hiro-mackay/tripshare/internal/interface/server"
	"github.com/Hiro-mackay/tripshare/pkg/config"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

const workerShutdownTimeout = 10 * time.Second

func newServeCommand(configFile *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server and background workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the store schema before serving")

	return cmd
}

// loadConfig は設定を読み込みロガーを初期化します
func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	logCfg.AddSource = cfg.Log.AddSource
	if err := logger.Setup(logCfg); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config, migrate bool) error {
	// 1. 依存関係を初期化
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	if migrate {
		if err := container.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate store: %w", err)
		}
	}

	// 2. サーバーとルートを構築
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	serverConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	serverConfig.CORSOrigins = cfg.Security.CORSOrigins

	srv := server.NewServer(serverConfig, container.Metrics)
	router.NewRouter(
		srv.Echo(),
		di.NewHandlers(container),
		di.NewMiddlewares(container),
		container.Metrics.Handler(),
	).Setup()

	// 3. バックグラウンドジョブを開始
	workerMgr := di.NewWorkerManager(container)
	workerMgr.Start()

	// 4. サーバーを開始
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", srv.Address(), "store", cfg.Store.Backend)
		errCh <- srv.Start()
	}()

	// 5. シグナル受信でグレースフルシャットダウン
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
	case serveErr = <-errCh:
		if serveErr != nil {
			slog.Error("server error", "error", serveErr)
		}
	}

	slog.Info("shutting down server...")
	workerMgr.Shutdown(workerShutdownTimeout)

	if err := srv.Shutdown(context.Background()); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
	return serveErr
}
