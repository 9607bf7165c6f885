package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Hiro-mackay/tripshare/internal/interface/middleware"
	"github.com/Hiro-mackay/tripshare/internal/interface/validator"
)

// Config はサーバー設定を定義します
type Config struct {
	Host            string        // ホスト (default: "")
	Port            int           // ポート (default: 8080)
	ReadTimeout     time.Duration // 読み取りタイムアウト (default: 15s)
	WriteTimeout    time.Duration // 書き込みタイムアウト (default: 15s)
	ShutdownTimeout time.Duration // シャットダウンタイムアウト (default: 30s)
	BodyLimit       string        // リクエストボディ制限 (default: "64KB")
	Debug           bool          // デバッグモード
	CORSOrigins     []string      // 許可するオリジン
}

// DefaultConfig はデフォルト設定を返します
func DefaultConfig() Config {
	return Config{
		Port:            8080,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		BodyLimit:       "64KB",
	}
}

// Server はHTTPサーバーを提供します
type Server struct {
	echo   *echo.Echo
	config Config
}

// NewServer は共通ミドルウェアを設定したServerを作成します
// ルートはrouter.Setupで登録します
func NewServer(cfg Config, observer middleware.HTTPObserver) *Server {
	e := echo.New()

	// 基本設定
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// サーバーのタイムアウト設定
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	// 共通ミドルウェア（外側から順に）
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	if observer != nil {
		e.Use(middleware.Metrics(observer))
	}
	e.Use(middleware.Recover())
	e.Use(middleware.SecurityHeaders(!cfg.Debug))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	}
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	return &Server{echo: e, config: cfg}
}

// Echo は内部のecho.Echoを返します
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start はサーバーを開始します
// Shutdownによる停止はエラーとして扱いません
func (s *Server) Start() error {
	if err := s.echo.Start(s.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown はサーバーを停止します
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// Address はサーバーのアドレスを返します
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
