package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title TripShare Membership API
// @version 1.0
// @description 旅行写真共有アプリのグループメンバーシップ REST API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// newRootCommand はCLIのルートコマンドを作成します
func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "tripshare",
		Short:         "TripShare group membership service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a config file (yaml, json, toml)")

	root.AddCommand(
		newServeCommand(&configFile),
		newMigrateCommand(&configFile),
	)

	return root
}
