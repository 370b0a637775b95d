package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/assetboard-backend/internal/app"
	"github.com/simaogato/assetboard-backend/internal/cache"
	"github.com/simaogato/assetboard-backend/internal/config"
	"github.com/simaogato/assetboard-backend/internal/usecase/asset"
	"github.com/simaogato/assetboard-backend/internal/usecase/comment"
)

var (
	configPath string

	cfg        *config.Config
	closeStore func() error

	// Services
	assetService   *asset.AssetService
	commentService *comment.CommentService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "Inspect and maintain the household asset records",
	Long: StyleTitle.Render("assetctl") + " - household asset dashboard from the terminal\n\n" +
		"Reads the same record store as the dashboard server, using the same\n" +
		"configuration file and environment variables.",
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_FILE"), "path to YAML config file")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(deleteCmd)
}

// initializeApp loads the configuration and opens the record store
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, closeFn, err := app.OpenStore(getContext(cmd), cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	closeStore = closeFn

	// A CLI run is short-lived; caching only dedupes reads within one command
	c := cache.New(cfg.CacheTTL)
	assetService = asset.NewAssetService(store, c, cfg.RecomputeDerived)
	commentService = comment.NewCommentService(store, c)
	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if closeStore == nil {
		return nil
	}
	err := closeStore()
	closeStore = nil
	return err
}

func getContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
