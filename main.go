package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aroundyou/internal/app"
	"aroundyou/internal/config"
	"aroundyou/internal/logging"
	"aroundyou/internal/repositories"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "aroundyou",
		Short:         "AroundYou local marketplace storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json, toml or env)")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		logging.Init(cfg.LogLevel, cfg.LogFile)
		return cfg, nil
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the store tables",
			RunE: func(_ *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return migrate(cfg)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the demo merchant, consumer, shops, products and orders",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return seed(cmd.Context(), cfg)
			},
		},
	)
	return rootCmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	// The memory store starts empty on every boot.
	if cfg.StoreDriver == "memory" {
		if err := app.Seed(ctx, a); err != nil {
			return err
		}
	}
	return a.Listen(ctx)
}

func migrate(cfg *config.Config) error {
	if cfg.StoreDriver == "memory" {
		return fmt.Errorf("nothing to migrate for the memory store")
	}
	db, err := repositories.OpenDB(cfg.StoreDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repositories.Migrate(db); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("store migrated")
	return nil
}

func seed(ctx context.Context, cfg *config.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return app.Seed(ctx, a)
}
