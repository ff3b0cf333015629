package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/trackside/internal/alert"
	discordnotify "github.com/zulandar/trackside/internal/alert/discord"
	slacknotify "github.com/zulandar/trackside/internal/alert/slack"
	"github.com/zulandar/trackside/internal/api"
	"github.com/zulandar/trackside/internal/config"
	"github.com/zulandar/trackside/internal/section"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Trackside API server",
		Long:  "Serves the admin and controller HTTP API, and posts congestion digests when alerts are configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	// Start the congestion digest runner when a platform is configured.
	if cfg.Alerts.Platform != "" {
		notifier, err := createNotifier(cfg)
		if err != nil {
			return err
		}
		runner, err := alert.NewRunner(alert.RunnerOpts{
			DB:       gormDB,
			Sections: section.NewRegistry(cfg.Sections),
			Notifier: notifier,
			Alerts:   cfg.Alerts,
		})
		if err != nil {
			return err
		}
		go func() {
			if err := runner.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("alert runner stopped: %v", err)
			}
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "Congestion digests enabled (%s, cron %q)\n",
			cfg.Alerts.Platform, cfg.Alerts.DigestCron)
	}

	return api.Start(ctx, api.StartOpts{
		DB:     gormDB,
		Config: cfg,
		Out:    cmd.OutOrStdout(),
	})
}

// createNotifier builds a platform notifier from the config.
func createNotifier(cfg *config.Config) (alert.Notifier, error) {
	switch cfg.Alerts.Platform {
	case "slack":
		return slacknotify.New(slacknotify.Opts{
			BotToken:  cfg.Alerts.Token,
			ChannelID: cfg.Alerts.Channel,
		})
	case "discord":
		return discordnotify.New(discordnotify.Opts{
			BotToken:  cfg.Alerts.Token,
			ChannelID: cfg.Alerts.Channel,
		})
	default:
		return nil, fmt.Errorf("alerts: unsupported platform %q", cfg.Alerts.Platform)
	}
}
