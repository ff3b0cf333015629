package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/trackside/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		configPath string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <email>",
		Short: "Mint an API token for a user",
		Long:  "Signs a bearer token carrying the user's identity and role, for use against the Trackside API.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, configPath, args[0], ttl)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: auth.token_ttl_hours from config)")
	return cmd
}

func runToken(cmd *cobra.Command, configPath, email string, ttl time.Duration) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	user, err := findUserByEmail(gormDB, email)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = time.Duration(cfg.Auth.TokenTTL) * time.Hour
	}

	gate := auth.NewGate(cfg.Auth.Secret, ttl)
	token, err := gate.Mint(auth.Identity{UserID: user.ID, Role: user.Role, Email: user.Email})
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
