package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/trackside/internal/config"
	"github.com/zulandar/trackside/internal/db"
	"gorm.io/gorm"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var (
		configPath string
		adminName  string
		adminEmail string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Trackside database",
		Long:  "Migrates all tables and seeds the initial admin account.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath, adminName, adminEmail)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	cmd.Flags().StringVar(&adminName, "admin-name", "Admin", "name for the seeded admin account")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@trackside.local", "email for the seeded admin account")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath, adminName, adminEmail string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(out, "Loaded config from %s (%s)\n", configPath, cfg.Database.Driver)

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	admin, err := db.SeedAdmin(gormDB, adminName, adminEmail)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded admin %s <%s>\n", admin.Name, admin.Email)

	fmt.Fprintf(out, "Configured sections:")
	for _, s := range cfg.Sections {
		fmt.Fprintf(out, " %s", s.Name)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "\nTrackside database initialized successfully.")
	return nil
}

// connectFromConfig loads config and returns a GORM DB connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}
