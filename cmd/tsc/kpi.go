package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/trackside/internal/kpi"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
	"github.com/zulandar/trackside/internal/train"
)

func newKPICmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Show division performance indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKPI(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	return cmd
}

func runKPI(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	registry := train.New(gormDB, section.NewRegistry(cfg.Sections))
	trains, err := registry.List(train.ListFilters{})
	if err != nil {
		return err
	}

	var users int64
	if err := gormDB.Model(&models.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	snapshot := kpi.Compute(trains, int(users))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total trains:   %d\n", snapshot.TotalTrains)
	fmt.Fprintf(out, "Active trains:  %d\n", snapshot.ActiveTrains)
	fmt.Fprintf(out, "Delayed trains: %d\n", snapshot.DelayedTrains)
	fmt.Fprintf(out, "Average delay:  %d min\n", snapshot.AverageDelay)
	fmt.Fprintf(out, "Throughput:     %d%%\n", snapshot.Throughput)
	fmt.Fprintf(out, "Total users:    %d\n", snapshot.TotalUsers)
	return nil
}
