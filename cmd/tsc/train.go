package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
	"github.com/zulandar/trackside/internal/train"
	"gorm.io/gorm"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train schedule commands",
	}

	cmd.AddCommand(newTrainCreateCmd())
	cmd.AddCommand(newTrainListCmd())
	return cmd
}

func newTrainCreateCmd() *cobra.Command {
	var (
		configPath string
		trainType  string
		schedule   string
		sectionArg string
		platform   string
		priority   string
		creator    string
	)

	cmd := &cobra.Command{
		Use:   "create <number>",
		Short: "Register a new train",
		Long:  "Registers a train in SCHEDULED status. The number must be unique across the division.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrainCreate(cmd, configPath, trainCreateArgs{
				number:   args[0],
				typ:      trainType,
				schedule: schedule,
				section:  sectionArg,
				platform: platform,
				priority: priority,
				creator:  creator,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	cmd.Flags().StringVar(&trainType, "type", "", "train type: PASSENGER, EXPRESS, FREIGHT, LOCAL (required)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "scheduled departure, RFC 3339 (required)")
	cmd.Flags().StringVar(&sectionArg, "section", "", "section to run in (required)")
	cmd.Flags().StringVar(&platform, "platform", "", "platform assignment")
	cmd.Flags().StringVar(&priority, "priority", models.PriorityMedium, "priority: LOW, MEDIUM, HIGH, URGENT")
	cmd.Flags().StringVar(&creator, "creator", "admin@trackside.local", "email of the creating user")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("schedule")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

type trainCreateArgs struct {
	number   string
	typ      string
	schedule string
	section  string
	platform string
	priority string
	creator  string
}

func runTrainCreate(cmd *cobra.Command, configPath string, args trainCreateArgs) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	scheduledAt, err := time.Parse(time.RFC3339, args.schedule)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", args.schedule, err)
	}

	user, err := findUserByEmail(gormDB, args.creator)
	if err != nil {
		return err
	}

	registry := train.New(gormDB, section.NewRegistry(cfg.Sections))
	t, err := registry.Create(train.CreateOpts{
		Number:      args.number,
		Type:        strings.ToUpper(args.typ),
		ScheduledAt: scheduledAt,
		Section:     args.section,
		Platform:    args.platform,
		Priority:    strings.ToUpper(args.priority),
		CreatorID:   user.ID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created train %s (%s) in %s, departing %s\n",
		t.Number, t.Type, t.Section, t.ScheduledAt.Format(time.RFC3339))
	return nil
}

func newTrainListCmd() *cobra.Command {
	var (
		configPath string
		sectionArg string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trains",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := train.ListFilters{Section: sectionArg}
			if status != "" {
				filters.Statuses = []string{strings.ToUpper(status)}
			}
			return runTrainList(cmd, configPath, filters)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	cmd.Flags().StringVar(&sectionArg, "section", "", "filter by section")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func runTrainList(cmd *cobra.Command, configPath string, filters train.ListFilters) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	registry := train.New(gormDB, section.NewRegistry(cfg.Sections))
	trains, err := registry.List(filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(trains) == 0 {
		fmt.Fprintln(out, "No trains found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tTYPE\tSECTION\tSTATUS\tPRIORITY\tDELAY\tDEPARTS")
	for _, t := range trains {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Number, t.Type, t.Section, t.Status, t.Priority,
			formatDelay(t.DelayMin), t.ScheduledAt.Format("Jan 2 15:04"))
	}
	w.Flush()
	return nil
}

// findUserByEmail looks up a user record by email.
func findUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user with email %q — run tsc user create first", email)
		}
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return &user, nil
}
