package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
	"gorm.io/gorm"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User and controller account commands",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserAssignCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		configPath string
		name       string
		role       string
	)

	cmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(cmd, configPath, args[0], name, strings.ToUpper(role))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&role, "role", models.RoleUser, "role: ADMIN, CONTROLLER, USER")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func runUserCreate(cmd *cobra.Command, configPath, email, name, role string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if !models.ValidRole(role) {
		return fmt.Errorf("role %q is not one of ADMIN, CONTROLLER, USER", role)
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := gormDB.Create(&user).Error; err != nil {
		return fmt.Errorf("create user %s: %w", email, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s <%s>\n", user.Role, user.Name, user.Email)
	return nil
}

func newUserListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	return cmd
}

func runUserList(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var users []models.User
	if err := gormDB.Preload("Controller").Order("created_at ASC").Find(&users).Error; err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(users) == 0 {
		fmt.Fprintln(out, "No users found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tROLE\tSECTION")
	for _, u := range users {
		sec := "-"
		if u.Controller != nil {
			sec = u.Controller.AssignedSection
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Name, u.Email, u.Role, sec)
	}
	w.Flush()
	return nil
}

func newUserAssignCmd() *cobra.Command {
	var (
		configPath string
		sectionArg string
	)

	cmd := &cobra.Command{
		Use:   "assign <email>",
		Short: "Assign a controller to a section",
		Long:  "Grants the user the CONTROLLER role and assigns them a configured section. Re-running moves the controller to the new section.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserAssign(cmd, configPath, args[0], sectionArg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trackside.yaml", "path to Trackside config file")
	cmd.Flags().StringVar(&sectionArg, "section", "", "section to assign (required)")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

func runUserAssign(cmd *cobra.Command, configPath, email, sectionName string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	sections := section.NewRegistry(cfg.Sections)
	if !sections.Has(sectionName) {
		return fmt.Errorf("section %q is not configured", sectionName)
	}

	user, err := findUserByEmail(gormDB, email)
	if err != nil {
		return err
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if user.Role != models.RoleController {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("role", models.RoleController).Error; err != nil {
				return err
			}
		}

		var ctl models.Controller
		switch findErr := tx.Where("user_id = ?", user.ID).First(&ctl).Error; findErr {
		case nil:
			return tx.Model(&models.Controller{}).Where("id = ?", ctl.ID).
				Updates(map[string]interface{}{"assigned_section": sectionName, "active": true}).Error
		case gorm.ErrRecordNotFound:
			return tx.Create(&models.Controller{
				ID:              uuid.NewString(),
				UserID:          user.ID,
				AssignedSection: sectionName,
				Active:          true,
			}).Error
		default:
			return findErr
		}
	})
	if err != nil {
		return fmt.Errorf("assign %s to %s: %w", email, sectionName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", email, sectionName)
	return nil
}
