package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/trackside/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Controller{},
		&models.Train{},
		&models.AuditLog{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedAdmin upserts the bootstrap ADMIN user by email and returns it.
func SeedAdmin(db *gorm.DB, name, email string) (*models.User, error) {
	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role"}),
	}).Create(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("db: seed admin %q: %w", email, result.Error)
	}

	var out models.User
	if err := db.Where("email = ?", email).First(&out).Error; err != nil {
		return nil, fmt.Errorf("db: load admin %q: %w", email, err)
	}
	return &out, nil
}
