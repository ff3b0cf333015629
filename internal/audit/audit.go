// Package audit provides append-only operational logging.
package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/trackside/internal/models"
	"gorm.io/gorm"
)

// Entry holds the fields of one audit record.
type Entry struct {
	Action       string
	UserID       string
	TrainID      string
	ControllerID string
	Details      string
}

// Record appends one audit entry. Callers on the mutation path treat
// failures as best-effort: a failed append never rolls back the action
// it describes.
func Record(db *gorm.DB, e Entry) (*models.AuditLog, error) {
	if e.Action == "" {
		return nil, fmt.Errorf("audit: action is required")
	}
	if e.UserID == "" {
		return nil, fmt.Errorf("audit: user id is required")
	}

	entry := models.AuditLog{
		ID:           uuid.NewString(),
		Action:       e.Action,
		UserID:       e.UserID,
		TrainID:      e.TrainID,
		ControllerID: e.ControllerID,
		Details:      e.Details,
		CreatedAt:    time.Now(),
	}

	if err := db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("audit: record %s: %w", e.Action, err)
	}
	return &entry, nil
}

// Recent returns the newest entries, most recent first, preloading the
// acting user and referenced train.
func Recent(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.AuditLog
	if err := db.Preload("User").Preload("Train").
		Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("audit: recent: %w", err)
	}
	return entries, nil
}
