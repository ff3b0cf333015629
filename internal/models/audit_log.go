package models

import "time"

// AuditLog records one operational action for after-the-fact review.
type AuditLog struct {
	ID           string `gorm:"primaryKey;size:36"`
	Action       string `gorm:"size:32;index;not null"`
	UserID       string `gorm:"size:36;index"`
	TrainID      string `gorm:"size:36;index"`
	ControllerID string `gorm:"size:36"`
	Details      string `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`

	User  *User  `gorm:"foreignKey:UserID"`
	Train *Train `gorm:"foreignKey:TrainID"`
}
