package models

import "time"

// Train type enum values.
const (
	TypePassenger = "PASSENGER"
	TypeExpress   = "EXPRESS"
	TypeFreight   = "FREIGHT"
	TypeLocal     = "LOCAL"
)

// Train priority enum values, ordered LOW < MEDIUM < HIGH < URGENT.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Train status enum values. A train starts SCHEDULED; COMPLETED and
// CANCELLED are terminal.
const (
	StatusScheduled = "SCHEDULED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Train is a physical train movement under traffic control.
type Train struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Number      string    `gorm:"size:32;uniqueIndex;not null"` // business reporting number
	Type        string    `gorm:"size:16;not null"`
	ScheduledAt time.Time `gorm:"not null"`
	Section     string    `gorm:"size:64;index;not null"`
	Platform    string    `gorm:"size:16"`
	Priority    string    `gorm:"size:16;default:MEDIUM"`
	Status      string    `gorm:"size:16;default:SCHEDULED;index"`
	DelayMin    int       `gorm:"default:0"`
	CreatorID   string    `gorm:"size:36;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Creator *User `gorm:"foreignKey:CreatorID"`
}

// Active reports whether the train occupies section capacity.
func (t *Train) Active() bool {
	return t.Status == StatusScheduled || t.Status == StatusRunning
}

// Terminal reports whether the train has reached a final status.
func (t *Train) Terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusCancelled
}

// ValidType reports whether s is a known train type.
func ValidType(s string) bool {
	switch s {
	case TypePassenger, TypeExpress, TypeFreight, TypeLocal:
		return true
	}
	return false
}

// ValidPriority reports whether s is a known priority.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
