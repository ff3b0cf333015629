package models

import "time"

// User roles.
const (
	RoleAdmin      = "ADMIN"
	RoleController = "CONTROLLER"
	RoleUser       = "USER"
)

// User is an authenticated identity known to the system.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:128;not null"`
	Email     string `gorm:"size:128;uniqueIndex;not null"`
	Role      string `gorm:"size:16;default:USER;index"`
	CreatedAt time.Time

	Controller *Controller `gorm:"foreignKey:UserID"`
}

// Controller binds a user to the single section they operate.
type Controller struct {
	ID              string `gorm:"primaryKey;size:36"`
	UserID          string `gorm:"size:36;uniqueIndex;not null"`
	AssignedSection string `gorm:"size:64;not null"`
	Active          bool   `gorm:"default:true"`
	CreatedAt       time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleController, RoleUser:
		return true
	}
	return false
}
