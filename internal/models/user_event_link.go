package models

import "time"

// UserEventLink ties a user's calendar entry to a project. Owned by the
// project and removed together with it.
type UserEventLink struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	EventAt   time.Time `gorm:"not null" json:"event_at"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
