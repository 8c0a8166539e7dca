package models

import (
	"time"

	"gorm.io/gorm"
)

type Resume struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	UserID     uint64         `gorm:"not null;index" json:"user_id"`
	Title      string         `gorm:"type:varchar(255);not null" json:"title"`
	ResumePath string         `gorm:"type:varchar(512);not null" json:"resume_path"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
