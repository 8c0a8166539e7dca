package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	StuNum       int            `gorm:"not null;default:0" json:"stu_num"`
	Major        string         `gorm:"type:varchar(100)" json:"major"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Participations []Participation `gorm:"foreignKey:UserID" json:"-"`
	Resumes        []Resume        `gorm:"foreignKey:UserID" json:"-"`
	EventLinks     []UserEventLink `gorm:"foreignKey:UserID" json:"-"`
}
