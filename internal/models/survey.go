package models

import (
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionText   QuestionType = "TEXT"
	QuestionChoice QuestionType = "CHOICE"
)

type Survey struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	OwnerID     uint64         `gorm:"not null;index" json:"owner_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner     User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Questions []SurveyQuestion `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}

type SurveyQuestion struct {
	ID       uint64       `gorm:"primarykey" json:"id"`
	SurveyID uint64       `gorm:"not null;index" json:"survey_id"`
	Seq      int          `gorm:"not null" json:"seq"`
	Text     string       `gorm:"type:varchar(500);not null" json:"text"`
	Type     QuestionType `gorm:"type:varchar(20);not null;default:'TEXT'" json:"type"`

	// Relations
	Options []SurveyOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

type SurveyOption struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	QuestionID uint64 `gorm:"not null;index" json:"question_id"`
	Seq        int    `gorm:"not null" json:"seq"`
	Text       string `gorm:"type:varchar(255);not null" json:"text"`
}
