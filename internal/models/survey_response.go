package models

import "time"

// SurveyResponse is append-only: submissions are never edited or replaced.
type SurveyResponse struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	SurveyID    uint64    `gorm:"not null;index" json:"survey_id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	SubmittedAt time.Time `json:"submitted_at"`

	// Relations
	Survey  Survey         `gorm:"foreignKey:SurveyID" json:"survey,omitempty"`
	User    User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Answers []SurveyAnswer `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
}

type SurveyAnswer struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	ResponseID uint64 `gorm:"not null;index" json:"response_id"`
	QuestionID uint64 `gorm:"not null;index" json:"question_id"`
	Value      string `gorm:"type:text" json:"value"`
}
