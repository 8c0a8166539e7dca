package models

import "time"

type ProjectRole string

const (
	RoleCreator   ProjectRole = "CREATOR"
	RoleApplicant ProjectRole = "APPLICANT"
)

// Participation links a user to a project with a role. The composite unique
// index closes the duplicate-apply race at the storage layer: two concurrent
// applies for the same (project, user) pair cannot both commit.
type Participation struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	ProjectID uint64      `gorm:"not null;uniqueIndex:idx_participations_project_user" json:"project_id"`
	UserID    uint64      `gorm:"not null;uniqueIndex:idx_participations_project_user" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null" json:"role"`
	// ResumePath is a snapshot of the resume file path at apply time.
	// It is copied by value so later resume edits or deletes do not
	// rewrite application history.
	ResumePath string    `gorm:"type:varchar(512)" json:"resume_path"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
