package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectType string

const (
	ProjectOngoing ProjectType = "ONGOING"
	ProjectDone    ProjectType = "DONE"
)

// seoulTZ pins project timestamps to campus local time.
var seoulTZ = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}()

type Project struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Description string      `gorm:"type:text;not null" json:"description"`
	ProjectType ProjectType `gorm:"type:varchar(20);not null;default:'ONGOING'" json:"project_type"`
	// Start marks recruiting as closed by the creator.
	Start      bool      `gorm:"not null;default:false" json:"start"`
	CreatedAt  time.Time `gorm:"<-:create" json:"created_at"`
	DeadlineAt time.Time `gorm:"not null" json:"deadline_at"`
	Image      string    `gorm:"type:varchar(512)" json:"image"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations owned by the project; deleting a project removes them
	// in the same transaction (see ProjectRepository.Delete).
	Participations []Participation `gorm:"foreignKey:ProjectID" json:"participations,omitempty"`
	EventLinks     []UserEventLink `gorm:"foreignKey:ProjectID" json:"event_links,omitempty"`
}

// BeforeCreate assigns CreatedAt exactly once. The column is marked
// create-only so later saves never touch it.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().In(seoulTZ)
	}
	if p.ProjectType == "" {
		p.ProjectType = ProjectOngoing
	}
	return nil
}

func (p *Project) IsOnGoing() bool {
	return p.ProjectType == ProjectOngoing
}
