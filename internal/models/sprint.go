package models

import "time"

// Sprint dates are date-granular; the time portion is always midnight UTC.
// A sprint's ordinal number is not stored: it is the 1-based position of the
// sprint in its project's sprint list ordered by id.
type Sprint struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Goal      *string   `gorm:"type:text" json:"goal,omitempty"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tasks   []Task  `gorm:"foreignKey:SprintID" json:"tasks,omitempty"`
}
