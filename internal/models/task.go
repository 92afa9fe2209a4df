package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusBacklog   TaskStatus = "BACKLOG"
	TaskStatusInProcess TaskStatus = "IN_PROCESS"
	TaskStatusDone      TaskStatus = "DONE"
)

// ParseTaskStatus resolves a wire value to a status, rejecting anything
// outside the enum.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch status := TaskStatus(s); status {
	case TaskStatusBacklog, TaskStatusInProcess, TaskStatusDone:
		return status, nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

type TaskKind string

const (
	TaskKindFeature TaskKind = "FEATURE"
	TaskKindBug     TaskKind = "BUG"
)

// ParseTaskKind resolves a wire value to a kind, rejecting anything outside
// the enum.
func ParseTaskKind(s string) (TaskKind, error) {
	switch kind := TaskKind(s); kind {
	case TaskKindFeature, TaskKindBug:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown task kind %q", s)
	}
}

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	ProjectID    uint64     `gorm:"not null;index" json:"project_id"`
	SprintID     *uint64    `gorm:"index" json:"sprint_id,omitempty"`
	ParentTaskID *uint64    `json:"parent_task_id,omitempty"`
	AuthorID     uint64     `gorm:"not null" json:"author_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	CreationDate time.Time  `gorm:"not null" json:"creation_date"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'BACKLOG'" json:"status"`
	Kind         TaskKind   `gorm:"type:varchar(20);not null" json:"kind"`
	Priority     int        `gorm:"not null;default:0" json:"priority"`

	AcceptanceCriteria *string    `gorm:"type:text" json:"acceptance_criteria,omitempty"`
	UserStory          *string    `gorm:"type:text" json:"user_story,omitempty"`
	InitialEstimate    *int       `json:"initial_estimate,omitempty"`
	VCSCommit          *string    `gorm:"type:varchar(255)" json:"vcs_commit,omitempty"`
	BTSTicket          *int       `json:"bts_ticket,omitempty"`
	CompletionDate     *time.Time `gorm:"index" json:"completion_date,omitempty"`
	TimeSpent          *int       `json:"time_spent,omitempty"`
	Effort             *float64   `json:"effort,omitempty"`

	// Relations
	Project     Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Sprint      *Sprint      `gorm:"foreignKey:SprintID" json:"sprint,omitempty"`
	ParentTask  *Task        `gorm:"foreignKey:ParentTaskID" json:"parent_task,omitempty"`
	Author      User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
