package models

import "time"

type Comment struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TaskID       uint64    `gorm:"not null;index" json:"task_id"`
	AuthorID     uint64    `gorm:"not null" json:"author_id"`
	CreationDate time.Time `gorm:"not null" json:"creation_date"`
	Message      string    `gorm:"type:text;not null" json:"message"`

	// Relations
	Task   Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
