package models

// Assignment links a task to one of its assignees. A task may have any
// number of them.
type Assignment struct {
	TaskID uint64 `gorm:"primarykey" json:"task_id"`
	UserID uint64 `gorm:"primarykey" json:"user_id"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
