package models

// Membership grants a user access to a project and everything under it.
// Existence of a row is the entire authorization model.
type Membership struct {
	UserID    uint64 `gorm:"primarykey" json:"user_id"`
	ProjectID uint64 `gorm:"primarykey" json:"project_id"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
