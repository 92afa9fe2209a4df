package models

type User struct {
	ID           uint64  `gorm:"primarykey" json:"id"`
	Username     string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string  `gorm:"type:varchar(255);not null" json:"email"`
	Avatar       *string `gorm:"type:varchar(255)" json:"avatar,omitempty"`

	// Relations
	Memberships   []Membership `gorm:"foreignKey:UserID" json:"-"`
	AuthoredTasks []Task       `gorm:"foreignKey:AuthorID" json:"-"`
	Assignments   []Assignment `gorm:"foreignKey:UserID" json:"-"`
	Comments      []Comment    `gorm:"foreignKey:AuthorID" json:"-"`
}
