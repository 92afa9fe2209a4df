package models

type Project struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	Alias       string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"alias"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	VCSLink     *string `gorm:"type:varchar(255)" json:"vcs_link,omitempty"`
	BTSLink     *string `gorm:"type:varchar(255)" json:"bts_link,omitempty"`
	CISLink     *string `gorm:"type:varchar(255)" json:"cis_link,omitempty"`

	// Relations
	Memberships []Membership `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Sprints     []Sprint     `gorm:"foreignKey:ProjectID" json:"sprints,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
