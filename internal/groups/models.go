package groups

import "time"

type Group struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	JoinCode    string    `gorm:"uniqueIndex;not null" json:"join_code"`
	OrganizerID string    `gorm:"not null" json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Group) TableName() string { return "geo.groups" }
