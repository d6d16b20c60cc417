package presence

import "time"

// MemberPosition is the one logical row per (group, member): the latest
// known position and sharing state, upserted on every report. The row
// outlives sharing — when a member stops, is_sharing flips to false but the
// last position is kept for map continuity.
type MemberPosition struct {
	GroupID        string    `gorm:"primaryKey" json:"group_id"`
	MemberID       string    `gorm:"primaryKey" json:"member_id"`
	DisplayName    string    `json:"display_name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters *float64  `json:"accuracy_meters,omitempty"`
	BatteryPercent *int      `json:"battery_percent,omitempty"`
	IsSharing      bool      `gorm:"default:false" json:"is_sharing"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (MemberPosition) TableName() string { return "geo.member_positions" }
