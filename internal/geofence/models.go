package geofence

import "time"

// Geofence is a named circular safety zone owned by a group. Definitions are
// never mutated in place once created; they are deactivated or hard-deleted,
// and historical alerts keep their own snapshot of the zone's identity.
type Geofence struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	GroupID      string    `gorm:"index;not null" json:"group_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	RadiusMeters float64   `gorm:"not null" json:"radius_meters"`
	ZoneType     string    `gorm:"default:'safe'" json:"zone_type"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Geofence) TableName() string { return "geo.geofences" }
