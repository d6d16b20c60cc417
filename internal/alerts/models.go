package alerts

import "time"

// GeofenceAlert is the durable record of one exit transition. Zone name and
// member display name are denormalized at creation time so the row survives
// zone deletion and roster changes. Rows are never deleted; acknowledgment
// is the only mutation.
type GeofenceAlert struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	GroupID        string     `gorm:"index;not null" json:"group_id"`
	ZoneID         string     `gorm:"index;not null" json:"zone_id"`
	ZoneName       string     `json:"zone_name"`
	MemberID       string     `gorm:"not null" json:"member_id"`
	MemberName     string     `json:"member_name"`
	Type           string     `gorm:"default:'exit'" json:"type"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	DistanceMeters float64    `json:"distance_meters"`
	Acknowledged   bool       `gorm:"default:false" json:"acknowledged"`
	AcknowledgedBy *string    `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (GeofenceAlert) TableName() string { return "geo.geofence_alerts" }

// TypeExit is currently the only alert type; re-entry alerting is a product
// decision that has not been made.
const TypeExit = "exit"
