package alerts

import (
	"errors"
	"fmt"
	"time"

	"github.com/RafiqApp/Rafiq-Backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("alert not found")

// Ledger is the append-only exit-alert store. Zero-field struct over the
// shared DB handle.
type Ledger struct{}

// NewAlert is everything the pipeline snapshots at breach time. ZoneName is
// the caller's last-known name, so recording never blocks on a race with
// zone deletion.
type NewAlert struct {
	GroupID        string
	ZoneID         string
	ZoneName       string
	MemberID       string
	MemberName     string
	Latitude       float64
	Longitude      float64
	DistanceMeters float64
}

func (Ledger) Record(in NewAlert) (*GeofenceAlert, error) {
	alert := GeofenceAlert{
		ID:             uuid.NewString(),
		GroupID:        in.GroupID,
		ZoneID:         in.ZoneID,
		ZoneName:       in.ZoneName,
		MemberID:       in.MemberID,
		MemberName:     in.MemberName,
		Type:           TypeExit,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		DistanceMeters: in.DistanceMeters,
	}
	if err := db.DB.Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("record alert: %w", err)
	}
	return &alert, nil
}

func (Ledger) ListUnacknowledged(groupID string) ([]GeofenceAlert, error) {
	var list []GeofenceAlert
	err := db.DB.
		Where("group_id = ? AND acknowledged = ?", groupID, false).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list unacknowledged alerts: %w", err)
	}
	return list, nil
}

// Acknowledge marks an alert handled. Idempotent: a second acknowledgment
// is a no-op and the first acknowledger is retained.
func (Ledger) Acknowledge(alertID, ackByID string) (*GeofenceAlert, error) {
	now := time.Now().UTC()
	res := db.DB.Model(&GeofenceAlert{}).
		Where("id = ? AND acknowledged = ?", alertID, false).
		Updates(map[string]interface{}{
			"acknowledged":    true,
			"acknowledged_by": ackByID,
			"acknowledged_at": now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("acknowledge alert: %w", res.Error)
	}

	var alert GeofenceAlert
	err := db.DB.First(&alert, "id = ?", alertID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load alert: %w", err)
	}
	return &alert, nil
}
