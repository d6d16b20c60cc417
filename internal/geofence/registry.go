package geofence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RafiqApp/Rafiq-Backend/internal/db"
	"github.com/RafiqApp/Rafiq-Backend/internal/geo"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("geofence not found")
	ErrInvalidRadius     = errors.New("radius must be greater than zero")
	ErrInvalidCoordinate = errors.New("invalid center coordinate")
	ErrMissingName       = errors.New("zone name is required")
)

// Registry owns zone definitions for a group. Zero-field struct over the
// shared DB handle, same shape the session coordinator consumes as its
// zone source.
type Registry struct{}

type CreateInput struct {
	GroupID      string
	Name         string
	Description  string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	ZoneType     string
	CreatedBy    string
}

// Validate rejects bad zone definitions before any store touch.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrMissingName
	}
	if in.RadiusMeters <= 0 {
		return ErrInvalidRadius
	}
	if !geo.ValidCoordinate(in.Latitude, in.Longitude) {
		return ErrInvalidCoordinate
	}
	return nil
}

func (Registry) Create(in CreateInput) (*Geofence, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	zoneType := in.ZoneType
	if zoneType == "" {
		zoneType = "safe"
	}

	zone := Geofence{
		ID:           uuid.NewString(),
		GroupID:      in.GroupID,
		Name:         in.Name,
		Description:  in.Description,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		RadiusMeters: in.RadiusMeters,
		ZoneType:     zoneType,
		Active:       true,
		CreatedBy:    in.CreatedBy,
	}
	if err := db.DB.Create(&zone).Error; err != nil {
		return nil, fmt.Errorf("create geofence: %w", err)
	}
	return &zone, nil
}

// List returns a group's zones, active only unless includeInactive is set.
func (Registry) List(groupID string, includeInactive bool) ([]Geofence, error) {
	var zones []Geofence
	q := db.DB.Where("group_id = ?", groupID)
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	if err := q.Order("created_at").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	return zones, nil
}

// ListByTypes filters a group's active zones by zone type tags, for the map
// UI's layer toggles.
func (Registry) ListByTypes(groupID string, types []string) ([]Geofence, error) {
	var zones []Geofence
	err := db.DB.
		Where("group_id = ? AND active = ? AND zone_type = ANY(?)", groupID, true, pq.Array(types)).
		Order("created_at").
		Find(&zones).Error
	if err != nil {
		return nil, fmt.Errorf("list geofences by type: %w", err)
	}
	return zones, nil
}

// ActiveZones is the evaluation-path read: every zone a new position sample
// must be checked against. Deletions are visible to the next call only;
// in-flight evaluations on a stale list are tolerated.
func (Registry) ActiveZones(groupID string) ([]Geofence, error) {
	return Registry{}.List(groupID, false)
}

func (Registry) Get(zoneID string) (*Geofence, error) {
	var zone Geofence
	err := db.DB.First(&zone, "id = ?", zoneID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get geofence: %w", err)
	}
	return &zone, nil
}

// Deactivate flips the active flag; the definition survives for history.
func (Registry) Deactivate(zoneID string) error {
	res := db.DB.Model(&Geofence{}).Where("id = ?", zoneID).Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate geofence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the definition. Historical alerts are untouched; they
// carry their own zone-name snapshot.
func (Registry) Delete(zoneID string) error {
	res := db.DB.Delete(&Geofence{}, "id = ?", zoneID)
	if res.Error != nil {
		return fmt.Errorf("delete geofence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
