package presence

import (
	"fmt"
	"time"

	"github.com/RafiqApp/Rafiq-Backend/internal/db"
	"gorm.io/gorm/clause"
)

// Store is the presence row store. Zero-field struct over the shared DB
// handle. Upserts are last-writer-wins on the (group, member) key; only the
// reporting device writes its own row so no versioning is needed.
type Store struct{}

func (Store) Upsert(groupID, memberID, displayName string, lat, lon float64, accuracy *float64, battery *int, isSharing bool) error {
	row := MemberPosition{
		GroupID:        groupID,
		MemberID:       memberID,
		DisplayName:    displayName,
		Latitude:       lat,
		Longitude:      lon,
		AccuracyMeters: accuracy,
		BatteryPercent: battery,
		IsSharing:      isSharing,
		UpdatedAt:      time.Now().UTC(),
	}
	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "latitude", "longitude",
			"accuracy_meters", "battery_percent", "is_sharing", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}
	return nil
}

// EnsureMember creates the placeholder row a member gets on join: zero
// coordinates, not sharing. An existing row (rejoin) is left untouched so
// the last known position survives.
func (Store) EnsureMember(groupID, memberID, displayName string) error {
	row := MemberPosition{
		GroupID:     groupID,
		MemberID:    memberID,
		DisplayName: displayName,
		UpdatedAt:   time.Now().UTC(),
	}
	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "member_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("ensure member row: %w", err)
	}
	return nil
}

func (Store) Get(groupID string) ([]MemberPosition, error) {
	var rows []MemberPosition
	if err := db.DB.Where("group_id = ?", groupID).Order("display_name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get presence: %w", err)
	}
	return rows, nil
}

func (Store) SetSharing(groupID, memberID string, isSharing bool) error {
	err := db.DB.Model(&MemberPosition{}).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Updates(map[string]interface{}{"is_sharing": isSharing, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return fmt.Errorf("set sharing: %w", err)
	}
	return nil
}

func (Store) Delete(groupID, memberID string) error {
	err := db.DB.Delete(&MemberPosition{}, "group_id = ? AND member_id = ?", groupID, memberID).Error
	if err != nil {
		return fmt.Errorf("delete presence row: %w", err)
	}
	return nil
}
