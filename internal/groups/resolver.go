package groups

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/RafiqApp/Rafiq-Backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("group not found")

// joinCodeAlphabet avoids 0/O and 1/I so codes survive being read aloud.
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const joinCodeLength = 6

// Resolver is the group lookup the session coordinator joins through.
// Zero-field struct over the shared DB handle.
type Resolver struct{}

func (Resolver) Create(name, organizerID string) (*Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name is required")
	}

	group := Group{
		ID:          uuid.NewString(),
		Name:        name,
		JoinCode:    newJoinCode(),
		OrganizerID: organizerID,
	}
	if err := db.DB.Create(&group).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &group, nil
}

func (Resolver) ResolveByCode(code string) (*Group, error) {
	var group Group
	err := db.DB.First(&group, "join_code = ?", strings.ToUpper(strings.TrimSpace(code))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve join code: %w", err)
	}
	return &group, nil
}

func (Resolver) Get(groupID string) (*Group, error) {
	var group Group
	err := db.DB.First(&group, "id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &group, nil
}

func newJoinCode() string {
	buf := make([]byte, joinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in a bad way; fall back
		// to a uuid-derived code rather than crash group creation.
		return strings.ToUpper(uuid.NewString()[:joinCodeLength])
	}
	for i, b := range buf {
		buf[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(buf)
}
