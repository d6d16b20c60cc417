// Package tracker holds the per-(member, zone) membership state machine.
// State lives only in memory: it is reseeded from the first sample after a
// (re)connect, which is why the first evaluation never emits a transition.
package tracker

import (
	"sync"

	"github.com/RafiqApp/Rafiq-Backend/internal/geo"
	"github.com/RafiqApp/Rafiq-Backend/internal/geofence"
)

// State is a member's membership relative to one zone.
type State int

const (
	StateUnknown State = iota
	StateInside
	StateOutside
)

func (s State) String() string {
	switch s {
	case StateInside:
		return "INSIDE"
	case StateOutside:
		return "OUTSIDE"
	default:
		return "UNKNOWN"
	}
}

// Transition is an INSIDE→OUTSIDE exit event for one zone. At most one per
// zone per evaluated sample.
type Transition struct {
	GroupID        string
	ZoneID         string
	ZoneName       string
	MemberID       string
	Latitude       float64
	Longitude      float64
	DistanceMeters float64
}

type stateKey struct {
	memberID string
	zoneID   string
}

// Tracker evaluates position samples against a group's active zones and
// detects exit transitions. Safe for concurrent use across members.
type Tracker struct {
	mu     sync.Mutex
	states map[stateKey]State
}

func New() *Tracker {
	return &Tracker{states: make(map[stateKey]State)}
}

// Evaluate runs one position sample across all given zones and returns the
// exit transitions it produced.
//
// Per zone: the first evaluation seeds the state silently (no spurious exit
// on startup); INSIDE→OUTSIDE emits a transition; OUTSIDE→INSIDE flips the
// state silently (re-entry alerting is intentionally not raised); anything
// else is a no-op. The boundary counts as inside: distance == radius is
// INSIDE.
func (t *Tracker) Evaluate(memberID string, lat, lon float64, zones []geofence.Geofence) []Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	var transitions []Transition
	for _, zone := range zones {
		d := geo.DistanceMeters(lat, lon, zone.Latitude, zone.Longitude)
		inside := d <= zone.RadiusMeters

		key := stateKey{memberID: memberID, zoneID: zone.ID}
		prior, seen := t.states[key]
		if !seen || prior == StateUnknown {
			if inside {
				t.states[key] = StateInside
			} else {
				t.states[key] = StateOutside
			}
			continue
		}

		switch {
		case prior == StateInside && !inside:
			t.states[key] = StateOutside
			transitions = append(transitions, Transition{
				GroupID:        zone.GroupID,
				ZoneID:         zone.ID,
				ZoneName:       zone.Name,
				MemberID:       memberID,
				Latitude:       lat,
				Longitude:      lon,
				DistanceMeters: d,
			})
		case prior == StateOutside && inside:
			t.states[key] = StateInside
		}
	}
	return transitions
}

// StateOf reports the current membership state for a member and zone.
func (t *Tracker) StateOf(memberID, zoneID string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[stateKey{memberID: memberID, zoneID: zoneID}]
}

// Forget drops all of a member's membership state. Called on session
// teardown so a reconnect reseeds cleanly.
func (t *Tracker) Forget(memberID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key := range t.states {
		if key.memberID == memberID {
			delete(t.states, key)
		}
	}
}
