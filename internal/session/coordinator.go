// Package session owns the start/stop sharing lifecycle. Each sharing
// session gets one goroutine draining an ordered sample queue, so a member's
// reports are processed in submission order while sessions stay fully
// independent of each other.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/RafiqApp/Rafiq-Backend/internal/alerts"
	"github.com/RafiqApp/Rafiq-Backend/internal/channel"
	"github.com/RafiqApp/Rafiq-Backend/internal/geofence"
	"github.com/RafiqApp/Rafiq-Backend/internal/groups"
	"github.com/RafiqApp/Rafiq-Backend/internal/metrics"
	"github.com/RafiqApp/Rafiq-Backend/internal/tracker"
)

var (
	ErrNotSharing = errors.New("member is not sharing in this group")
	ErrQueueFull  = errors.New("sample queue is full")
)

// Sample is one position report from a member's device.
type Sample struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters *float64
	BatteryPercent *int
}

// The coordinator's collaborators, kept as narrow interfaces so tests run
// without postgres. The gorm-backed stores satisfy these directly.

type PresenceStore interface {
	Upsert(groupID, memberID, displayName string, lat, lon float64, accuracy *float64, battery *int, isSharing bool) error
	EnsureMember(groupID, memberID, displayName string) error
	SetSharing(groupID, memberID string, isSharing bool) error
	Delete(groupID, memberID string) error
}

type ZoneSource interface {
	ActiveZones(groupID string) ([]geofence.Geofence, error)
}

type AlertRecorder interface {
	Record(in alerts.NewAlert) (*alerts.GeofenceAlert, error)
}

type Publisher interface {
	Publish(groupID string, ev channel.Event) int
}

type GroupResolver interface {
	ResolveByCode(code string) (*groups.Group, error)
}

type Deps struct {
	Presence PresenceStore
	Zones    ZoneSource
	Alerts   AlertRecorder
	Groups   GroupResolver
	Bus      Publisher
}

type sessionKey struct {
	groupID  string
	memberID string
}

type session struct {
	groupID     string
	memberID    string
	displayName string
	samples     chan Sample
	cancel      context.CancelFunc
	done        chan struct{}
}

// Coordinator drives the per-sample pipeline: presence upsert → membership
// evaluation → alert record + publish → presence publish.
type Coordinator struct {
	deps      Deps
	queueSize int
	tracker   *tracker.Tracker

	mu       sync.Mutex
	sessions map[sessionKey]*session
}

func NewCoordinator(deps Deps, queueSize int) *Coordinator {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Coordinator{
		deps:      deps,
		queueSize: queueSize,
		tracker:   tracker.New(),
		sessions:  make(map[sessionKey]*session),
	}
}

// StartSharing moves the member to the SHARING state and begins draining
// their sample queue. Starting an already-sharing session is a no-op.
func (c *Coordinator) StartSharing(groupID, memberID, displayName string) error {
	key := sessionKey{groupID: groupID, memberID: memberID}

	c.mu.Lock()
	if _, exists := c.sessions[key]; exists {
		c.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		groupID:     groupID,
		memberID:    memberID,
		displayName: displayName,
		samples:     make(chan Sample, c.queueSize),
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	c.sessions[key] = sess
	c.mu.Unlock()

	metrics.ActiveSessions.Inc()
	slog.Info("sharing started", "group_id", groupID, "member_id", memberID)

	go c.run(ctx, sess)
	return nil
}

// Report enqueues a sample for the member's session. Samples are processed
// strictly in submission order by the session's single goroutine.
func (c *Coordinator) Report(groupID, memberID string, s Sample) error {
	c.mu.Lock()
	sess, ok := c.sessions[sessionKey{groupID: groupID, memberID: memberID}]
	c.mu.Unlock()
	if !ok {
		return ErrNotSharing
	}

	select {
	case sess.samples <- s:
		return nil
	default:
		return ErrQueueFull
	}
}

// StopSharing cancels the reporting loop, waits for any in-flight sample to
// finish, flips the presence row to not-sharing and clears membership state
// so a reconnect reseeds silently. Stopping an idle member is a no-op.
func (c *Coordinator) StopSharing(groupID, memberID string) error {
	key := sessionKey{groupID: groupID, memberID: memberID}

	c.mu.Lock()
	sess, ok := c.sessions[key]
	if ok {
		delete(c.sessions, key)
	}
	c.mu.Unlock()
	if !ok {
		return nil
	}

	sess.cancel()
	<-sess.done
	metrics.ActiveSessions.Dec()

	c.tracker.Forget(memberID)

	if err := c.deps.Presence.SetSharing(groupID, memberID, false); err != nil {
		return err
	}
	slog.Info("sharing stopped", "group_id", groupID, "member_id", memberID)
	return nil
}

// JoinGroup resolves a join code and creates the member's placeholder
// presence row (zero coordinates, not sharing).
func (c *Coordinator) JoinGroup(code, memberID, displayName string) (*groups.Group, error) {
	group, err := c.deps.Groups.ResolveByCode(code)
	if err != nil {
		return nil, err
	}
	if err := c.deps.Presence.EnsureMember(group.ID, memberID, displayName); err != nil {
		return nil, err
	}
	slog.Info("member joined group", "group_id", group.ID, "member_id", memberID)
	return group, nil
}

// LeaveGroup stops sharing if active, then removes the member's presence row.
func (c *Coordinator) LeaveGroup(groupID, memberID string) error {
	if err := c.StopSharing(groupID, memberID); err != nil {
		return err
	}
	if err := c.deps.Presence.Delete(groupID, memberID); err != nil {
		return err
	}
	slog.Info("member left group", "group_id", groupID, "member_id", memberID)
	return nil
}

// Sharing reports whether the member has an active session in the group.
func (c *Coordinator) Sharing(groupID, memberID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.sessions[sessionKey{groupID: groupID, memberID: memberID}]
	return ok
}

func (c *Coordinator) run(ctx context.Context, sess *session) {
	defer close(sess.done)
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sess.samples:
			c.process(sess, s)
		}
	}
}

// process runs one sample through the pipeline. Store or publish failures
// are logged and the session moves on to the next sample: losing one
// location sample is recoverable, killing a session mid-journey is not.
func (c *Coordinator) process(sess *session, s Sample) {
	metrics.SamplesProcessed.Inc()

	err := c.deps.Presence.Upsert(sess.groupID, sess.memberID, sess.displayName,
		s.Latitude, s.Longitude, s.AccuracyMeters, s.BatteryPercent, true)
	if err != nil {
		metrics.SamplesFailed.Inc()
		slog.Warn("presence upsert failed",
			"group_id", sess.groupID, "member_id", sess.memberID, "error", err)
	}

	zones, err := c.deps.Zones.ActiveZones(sess.groupID)
	if err != nil {
		slog.Warn("zone list unavailable, skipping evaluation",
			"group_id", sess.groupID, "error", err)
	} else {
		for _, tran := range c.tracker.Evaluate(sess.memberID, s.Latitude, s.Longitude, zones) {
			c.raiseAlert(sess, tran)
		}
	}

	c.deps.Bus.Publish(sess.groupID, channel.Event{
		Type:    channel.EventPresenceUpdate,
		GroupID: sess.groupID,
		Payload: presencePayload{
			GroupID:        sess.groupID,
			MemberID:       sess.memberID,
			DisplayName:    sess.displayName,
			Latitude:       s.Latitude,
			Longitude:      s.Longitude,
			AccuracyMeters: s.AccuracyMeters,
			BatteryPercent: s.BatteryPercent,
			IsSharing:      true,
			UpdatedAt:      time.Now().UTC(),
		},
	})
}

func (c *Coordinator) raiseAlert(sess *session, tran tracker.Transition) {
	alert, err := c.deps.Alerts.Record(alerts.NewAlert{
		GroupID:        tran.GroupID,
		ZoneID:         tran.ZoneID,
		ZoneName:       tran.ZoneName,
		MemberID:       tran.MemberID,
		MemberName:     sess.displayName,
		Latitude:       tran.Latitude,
		Longitude:      tran.Longitude,
		DistanceMeters: tran.DistanceMeters,
	})
	if err != nil {
		slog.Error("failed to record exit alert",
			"group_id", sess.groupID, "zone_id", tran.ZoneID,
			"member_id", tran.MemberID, "error", err)
		return
	}

	metrics.AlertsRaised.Inc()
	slog.Info("zone exit detected",
		"group_id", sess.groupID, "zone", tran.ZoneName,
		"member_id", tran.MemberID, "distance_m", tran.DistanceMeters)

	c.deps.Bus.Publish(sess.groupID, channel.Event{
		Type:    channel.EventAlertCreated,
		GroupID: sess.groupID,
		Payload: alert,
	})
}

// presencePayload mirrors the presence row shape for the wire without
// dragging the store package into every subscriber.
type presencePayload struct {
	GroupID        string    `json:"group_id"`
	MemberID       string    `json:"member_id"`
	DisplayName    string    `json:"display_name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters *float64  `json:"accuracy_meters,omitempty"`
	BatteryPercent *int      `json:"battery_percent,omitempty"`
	IsSharing      bool      `json:"is_sharing"`
	UpdatedAt      time.Time `json:"updated_at"`
}
