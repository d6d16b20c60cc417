// Package channel is the per-group realtime fan-out bus: presence updates
// and new alerts go to every currently connected subscriber of a group.
// Best-effort, at-most-once; there is no replay.
package channel

import (
	"sync"

	"github.com/RafiqApp/Rafiq-Backend/internal/metrics"
)

const defaultBuffer = 32

// Hub tracks subscriber sets per group id.
type Hub struct {
	mu     sync.Mutex
	groups map[string]map[*Subscription]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		groups: make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscription is one connected client's event stream. Close exactly once
// when done; the channel C is closed by Close.
type Subscription struct {
	C chan Event

	hub     *Hub
	groupID string
	mu      sync.Mutex
	closed  bool
	once    sync.Once
}

func (h *Hub) Subscribe(groupID string) *Subscription {
	sub := &Subscription{
		C:       make(chan Event, h.buffer),
		hub:     h,
		groupID: groupID,
	}

	h.mu.Lock()
	set, ok := h.groups[groupID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.groups[groupID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	metrics.ChannelSubscribers.Inc()
	return sub
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		if set, ok := s.hub.groups[s.groupID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(s.hub.groups, s.groupID)
			}
		}
		s.hub.mu.Unlock()

		// The closed flag keeps a concurrent Publish holding an older
		// subscriber snapshot from sending on a closed channel.
		s.mu.Lock()
		s.closed = true
		close(s.C)
		s.mu.Unlock()

		metrics.ChannelSubscribers.Dec()
	})
}

// send is non-blocking: a subscriber whose buffer is full loses the event
// rather than stalling the publisher.
func (s *Subscription) send(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.C <- ev:
		return true
	default:
		return false
	}
}

// Publish delivers the event to every current subscriber of the group and
// returns the delivered count.
func (h *Hub) Publish(groupID string, ev Event) int {
	h.mu.Lock()
	set := h.groups[groupID]
	subs := make([]*Subscription, 0, len(set))
	for sub := range set {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	delivered := 0
	for _, sub := range subs {
		if sub.send(ev) {
			delivered++
		} else {
			metrics.EventsDropped.Inc()
		}
	}
	metrics.EventsPublished.WithLabelValues(ev.Type).Inc()
	return delivered
}
