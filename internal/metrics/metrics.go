// Package metrics registers the engine's prometheus collectors on the
// default registry. main exposes them on /metrics via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SamplesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rafiq_position_samples_processed_total",
		Help: "Position samples run through the upsert/evaluate/publish pipeline.",
	})

	SamplesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rafiq_position_samples_failed_total",
		Help: "Samples whose presence upsert failed (the session continues).",
	})

	AlertsRaised = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rafiq_geofence_alerts_raised_total",
		Help: "Exit alerts recorded by the ledger.",
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rafiq_channel_events_published_total",
		Help: "Events fanned out to group subscribers, by event type.",
	}, []string{"type"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rafiq_channel_events_dropped_total",
		Help: "Events dropped because a subscriber's buffer was full.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rafiq_sharing_sessions_active",
		Help: "Sessions currently in the SHARING state.",
	})

	ChannelSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rafiq_channel_subscribers",
		Help: "Currently connected group-channel subscribers.",
	})
)
