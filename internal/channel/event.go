package channel

// Event is one notification fanned out to a group's subscribers. Delivery
// is a hint, not a log: clients that miss events reconcile against the
// presence store and alert ledger on reconnect.
type Event struct {
	Type    string `json:"type"`
	GroupID string `json:"group_id"`
	Payload any    `json:"payload"`
}

const (
	EventPresenceUpdate = "presence_update"
	EventAlertCreated   = "alert_created"
)
