package events

import "time"

// PunchAuditTopic carries every admin-side mutation of the punch ledger.
const PunchAuditTopic = "ponto.audit.v1"

const (
	PunchManualAdded   = "punch.manual_added"
	PunchManualEdited  = "punch.manual_edited"
	PunchManualDeleted = "punch.manual_deleted"
)

type PunchAuditEvent struct {
	EventType     string    `json:"event_type"`
	PunchID       string    `json:"punch_id"`
	UserID        string    `json:"user_id"`
	AdminID       string    `json:"admin_id"`
	Date          string    `json:"date"`
	PunchType     string    `json:"punch_type"`
	Time          string    `json:"time,omitempty"`
	Justification string    `json:"justification"`
	OccurredAt    time.Time `json:"occurred_at"`
}
