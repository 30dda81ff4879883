package events

import "time"

const (
	AdjustmentApproved = "adjustment.approved"
	AdjustmentRejected = "adjustment.rejected"
)

type AdjustmentReviewedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id"`
	ReviewerID string    `json:"reviewer_id"`
	Date       string    `json:"date"`
	PunchType  string    `json:"punch_type"`
	NewTime    string    `json:"new_time"`
	OccurredAt time.Time `json:"occurred_at"`
}
