package punch

import "time"

// ListQuery filters the raw ledger listing. Employees are pinned to their
// own rows regardless of what they send in user_id.
type ListQuery struct {
	UserID    string `form:"user_id"`
	Date      string `form:"date"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type ManualAddRequest struct {
	UserID        string `json:"user_id" binding:"required,uuid"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Type          string `json:"type" binding:"required"`
	Justification string `json:"justification" binding:"required"`
}

type ManualEditRequest struct {
	Time          string `json:"time" binding:"required"`
	Justification string `json:"justification" binding:"required"`
}

type ManualDeleteRequest struct {
	Justification string `json:"justification" binding:"required"`
}

type PunchResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Type          string     `json:"type"`
	EditedByAdmin bool       `json:"edited_by_admin"`
	AdminID       *string    `json:"admin_id,omitempty"`
	EditedAt      *time.Time `json:"edited_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TodayResponse is the clock-in screen projection: today's four typed
// times folded into one record, null where the punch is still missing.
type TodayResponse struct {
	ID         *string    `json:"id"`
	UserID     string     `json:"user_id"`
	Date       string     `json:"date"`
	Entry      *string    `json:"entry"`
	BreakStart *string    `json:"break_start"`
	BreakEnd   *string    `json:"break_end"`
	Exit       *string    `json:"exit"`
	CreatedAt  *time.Time `json:"created_at"`
}

type DayRecordResponse struct {
	PunchResponse
	UserName string `json:"user_name"`
}
