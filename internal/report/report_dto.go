package report

import "time"

// ReportQuery selects the subject and the range. Either period or the
// start/end pair drives the range; when both are present, period wins.
type ReportQuery struct {
	UserID    string `form:"user_id"`
	Period    string `form:"period"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// DayRow is one calendar-complete report line. Dates with no punches
// still get a row with the four times null.
type DayRow struct {
	Date             string  `json:"date"`
	Entry            *string `json:"entry"`
	BreakStart       *string `json:"break_start"`
	BreakEnd         *string `json:"break_end"`
	Exit             *string `json:"exit"`
	WorkedMinutes    int     `json:"worked_minutes"`
	ExpectedMinutes  int     `json:"expected_minutes"`
	Balance          int     `json:"balance"`
	WorkedFormatted  string  `json:"worked_formatted"`
	BalanceFormatted string  `json:"balance_formatted"`
}

type ReportResponse struct {
	UserID                string   `json:"user_id"`
	UserName              string   `json:"user_name"`
	StartDate             string   `json:"start_date"`
	EndDate               string   `json:"end_date"`
	Days                  []DayRow `json:"days"`
	TotalWorked           int      `json:"total_worked"`
	TotalExpected         int      `json:"total_expected"`
	TotalBalance          int      `json:"total_balance"`
	TotalWorkedFormatted  string   `json:"total_worked_formatted"`
	TotalBalanceFormatted string   `json:"total_balance_formatted"`
}

type PendingRequestSummary struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	NewTime   string    `json:"new_time"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardResponse struct {
	TotalEmployees  int64                   `json:"total_employees"`
	PendingRequests int64                   `json:"pending_requests"`
	PresentToday    int64                   `json:"present_today"`
	TopPending      []PendingRequestSummary `json:"top_pending"`
}
