package adjustment

import "time"

type SubmitRequest struct {
	Date    string  `json:"date" binding:"required"`
	OldTime *string `json:"old_time"`
	NewTime string  `json:"new_time" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Reason  string  `json:"reason" binding:"required"`
}

type ListQuery struct {
	Status string `form:"status"`
}

type AdjustmentResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	UserName   string     `json:"user_name,omitempty"`
	UserEmail  string     `json:"user_email,omitempty"`
	Date       string     `json:"date"`
	OldTime    *string    `json:"old_time"`
	NewTime    string     `json:"new_time"`
	Type       string     `json:"type"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
