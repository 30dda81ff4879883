package adjustment

import (
	"time"

	"github.com/google/uuid"
)

// AdjustmentRequest is an employee's claim that a punch is wrong or
// missing. OldTime is a caller-supplied hint of the currently observed
// value and is nil when the punch never existed; it is not re-validated
// against the ledger at submission time.
type AdjustmentRequest struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Date       string     `gorm:"column:date;type:varchar(10);not null"`
	OldTime    *string    `gorm:"column:old_time;type:varchar(5)"`
	NewTime    string     `gorm:"column:new_time;type:varchar(5);not null"`
	Type       string     `gorm:"column:type;type:varchar(15);not null"`
	Reason     string     `gorm:"column:reason;type:text;not null"`
	Status     string     `gorm:"column:status;type:varchar(10);not null;default:pending"`
	ReviewedBy *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (AdjustmentRequest) TableName() string {
	return "adjustment_requests"
}

// RequestWithUser carries the requester's identity for review listings.
type RequestWithUser struct {
	AdjustmentRequest
	UserName  string `gorm:"column:user_name"`
	UserEmail string `gorm:"column:user_email"`
}
