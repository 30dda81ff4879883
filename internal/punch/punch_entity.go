package punch

import (
	"time"

	"github.com/google/uuid"
)

// Punch is one clock event for a user on a date. The composite unique
// index keeps the ledger at one row per (user, date, type); both the
// clock-in path and the admin override path lean on it as the final
// arbiter against concurrent writers.
//
// Rows are deleted for real, never soft-deleted, so a removed punch
// frees its (user, date, type) slot immediately.
type Punch struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID             uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_time_records_user_date_type"`
	Date               string     `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uq_time_records_user_date_type"`
	Time               string     `gorm:"column:time;type:varchar(5);not null"`
	Type               string     `gorm:"column:type;type:varchar(15);not null;uniqueIndex:uq_time_records_user_date_type"`
	EditedByAdmin      bool       `gorm:"column:edited_by_admin;not null;default:false"`
	AdminID            *uuid.UUID `gorm:"column:admin_id;type:uuid"`
	AdminJustification *string    `gorm:"column:admin_justification;type:text"`
	EditedAt           *time.Time `gorm:"column:edited_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (Punch) TableName() string {
	return "time_records"
}

// DayRecord is a Punch joined with the owner's name, used by the admin
// override screen to show a full day before editing it.
type DayRecord struct {
	Punch
	UserName string `gorm:"column:user_name"`
}
