package shift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is a named daily schedule template. TotalMinutes is stored
// precomputed and validated against the boundary times on create/update;
// it is not re-derived on read.
type Shift struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"column:name;type:varchar(100);not null"`
	StartTime    string    `gorm:"column:start_time;type:varchar(5);not null"`
	BreakStart   string    `gorm:"column:break_start;type:varchar(5);not null"`
	BreakEnd     string    `gorm:"column:break_end;type:varchar(5);not null"`
	EndTime      string    `gorm:"column:end_time;type:varchar(5);not null"`
	TotalMinutes int       `gorm:"column:total_minutes;type:int;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Shift) TableName() string {
	return "shifts"
}
