package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"column:name;type:varchar(255);not null"`
	Email        string         `gorm:"column:email;type:varchar(255);uniqueIndex:uq_users_email;not null"`
	CPF          string         `gorm:"column:cpf;type:varchar(14);uniqueIndex:uq_users_cpf;not null"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string         `gorm:"column:role;type:varchar(20);not null"`
	ShiftID      *uuid.UUID     `gorm:"column:shift_id;type:uuid;index"`
	Shift        *ShiftRef      `gorm:"foreignKey:ShiftID;references:ID"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

// ShiftRef is the slim projection of a shift used when listing employees.
type ShiftRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"column:name"`
	StartTime    string    `gorm:"column:start_time"`
	BreakStart   string    `gorm:"column:break_start"`
	BreakEnd     string    `gorm:"column:break_end"`
	EndTime      string    `gorm:"column:end_time"`
	TotalMinutes int       `gorm:"column:total_minutes"`
}

func (ShiftRef) TableName() string {
	return "shifts"
}

// ShiftHistory records which shift a user was assigned over which period.
// The open interval (EndDate nil) is the current assignment; it is closed
// dated "today" whenever the assignment changes.
type ShiftHistory struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	ShiftID   uuid.UUID  `gorm:"column:shift_id;type:uuid;not null"`
	StartDate time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate   *time.Time `gorm:"column:end_date;type:date"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (ShiftHistory) TableName() string {
	return "user_shift_history"
}
