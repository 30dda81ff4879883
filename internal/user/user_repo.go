package user

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/yungsandro2003/vivaponto/internal/domain"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindEmployees(ctx context.Context) ([]User, error)
	EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	CloseOpenShiftInterval(ctx context.Context, userID string, endDate time.Time) error
	CreateShiftHistory(ctx context.Context, h *ShiftHistory) error
	FindShiftHistory(ctx context.Context, userID string) ([]ShiftHistory, error)
	ShiftExists(ctx context.Context, shiftID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Shift").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Shift").
		First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindEmployees(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Where("role = ?", domain.RoleEmployee).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", email).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) CloseOpenShiftInterval(ctx context.Context, userID string, endDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&ShiftHistory{}).
		Where("user_id = ?", userID).
		Where("end_date IS NULL").
		Update("end_date", endDate.Format("2006-01-02")).Error
}

func (r *repository) CreateShiftHistory(ctx context.Context, h *ShiftHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindShiftHistory(ctx context.Context, userID string) ([]ShiftHistory, error) {
	var rows []ShiftHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ShiftExists(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("shifts").
		Where("id = ?", shiftID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
