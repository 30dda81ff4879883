package punch

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Punch) error
	FindByID(ctx context.Context, id string) (*Punch, error)
	FindByUserDateType(ctx context.Context, userID, date, punchType string) (*Punch, error)
	FindAllForUserDate(ctx context.Context, userID, date string) ([]Punch, error)
	List(ctx context.Context, q ListQuery) ([]Punch, error)
	Update(ctx context.Context, p *Punch) error
	Delete(ctx context.Context, id string) error
	FindDayWithUser(ctx context.Context, userID, date string) ([]DayRecord, error)
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

func (r *repository) Create(ctx context.Context, p *Punch) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Punch, error) {
	var p Punch
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByUserDateType(ctx context.Context, userID, date, punchType string) (*Punch, error) {
	var p Punch
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		Where("type = ?", punchType).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAllForUserDate(ctx context.Context, userID, date string) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]Punch, error) {
	tx := r.db.WithContext(ctx)
	if q.UserID != "" {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	if q.Date != "" {
		tx = tx.Where("date = ?", q.Date)
	}
	if q.StartDate != "" && q.EndDate != "" {
		tx = tx.Where("date BETWEEN ? AND ?", q.StartDate, q.EndDate)
	}

	var rows []Punch
	err := tx.Order("date DESC, time DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *Punch) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Punch{}, "id = ?", id).Error
}

func (r *repository) FindDayWithUser(ctx context.Context, userID, date string) ([]DayRecord, error) {
	var rows []DayRecord
	err := r.db.WithContext(ctx).
		Table("time_records tr").
		Select("tr.*, u.name AS user_name").
		Joins("LEFT JOIN users u ON u.id = tr.user_id").
		Where("tr.user_id = ?", userID).
		Where("tr.date = ?", date).
		Order("tr.time ASC").
		Scan(&rows).Error
	return rows, err
}
