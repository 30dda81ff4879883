package report

import (
	"context"

	"gorm.io/gorm"
)

// DayAggregate is the ledger collapsed to one row per date with the four
// typed times pivoted into columns.
type DayAggregate struct {
	Date       string  `gorm:"column:date"`
	Entry      *string `gorm:"column:entry"`
	BreakStart *string `gorm:"column:break_start"`
	BreakEnd   *string `gorm:"column:break_end"`
	Exit       *string `gorm:"column:exit"`
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	AggregateRange(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error)
	CountEmployees(ctx context.Context) (int64, error)
	CountPresentToday(ctx context.Context, date string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AggregateRange(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error) {
	var rows []DayAggregate
	err := r.db.WithContext(ctx).
		Table("time_records").
		Select(`date,
			MAX(CASE WHEN type = 'entry' THEN time END) AS entry,
			MAX(CASE WHEN type = 'break_start' THEN time END) AS break_start,
			MAX(CASE WHEN type = 'break_end' THEN time END) AS break_end,
			MAX(CASE WHEN type = 'exit' THEN time END) AS exit`).
		Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("role = ?", "employee").
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) CountPresentToday(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("time_records").
		Where("date = ?", date).
		Where("type = ?", "entry").
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
