package adjustment

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=adjustment_repo.go -destination=mock/adjustment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *AdjustmentRequest) error
	FindByID(ctx context.Context, id string) (*AdjustmentRequest, error)
	List(ctx context.Context, userID, status string) ([]RequestWithUser, error)
	UpdateStatusIfPending(ctx context.Context, id, status string, reviewedBy uuid.UUID, reviewedAt time.Time) (int64, error)
	CountPending(ctx context.Context) (int64, error)
	TopPending(ctx context.Context, limit int) ([]RequestWithUser, error)
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

func (r *repository) Create(ctx context.Context, req *AdjustmentRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AdjustmentRequest, error) {
	var req AdjustmentRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) List(ctx context.Context, userID, status string) ([]RequestWithUser, error) {
	tx := r.db.WithContext(ctx).
		Table("adjustment_requests ar").
		Select("ar.*, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users u ON u.id = ar.user_id")
	if userID != "" {
		tx = tx.Where("ar.user_id = ?", userID)
	}
	if status != "" {
		tx = tx.Where("ar.status = ?", status)
	}

	var rows []RequestWithUser
	err := tx.Order("ar.created_at DESC").Scan(&rows).Error
	return rows, err
}

// UpdateStatusIfPending is the compare-and-swap guarding double review:
// the row only moves when it is still pending, and the returned count
// tells the caller whether it won the race.
func (r *repository) UpdateStatusIfPending(ctx context.Context, id, status string, reviewedBy uuid.UUID, reviewedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&AdjustmentRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewedBy,
			"reviewed_at": reviewedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AdjustmentRequest{}).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count, err
}

func (r *repository) TopPending(ctx context.Context, limit int) ([]RequestWithUser, error) {
	var rows []RequestWithUser
	err := r.db.WithContext(ctx).
		Table("adjustment_requests ar").
		Select("ar.*, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users u ON u.id = ar.user_id").
		Where("ar.status = ?", StatusPending).
		Order("ar.created_at ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
