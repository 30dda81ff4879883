package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	shifterrors "github.com/yungsandro2003/vivaponto/internal/shift/errors"
	"github.com/yungsandro2003/vivaponto/internal/timecalc"
)

const catalogCacheKey = "shifts:catalog"

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetAll(ctx context.Context) ([]ShiftResponse, error)
	GetByID(ctx context.Context, id string) (ShiftResponse, error)
	Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// validateBoundaries enforces the catalog invariant: the stored total must
// equal (break_start - start) + (end - break_end) and be positive. The
// stored value is trusted afterwards, so this is the only gate.
func validateBoundaries(start, breakStart, breakEnd, end string, total int) error {
	startMin := timecalc.TimeToMinutes(start)
	bsMin := timecalc.TimeToMinutes(breakStart)
	beMin := timecalc.TimeToMinutes(breakEnd)
	endMin := timecalc.TimeToMinutes(end)
	if startMin == timecalc.InvalidTime || bsMin == timecalc.InvalidTime ||
		beMin == timecalc.InvalidTime || endMin == timecalc.InvalidTime {
		return shifterrors.ErrInvalidBoundaryTimes
	}

	computed := (bsMin - startMin) + (endMin - beMin)
	if computed <= 0 {
		return shifterrors.ErrNonPositiveTotal
	}
	if computed != total {
		return shifterrors.ErrTotalMinutesMismatch
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error) {
	s.logger.Debug("create shift requested", zap.String("name", req.Name))

	if err := validateBoundaries(req.StartTime, req.BreakStart, req.BreakEnd, req.EndTime, req.TotalMinutes); err != nil {
		s.logger.Warn("create shift validation failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	row := &Shift{
		ID:           uuid.New(),
		Name:         req.Name,
		StartTime:    req.StartTime,
		BreakStart:   req.BreakStart,
		BreakEnd:     req.BreakEnd,
		EndTime:      req.EndTime,
		TotalMinutes: req.TotalMinutes,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create shift persist failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("create shift success", zap.String("shift_id", row.ID.String()))
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]ShiftResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var resp []ShiftResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(catalogCacheKey, func() (interface{}, error) {
		shifts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]ShiftResponse, len(shifts))
		for i, row := range shifts {
			resp[i] = mapToResponse(row)
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, catalogCacheKey, payload, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ShiftResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ShiftResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidShiftID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	s.logger.Debug("update shift requested", zap.String("shift_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidShiftID
	}
	if err := validateBoundaries(req.StartTime, req.BreakStart, req.BreakEnd, req.EndTime, req.TotalMinutes); err != nil {
		s.logger.Warn("update shift validation failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	row.Name = req.Name
	row.StartTime = req.StartTime
	row.BreakStart = req.BreakStart
	row.BreakEnd = req.BreakEnd
	row.EndTime = req.EndTime
	row.TotalMinutes = req.TotalMinutes

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("update shift persist failed", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("update shift success", zap.String("shift_id", id))
	return mapToResponse(*row), nil
}

// Delete refuses to remove a shift that employees still reference so the
// catalog never leaves dangling assignments behind.
func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete shift requested", zap.String("shift_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return shifterrors.ErrInvalidShiftID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete shift begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shifterrors.ErrShiftNotFound
		}
		return err
	}

	assigned, err := qtx.CountAssignedUsers(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		s.logger.Warn("delete shift refused, still assigned",
			zap.String("shift_id", id),
			zap.Int64("assigned_users", assigned),
		)
		return shifterrors.ErrShiftInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete shift persist failed", zap.String("shift_id", id), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("delete shift success", zap.String("shift_id", id))
	return nil
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.logger.Error("invalidate shift catalog cache failed", zap.Error(err))
	}
}

func mapToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		StartTime:    s.StartTime,
		BreakStart:   s.BreakStart,
		BreakEnd:     s.BreakEnd,
		EndTime:      s.EndTime,
		TotalMinutes: s.TotalMinutes,
	}
}
