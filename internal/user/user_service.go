package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yungsandro2003/vivaponto/internal/domain"
	usererrors "github.com/yungsandro2003/vivaponto/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	ListEmployees(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
	ShiftHistory(ctx context.Context, id string) ([]ShiftHistoryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) ListEmployees(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindEmployees(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// Update changes an employee's name, email and shift assignment. A shift
// change closes the open shift-history interval dated today and opens a
// new one, so reports keep an audit trail of past schedules.
func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error) {
	s.logger.Debug("update employee requested", zap.String("user_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	var newShiftID *uuid.UUID
	if req.ShiftID != nil && *req.ShiftID != "" {
		parsed, err := uuid.Parse(*req.ShiftID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidShiftID
		}
		newShiftID = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrEmployeeNotFound
		}
		return UserResponse{}, err
	}
	if u.Role != domain.RoleEmployee {
		return UserResponse{}, usererrors.ErrEmployeeNotFound
	}

	taken, err := qtx.EmailTakenByOther(ctx, req.Email, id)
	if err != nil {
		return UserResponse{}, err
	}
	if taken {
		return UserResponse{}, usererrors.ErrEmailAlreadyExists
	}

	if newShiftID != nil {
		exists, err := qtx.ShiftExists(ctx, newShiftID.String())
		if err != nil {
			return UserResponse{}, err
		}
		if !exists {
			return UserResponse{}, usererrors.ErrShiftNotFound
		}
	}

	shiftChanged := newShiftID != nil &&
		(u.ShiftID == nil || *u.ShiftID != *newShiftID)

	if shiftChanged {
		today := time.Now()
		if u.ShiftID != nil {
			if err := qtx.CloseOpenShiftInterval(ctx, id, today); err != nil {
				s.logger.Error("close shift history interval failed",
					zap.String("user_id", id),
					zap.Error(err),
				)
				return UserResponse{}, err
			}
		}
		if err := qtx.CreateShiftHistory(ctx, &ShiftHistory{
			ID:        uuid.New(),
			UserID:    u.ID,
			ShiftID:   *newShiftID,
			StartDate: today,
		}); err != nil {
			s.logger.Error("create shift history failed",
				zap.String("user_id", id),
				zap.Error(err),
			)
			return UserResponse{}, err
		}
	}

	u.Name = req.Name
	u.Email = req.Email
	u.ShiftID = newShiftID
	u.Shift = nil

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update employee persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("update employee success",
		zap.String("user_id", id),
		zap.Bool("shift_changed", shiftChanged),
	)
	return mapToResponse(*u), nil
}

// Delete removes an employee account. Punches and adjustment requests are
// intentionally left in place for historical reporting.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrEmployeeNotFound
		}
		return err
	}
	if u.Role != domain.RoleEmployee {
		return usererrors.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee persist failed", zap.String("user_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success", zap.String("user_id", id))
	return nil
}

func (s *service) ShiftHistory(ctx context.Context, id string) ([]ShiftHistoryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindShiftHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]ShiftHistoryResponse, len(rows))
	for i, h := range rows {
		entry := ShiftHistoryResponse{
			ShiftID:   h.ShiftID.String(),
			StartDate: h.StartDate.Format("2006-01-02"),
		}
		if h.EndDate != nil {
			v := h.EndDate.Format("2006-01-02")
			entry.EndDate = &v
		}
		resp[i] = entry
	}
	return resp, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CPF:       u.CPF,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.ShiftID != nil {
		v := u.ShiftID.String()
		resp.ShiftID = &v
	}
	if u.Shift != nil {
		resp.Shift = &ShiftSummary{
			ID:           u.Shift.ID.String(),
			Name:         u.Shift.Name,
			StartTime:    u.Shift.StartTime,
			BreakStart:   u.Shift.BreakStart,
			BreakEnd:     u.Shift.BreakEnd,
			EndTime:      u.Shift.EndTime,
			TotalMinutes: u.Shift.TotalMinutes,
		}
	}
	return resp
}
