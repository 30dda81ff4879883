package adjustment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	adjustmenterrors "github.com/yungsandro2003/vivaponto/internal/adjustment/errors"
	"github.com/yungsandro2003/vivaponto/internal/domain"
	"github.com/yungsandro2003/vivaponto/internal/events"
	"github.com/yungsandro2003/vivaponto/internal/messaging/kafka"
	"github.com/yungsandro2003/vivaponto/internal/punch"
	"github.com/yungsandro2003/vivaponto/internal/shared/contextutil"
	"github.com/yungsandro2003/vivaponto/internal/timecalc"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus != StatusPending {
		return false
	}
	return targetStatus == StatusApproved || targetStatus == StatusRejected
}

func validStatusFilter(status string) bool {
	switch status {
	case "", StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

//go:generate mockgen -source=adjustment_service.go -destination=mock/adjustment_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Actor, req SubmitRequest) (AdjustmentResponse, error)
	List(ctx context.Context, actor domain.Actor, q ListQuery) ([]AdjustmentResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (AdjustmentResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id string) (AdjustmentResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	punchRepo punch.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, punchRepo punch.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, punchRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	punchRepo punch.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("adjustment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("adjustment.service")
	}
	return &service{db: db, repo: repo, punchRepo: punchRepo, outbox: outboxRepo, logger: l}
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, req SubmitRequest) (AdjustmentResponse, error) {
	s.logger.Debug("submit adjustment requested",
		zap.String("user_id", actor.UserID),
		zap.String("date", req.Date),
		zap.String("type", req.Type),
	)

	uid, err := uuid.Parse(actor.UserID)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidUserID
	}
	if !domain.ValidPunchType(req.Type) {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidPunchType
	}
	if _, err := time.Parse(timecalc.DateLayout, req.Date); err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidDate
	}
	if timecalc.TimeToMinutes(req.NewTime) == timecalc.InvalidTime {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidTime
	}

	row := &AdjustmentRequest{
		ID:      uuid.New(),
		UserID:  uid,
		Date:    req.Date,
		OldTime: req.OldTime,
		NewTime: req.NewTime,
		Type:    req.Type,
		Reason:  req.Reason,
		Status:  StatusPending,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("submit adjustment persist failed", zap.Error(err))
		return AdjustmentResponse{}, err
	}

	s.logger.Info("submit adjustment success",
		zap.String("request_id", row.ID.String()),
		zap.String("user_id", actor.UserID),
	)
	return mapToResponse(*row), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, q ListQuery) ([]AdjustmentResponse, error) {
	if !validStatusFilter(q.Status) {
		return nil, adjustmenterrors.ErrInvalidStatusFilter
	}

	userID := ""
	if !actor.IsAdmin() {
		userID = actor.UserID
	}

	rows, err := s.repo.List(ctx, userID, q.Status)
	if err != nil {
		return nil, err
	}

	resp := make([]AdjustmentResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapWithUser(row)
	}
	return resp, nil
}

// Approve applies the requested time to the ledger first and flips the
// request status last, so a request is never marked approved without its
// ledger write. The compare-and-swap on status settles concurrent
// reviewers: the loser sees zero affected rows.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (AdjustmentResponse, error) {
	s.logger.Debug("approve adjustment requested",
		zap.String("request_id", id),
		zap.String("admin_id", actor.UserID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidRequestID
	}
	adminID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve adjustment begin tx failed", zap.Error(err))
		return AdjustmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	punchQtx := s.punchRepo.WithTx(tx)

	req, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdjustmentResponse{}, adjustmenterrors.ErrRequestNotFound
		}
		return AdjustmentResponse{}, err
	}
	if !isAllowedStatusTransition(req.Status, StatusApproved) {
		s.logger.Warn("approve adjustment refused, not pending",
			zap.String("request_id", id),
			zap.String("status", req.Status),
		)
		return AdjustmentResponse{}, adjustmenterrors.ErrAlreadyProcessed
	}

	existing, err := punchQtx.FindByUserDateType(ctx, req.UserID.String(), req.Date, req.Type)
	switch {
	case err == nil:
		// Overwrite only the time field.
		existing.Time = req.NewTime
		if err := punchQtx.Update(ctx, existing); err != nil {
			s.logger.Error("approve adjustment ledger update failed", zap.String("request_id", id), zap.Error(err))
			return AdjustmentResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := punchQtx.Create(ctx, &punch.Punch{
			ID:     uuid.New(),
			UserID: req.UserID,
			Date:   req.Date,
			Time:   req.NewTime,
			Type:   req.Type,
		}); err != nil {
			s.logger.Error("approve adjustment ledger insert failed", zap.String("request_id", id), zap.Error(err))
			return AdjustmentResponse{}, err
		}
	default:
		return AdjustmentResponse{}, err
	}

	now := time.Now()
	affected, err := qtx.UpdateStatusIfPending(ctx, id, StatusApproved, adminID, now)
	if err != nil {
		s.logger.Error("approve adjustment status update failed", zap.String("request_id", id), zap.Error(err))
		return AdjustmentResponse{}, err
	}
	if affected == 0 {
		return AdjustmentResponse{}, adjustmenterrors.ErrAlreadyProcessed
	}

	if err := s.stageReviewEvent(ctx, tx, events.AdjustmentApproved, *req, actor.UserID, now); err != nil {
		return AdjustmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AdjustmentResponse{}, err
	}

	req.Status = StatusApproved
	req.ReviewedBy = &adminID
	req.ReviewedAt = &now

	s.logger.Info("approve adjustment success",
		zap.String("request_id", id),
		zap.String("admin_id", actor.UserID),
	)
	return mapToResponse(*req), nil
}

// Reject never touches the punch ledger.
func (s *service) Reject(ctx context.Context, actor domain.Actor, id string) (AdjustmentResponse, error) {
	s.logger.Debug("reject adjustment requested",
		zap.String("request_id", id),
		zap.String("admin_id", actor.UserID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidRequestID
	}
	adminID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject adjustment begin tx failed", zap.Error(err))
		return AdjustmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	req, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdjustmentResponse{}, adjustmenterrors.ErrRequestNotFound
		}
		return AdjustmentResponse{}, err
	}
	if !isAllowedStatusTransition(req.Status, StatusRejected) {
		return AdjustmentResponse{}, adjustmenterrors.ErrAlreadyProcessed
	}

	now := time.Now()
	affected, err := qtx.UpdateStatusIfPending(ctx, id, StatusRejected, adminID, now)
	if err != nil {
		s.logger.Error("reject adjustment status update failed", zap.String("request_id", id), zap.Error(err))
		return AdjustmentResponse{}, err
	}
	if affected == 0 {
		return AdjustmentResponse{}, adjustmenterrors.ErrAlreadyProcessed
	}

	if err := s.stageReviewEvent(ctx, tx, events.AdjustmentRejected, *req, actor.UserID, now); err != nil {
		return AdjustmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AdjustmentResponse{}, err
	}

	req.Status = StatusRejected
	req.ReviewedBy = &adminID
	req.ReviewedAt = &now

	s.logger.Info("reject adjustment success",
		zap.String("request_id", id),
		zap.String("admin_id", actor.UserID),
	)
	return mapToResponse(*req), nil
}

func (s *service) stageReviewEvent(
	ctx context.Context,
	tx *sql.Tx,
	eventType string,
	req AdjustmentRequest,
	reviewerID string,
	occurredAt time.Time,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.AdjustmentReviewedEvent{
		EventType:  eventType,
		RequestID:  req.ID.String(),
		UserID:     req.UserID.String(),
		ReviewerID: reviewerID,
		Date:       req.Date,
		PunchType:  req.Type,
		NewTime:    req.NewTime,
		OccurredAt: occurredAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal review event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "adjustment_request",
		AggregateID:   event.RequestID,
		EventType:     eventType,
		Topic:         events.PunchAuditTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("stage review event failed",
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapToResponse(r AdjustmentRequest) AdjustmentResponse {
	resp := AdjustmentResponse{
		ID:         r.ID.String(),
		UserID:     r.UserID.String(),
		Date:       r.Date,
		OldTime:    r.OldTime,
		NewTime:    r.NewTime,
		Type:       r.Type,
		Reason:     r.Reason,
		Status:     r.Status,
		ReviewedAt: r.ReviewedAt,
		CreatedAt:  r.CreatedAt,
	}
	if r.ReviewedBy != nil {
		v := r.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	return resp
}

func mapWithUser(r RequestWithUser) AdjustmentResponse {
	resp := mapToResponse(r.AdjustmentRequest)
	resp.UserName = r.UserName
	resp.UserEmail = r.UserEmail
	return resp
}
