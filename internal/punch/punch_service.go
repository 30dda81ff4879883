package punch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yungsandro2003/vivaponto/internal/domain"
	"github.com/yungsandro2003/vivaponto/internal/events"
	"github.com/yungsandro2003/vivaponto/internal/messaging/kafka"
	puncherrors "github.com/yungsandro2003/vivaponto/internal/punch/errors"
	"github.com/yungsandro2003/vivaponto/internal/shared/contextutil"
	"github.com/yungsandro2003/vivaponto/internal/timecalc"
)

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, userID string) (PunchResponse, error)
	Today(ctx context.Context, userID string) (TodayResponse, error)
	List(ctx context.Context, actor domain.Actor, q ListQuery) ([]PunchResponse, error)
	DayRecords(ctx context.Context, userID, date string) ([]DayRecordResponse, error)
	ManualAdd(ctx context.Context, actor domain.Actor, req ManualAddRequest) (PunchResponse, error)
	ManualEdit(ctx context.Context, actor domain.Actor, id string, req ManualEditRequest) (PunchResponse, error)
	ManualDelete(ctx context.Context, actor domain.Actor, id string, req ManualDeleteRequest) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("punch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("punch.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// nextPunchType scans today's rows in the fixed entry, break_start,
// break_end, exit order and returns the first type without a row. Calling
// it twice without an intervening write yields the same answer.
func nextPunchType(rows []Punch) (string, bool) {
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		seen[row.Type] = true
	}
	for _, t := range domain.PunchTypes {
		if !seen[t] {
			return t, true
		}
	}
	return "", false
}

func (s *service) ClockIn(ctx context.Context, userID string) (PunchResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidUserID
	}

	now := time.Now()
	today := now.Format(timecalc.DateLayout)
	clock := now.Format("15:04")

	s.logger.Debug("clock-in requested",
		zap.String("user_id", userID),
		zap.String("date", today),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock-in begin tx failed", zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindAllForUserDate(ctx, userID, today)
	if err != nil {
		return PunchResponse{}, err
	}

	punchType, ok := nextPunchType(existing)
	if !ok {
		s.logger.Warn("clock-in refused, day already complete",
			zap.String("user_id", userID),
			zap.String("date", today),
		)
		return PunchResponse{}, puncherrors.ErrDayComplete
	}

	row := &Punch{
		ID:     uuid.New(),
		UserID: uid,
		Date:   today,
		Time:   clock,
		Type:   punchType,
	}

	// The unique index settles concurrent clock-ins that both saw the
	// same missing type.
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("clock-in persist failed", zap.String("user_id", userID), zap.Error(err))
		return PunchResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return PunchResponse{}, err
	}

	s.logger.Info("clock-in success",
		zap.String("user_id", userID),
		zap.String("type", punchType),
		zap.String("time", clock),
	)
	return mapToResponse(*row), nil
}

// Today folds the day's rows into the four typed fields the clock-in
// screen renders. The id and created_at come from the first row seen.
func (s *service) Today(ctx context.Context, userID string) (TodayResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return TodayResponse{}, puncherrors.ErrInvalidUserID
	}

	today := time.Now().Format(timecalc.DateLayout)
	rows, err := s.repo.FindAllForUserDate(ctx, userID, today)
	if err != nil {
		return TodayResponse{}, err
	}

	resp := TodayResponse{UserID: userID, Date: today}
	for i := range rows {
		row := rows[i]
		switch row.Type {
		case domain.PunchEntry:
			resp.Entry = &row.Time
		case domain.PunchBreakStart:
			resp.BreakStart = &row.Time
		case domain.PunchBreakEnd:
			resp.BreakEnd = &row.Time
		case domain.PunchExit:
			resp.Exit = &row.Time
		}
		if resp.ID == nil {
			id := row.ID.String()
			created := row.CreatedAt
			resp.ID = &id
			resp.CreatedAt = &created
		}
	}
	return resp, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, q ListQuery) ([]PunchResponse, error) {
	// Employees only ever see their own rows.
	if !actor.IsAdmin() {
		q.UserID = actor.UserID
	}

	rows, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := make([]PunchResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) DayRecords(ctx context.Context, userID, date string) ([]DayRecordResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, puncherrors.ErrInvalidUserID
	}
	if _, err := time.Parse(timecalc.DateLayout, date); err != nil {
		return nil, puncherrors.ErrInvalidDate
	}

	rows, err := s.repo.FindDayWithUser(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	resp := make([]DayRecordResponse, len(rows))
	for i, row := range rows {
		resp[i] = DayRecordResponse{
			PunchResponse: mapToResponse(row.Punch),
			UserName:      row.UserName,
		}
	}
	return resp, nil
}

func (s *service) ManualAdd(ctx context.Context, actor domain.Actor, req ManualAddRequest) (PunchResponse, error) {
	s.logger.Debug("manual add requested",
		zap.String("admin_id", actor.UserID),
		zap.String("user_id", req.UserID),
		zap.String("date", req.Date),
		zap.String("type", req.Type),
	)

	if !domain.ValidPunchType(req.Type) {
		return PunchResponse{}, puncherrors.ErrInvalidPunchType
	}
	if _, err := time.Parse(timecalc.DateLayout, req.Date); err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidDate
	}
	if timecalc.TimeToMinutes(req.Time) == timecalc.InvalidTime {
		return PunchResponse{}, puncherrors.ErrInvalidTime
	}

	adminID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidUserID
	}
	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("manual add begin tx failed", zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByUserDateType(ctx, req.UserID, req.Date, req.Type); err == nil {
		return PunchResponse{}, puncherrors.ErrPunchExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PunchResponse{}, err
	}

	now := time.Now()
	row := &Punch{
		ID:                 uuid.New(),
		UserID:             uid,
		Date:               req.Date,
		Time:               req.Time,
		Type:               req.Type,
		EditedByAdmin:      true,
		AdminID:            &adminID,
		AdminJustification: &req.Justification,
		EditedAt:           &now,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("manual add persist failed", zap.Error(err))
		return PunchResponse{}, mapRepositoryError(err)
	}

	if err := s.stageAuditEvent(ctx, tx, events.PunchManualAdded, *row, actor.UserID, req.Justification); err != nil {
		return PunchResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PunchResponse{}, err
	}

	s.logger.Info("manual add success",
		zap.String("punch_id", row.ID.String()),
		zap.String("admin_id", actor.UserID),
	)
	return mapToResponse(*row), nil
}

func (s *service) ManualEdit(ctx context.Context, actor domain.Actor, id string, req ManualEditRequest) (PunchResponse, error) {
	s.logger.Debug("manual edit requested",
		zap.String("admin_id", actor.UserID),
		zap.String("punch_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidPunchID
	}
	if timecalc.TimeToMinutes(req.Time) == timecalc.InvalidTime {
		return PunchResponse{}, puncherrors.ErrInvalidTime
	}
	adminID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("manual edit begin tx failed", zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PunchResponse{}, mapRepositoryError(err)
	}

	now := time.Now()
	row.Time = req.Time
	row.EditedByAdmin = true
	row.AdminID = &adminID
	row.AdminJustification = &req.Justification
	row.EditedAt = &now

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("manual edit persist failed", zap.String("punch_id", id), zap.Error(err))
		return PunchResponse{}, mapRepositoryError(err)
	}

	if err := s.stageAuditEvent(ctx, tx, events.PunchManualEdited, *row, actor.UserID, req.Justification); err != nil {
		return PunchResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PunchResponse{}, err
	}

	s.logger.Info("manual edit success",
		zap.String("punch_id", id),
		zap.String("admin_id", actor.UserID),
	)
	return mapToResponse(*row), nil
}

// ManualDelete removes the row outright. The justification is not stored
// on any surviving row, so the audit event is its only durable record.
func (s *service) ManualDelete(ctx context.Context, actor domain.Actor, id string, req ManualDeleteRequest) error {
	s.logger.Debug("manual delete requested",
		zap.String("admin_id", actor.UserID),
		zap.String("punch_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return puncherrors.ErrInvalidPunchID
	}
	if _, err := uuid.Parse(actor.UserID); err != nil {
		return puncherrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("manual delete begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("manual delete persist failed", zap.String("punch_id", id), zap.Error(err))
		return err
	}

	if err := s.stageAuditEvent(ctx, tx, events.PunchManualDeleted, *row, actor.UserID, req.Justification); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("manual delete success",
		zap.String("punch_id", id),
		zap.String("admin_id", actor.UserID),
	)
	return nil
}

func (s *service) stageAuditEvent(
	ctx context.Context,
	tx *sql.Tx,
	eventType string,
	row Punch,
	adminID, justification string,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.PunchAuditEvent{
		EventType:     eventType,
		PunchID:       row.ID.String(),
		UserID:        row.UserID.String(),
		AdminID:       adminID,
		Date:          row.Date,
		PunchType:     row.Type,
		Time:          row.Time,
		Justification: justification,
		OccurredAt:    time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal audit event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "punch",
		AggregateID:   event.PunchID,
		EventType:     eventType,
		Topic:         events.PunchAuditTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("stage audit event failed",
			zap.String("punch_id", event.PunchID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapToResponse(p Punch) PunchResponse {
	resp := PunchResponse{
		ID:            p.ID.String(),
		UserID:        p.UserID.String(),
		Date:          p.Date,
		Time:          p.Time,
		Type:          p.Type,
		EditedByAdmin: p.EditedByAdmin,
		EditedAt:      p.EditedAt,
		CreatedAt:     p.CreatedAt,
	}
	if p.AdminID != nil {
		v := p.AdminID.String()
		resp.AdminID = &v
	}
	return resp
}
