package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungsandro2003/vivaponto/internal/adjustment"
	"github.com/yungsandro2003/vivaponto/internal/domain"
	reporterrors "github.com/yungsandro2003/vivaponto/internal/report/errors"
	"github.com/yungsandro2003/vivaponto/internal/timecalc"
	"github.com/yungsandro2003/vivaponto/internal/user"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = time.Minute
	topPendingLimit   = 5
)

// Config holds reporting policy. CountEmptyDays controls whether a day
// with zero punches still charges the user's expected minutes; payroll
// wants it on, schedules with free weekends want it off.
type Config struct {
	CountEmptyDays bool
}

func DefaultConfig() Config {
	return Config{CountEmptyDays: true}
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, actor domain.Actor, q ReportQuery) (ReportResponse, error)
	Export(ctx context.Context, actor domain.Actor, q ReportQuery) (*excelize.File, string, error)
	Dashboard(ctx context.Context) (DashboardResponse, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
	adjRepo  adjustment.Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	cfg      Config
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	userRepo user.Repository,
	adjRepo adjustment.Repository,
	rdb *redis.Client,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		repo:     repo,
		userRepo: userRepo,
		adjRepo:  adjRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		cfg:      cfg,
		logger:   l,
	}
}

func (s *service) Generate(ctx context.Context, actor domain.Actor, q ReportQuery) (ReportResponse, error) {
	targetID := q.UserID
	if !actor.IsAdmin() || targetID == "" {
		targetID = actor.UserID
	}
	if _, err := uuid.Parse(targetID); err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidUserID
	}

	start, end, err := resolveRange(q, time.Now())
	if err != nil {
		return ReportResponse{}, err
	}

	s.logger.Debug("generate report requested",
		zap.String("user_id", targetID),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	u, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrUserNotFound
		}
		return ReportResponse{}, err
	}

	shiftTotal := 0
	if u.Shift != nil {
		shiftTotal = u.Shift.TotalMinutes
	}

	startStr := start.Format(timecalc.DateLayout)
	endStr := end.Format(timecalc.DateLayout)

	aggs, err := s.repo.AggregateRange(ctx, targetID, startStr, endStr)
	if err != nil {
		return ReportResponse{}, err
	}
	byDate := make(map[string]DayAggregate, len(aggs))
	for _, agg := range aggs {
		byDate[agg.Date] = agg
	}

	resp := ReportResponse{
		UserID:    targetID,
		UserName:  u.Name,
		StartDate: startStr,
		EndDate:   endStr,
	}

	for _, date := range timecalc.ExpandRange(start, end) {
		agg := byDate[date]
		row := buildDayRow(date, agg, shiftTotal, s.cfg.CountEmptyDays)
		resp.Days = append(resp.Days, row)
		resp.TotalWorked += row.WorkedMinutes
		resp.TotalExpected += row.ExpectedMinutes
		resp.TotalBalance += row.Balance
	}
	resp.TotalWorkedFormatted = timecalc.FormatMinutes(resp.TotalWorked)
	resp.TotalBalanceFormatted = timecalc.FormatMinutes(resp.TotalBalance)

	return resp, nil
}

// buildDayRow degrades gracefully on partial days: missing times fold to
// zero worked minutes, never an error.
func buildDayRow(date string, agg DayAggregate, shiftTotal int, countEmptyDays bool) DayRow {
	worked := timecalc.WorkedMinutes(
		deref(agg.Entry),
		deref(agg.BreakStart),
		deref(agg.BreakEnd),
		deref(agg.Exit),
	)

	hasPunch := agg.Entry != nil || agg.BreakStart != nil || agg.BreakEnd != nil || agg.Exit != nil
	expected := timecalc.ExpectedMinutes(shiftTotal)
	if !hasPunch && !countEmptyDays {
		expected = 0
	}

	balance := timecalc.Balance(worked, expected)

	return DayRow{
		Date:             date,
		Entry:            agg.Entry,
		BreakStart:       agg.BreakStart,
		BreakEnd:         agg.BreakEnd,
		Exit:             agg.Exit,
		WorkedMinutes:    worked,
		ExpectedMinutes:  expected,
		Balance:          balance,
		WorkedFormatted:  timecalc.FormatMinutes(worked),
		BalanceFormatted: timecalc.FormatMinutes(balance),
	}
}

func resolveRange(q ReportQuery, now time.Time) (time.Time, time.Time, error) {
	if q.Period != "" {
		switch q.Period {
		case timecalc.PeriodToday, timecalc.PeriodWeek, timecalc.PeriodMonth, timecalc.PeriodYear:
		default:
			return time.Time{}, time.Time{}, reporterrors.ErrInvalidPeriod
		}
		start, end := timecalc.PeriodRange(q.Period, now)
		return start, end, nil
	}

	if q.StartDate == "" || q.EndDate == "" {
		return time.Time{}, time.Time{}, reporterrors.ErrMissingRange
	}
	start, err := time.Parse(timecalc.DateLayout, q.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, reporterrors.ErrInvalidDateRange
	}
	end, err := time.Parse(timecalc.DateLayout, q.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, reporterrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			var resp DashboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(dashboardCacheKey, func() (interface{}, error) {
		today := time.Now().Format(timecalc.DateLayout)

		employees, err := s.repo.CountEmployees(ctx)
		if err != nil {
			return nil, err
		}
		pending, err := s.adjRepo.CountPending(ctx)
		if err != nil {
			return nil, err
		}
		present, err := s.repo.CountPresentToday(ctx, today)
		if err != nil {
			return nil, err
		}
		top, err := s.adjRepo.TopPending(ctx, topPendingLimit)
		if err != nil {
			return nil, err
		}

		resp := DashboardResponse{
			TotalEmployees:  employees,
			PendingRequests: pending,
			PresentToday:    present,
			TopPending:      make([]PendingRequestSummary, len(top)),
		}
		for i, row := range top {
			resp.TopPending[i] = PendingRequestSummary{
				ID:        row.ID.String(),
				UserName:  row.UserName,
				Date:      row.Date,
				Type:      row.Type,
				NewTime:   row.NewTime,
				Reason:    row.Reason,
				CreatedAt: row.CreatedAt,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return DashboardResponse{}, err
	}

	return v.(DashboardResponse), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
