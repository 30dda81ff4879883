package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yungsandro2003/vivaponto/internal/adjustment"
	"github.com/yungsandro2003/vivaponto/internal/domain"
	reporterrors "github.com/yungsandro2003/vivaponto/internal/report/errors"
	"github.com/yungsandro2003/vivaponto/internal/timecalc"
	"github.com/yungsandro2003/vivaponto/internal/user"
)

type fakeRepo struct {
	aggregateRangeFn    func(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error)
	countEmployeesFn    func(ctx context.Context) (int64, error)
	countPresentTodayFn func(ctx context.Context, date string) (int64, error)
}

func (f *fakeRepo) AggregateRange(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error) {
	return f.aggregateRangeFn(ctx, userID, startDate, endDate)
}
func (f *fakeRepo) CountEmployees(ctx context.Context) (int64, error) {
	return f.countEmployeesFn(ctx)
}
func (f *fakeRepo) CountPresentToday(ctx context.Context, date string) (int64, error) {
	return f.countPresentTodayFn(ctx, date)
}

type fakeUserRepo struct {
	user.Repository

	findByIDFn func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return f.findByIDFn(ctx, id)
}

type fakeAdjRepo struct {
	adjustment.Repository

	countPendingFn func(ctx context.Context) (int64, error)
	topPendingFn   func(ctx context.Context, limit int) ([]adjustment.RequestWithUser, error)
}

func (f *fakeAdjRepo) CountPending(ctx context.Context) (int64, error) { return f.countPendingFn(ctx) }
func (f *fakeAdjRepo) TopPending(ctx context.Context, limit int) ([]adjustment.RequestWithUser, error) {
	return f.topPendingFn(ctx, limit)
}

func strptr(s string) *string { return &s }

func userWithShift(total int) *user.User {
	u := &user.User{ID: uuid.New(), Name: "Maria Souza", Role: domain.RoleEmployee}
	if total > 0 {
		u.Shift = &user.ShiftRef{TotalMinutes: total}
	}
	return u
}

func newTestService(repo Repository, userRepo user.Repository, adjRepo adjustment.Repository, cfg Config) Service {
	return NewService(repo, userRepo, adjRepo, nil, cfg)
}

func TestService_Generate_CalendarComplete(t *testing.T) {
	target := uuid.New()
	actor := domain.Actor{UserID: target.String(), Role: domain.RoleEmployee}

	repo := &fakeRepo{}
	repo.aggregateRangeFn = func(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error) {
		return []DayAggregate{
			{
				Date:       "2024-06-03",
				Entry:      strptr("08:00"),
				BreakStart: strptr("12:00"),
				BreakEnd:   strptr("13:00"),
				Exit:       strptr("18:00"),
			},
		}, nil
	}
	userRepo := &fakeUserRepo{}
	userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return userWithShift(540), nil
	}

	svc := newTestService(repo, userRepo, &fakeAdjRepo{}, DefaultConfig())

	resp, err := svc.Generate(context.Background(), actor, ReportQuery{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-05",
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Days, 3)

	// Dia perfeito: worked equals the 540-minute shift.
	perfect := resp.Days[0]
	assert.Equal(t, "2024-06-03", perfect.Date)
	assert.Equal(t, 540, perfect.WorkedMinutes)
	assert.Equal(t, 540, perfect.ExpectedMinutes)
	assert.Equal(t, 0, perfect.Balance)
	assert.Equal(t, "9h 00m", perfect.WorkedFormatted)

	// Zero-punch days still appear with all four times null.
	empty := resp.Days[1]
	assert.Equal(t, "2024-06-04", empty.Date)
	assert.Nil(t, empty.Entry)
	assert.Nil(t, empty.Exit)
	assert.Equal(t, 0, empty.WorkedMinutes)
	assert.Equal(t, 540, empty.ExpectedMinutes)
	assert.Equal(t, -540, empty.Balance)

	assert.Equal(t, 540, resp.TotalWorked)
	assert.Equal(t, 1620, resp.TotalExpected)
	assert.Equal(t, -1080, resp.TotalBalance)
	assert.Equal(t, "-18h 00m", resp.TotalBalanceFormatted)
}

func TestService_Generate_DefaultExpectedWithoutShift(t *testing.T) {
	target := uuid.New()
	actor := domain.Actor{UserID: target.String(), Role: domain.RoleEmployee}

	repo := &fakeRepo{}
	repo.aggregateRangeFn = func(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error) {
		return nil, nil
	}
	userRepo := &fakeUserRepo{}
	userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return userWithShift(0), nil
	}

	svc := newTestService(repo, userRepo, &fakeAdjRepo{}, DefaultConfig())

	resp, err := svc.Generate(context.Background(), actor, ReportQuery{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-03",
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Days, 1)
	assert.Equal(t, timecalc.DefaultDailyMinutes, resp.Days[0].ExpectedMinutes)
	assert.Equal(t, -timecalc.DefaultDailyMinutes, resp.Days[0].Balance)
}

func TestService_Generate_EmptyDaysExcludedByPolicy(t *testing.T) {
	target := uuid.New()
	actor := domain.Actor{UserID: target.String(), Role: domain.RoleEmployee}

	repo := &fakeRepo{}
	repo.aggregateRangeFn = func(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error) {
		return []DayAggregate{
			{Date: "2024-06-03", Entry: strptr("08:00"), Exit: strptr("16:00")},
		}, nil
	}
	userRepo := &fakeUserRepo{}
	userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return userWithShift(480), nil
	}

	svc := newTestService(repo, userRepo, &fakeAdjRepo{}, Config{CountEmptyDays: false})

	resp, err := svc.Generate(context.Background(), actor, ReportQuery{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-04",
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Days, 2)

	// A punched day is still charged its expected minutes.
	assert.Equal(t, 480, resp.Days[0].ExpectedMinutes)
	// The empty day charges nothing.
	assert.Equal(t, 0, resp.Days[1].ExpectedMinutes)
	assert.Equal(t, 0, resp.Days[1].Balance)
	assert.Equal(t, 480, resp.TotalExpected)
}

func TestService_Generate_EmployeePinnedToSelf(t *testing.T) {
	self := uuid.New().String()
	other := uuid.New().String()

	var queriedUserID string
	repo := &fakeRepo{}
	repo.aggregateRangeFn = func(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error) {
		queriedUserID = userID
		return nil, nil
	}
	userRepo := &fakeUserRepo{}
	userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return userWithShift(480), nil
	}

	svc := newTestService(repo, userRepo, &fakeAdjRepo{}, DefaultConfig())

	_, err := svc.Generate(context.Background(),
		domain.Actor{UserID: self, Role: domain.RoleEmployee},
		ReportQuery{UserID: other, StartDate: "2024-06-03", EndDate: "2024-06-03"},
	)
	assert.NoError(t, err)
	assert.Equal(t, self, queriedUserID)

	_, err = svc.Generate(context.Background(),
		domain.Actor{UserID: self, Role: domain.RoleAdmin},
		ReportQuery{UserID: other, StartDate: "2024-06-03", EndDate: "2024-06-03"},
	)
	assert.NoError(t, err)
	assert.Equal(t, other, queriedUserID)
}

func TestService_Generate_RangeValidation(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleEmployee}
	svc := newTestService(&fakeRepo{}, &fakeUserRepo{}, &fakeAdjRepo{}, DefaultConfig())

	_, err := svc.Generate(context.Background(), actor, ReportQuery{})
	assert.ErrorIs(t, err, reporterrors.ErrMissingRange)

	_, err = svc.Generate(context.Background(), actor, ReportQuery{StartDate: "03/06/2024", EndDate: "2024-06-05"})
	assert.ErrorIs(t, err, reporterrors.ErrInvalidDateRange)

	_, err = svc.Generate(context.Background(), actor, ReportQuery{Period: "quarter"})
	assert.ErrorIs(t, err, reporterrors.ErrInvalidPeriod)
}

func TestService_Generate_PeriodRange(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleEmployee}

	var gotStart, gotEnd string
	repo := &fakeRepo{}
	repo.aggregateRangeFn = func(ctx context.Context, userID, startDate, endDate string) ([]DayAggregate, error) {
		gotStart, gotEnd = startDate, endDate
		return nil, nil
	}
	userRepo := &fakeUserRepo{}
	userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return userWithShift(480), nil
	}

	svc := newTestService(repo, userRepo, &fakeAdjRepo{}, DefaultConfig())

	resp, err := svc.Generate(context.Background(), actor, ReportQuery{Period: timecalc.PeriodToday})
	assert.NoError(t, err)
	today := time.Now().Format(timecalc.DateLayout)
	assert.Equal(t, today, gotStart)
	assert.Equal(t, today, gotEnd)
	assert.Len(t, resp.Days, 1)
}

func TestService_Dashboard(t *testing.T) {
	repo := &fakeRepo{}
	repo.countEmployeesFn = func(ctx context.Context) (int64, error) { return 12, nil }
	repo.countPresentTodayFn = func(ctx context.Context, date string) (int64, error) { return 7, nil }

	adjRepo := &fakeAdjRepo{}
	adjRepo.countPendingFn = func(ctx context.Context) (int64, error) { return 3, nil }
	adjRepo.topPendingFn = func(ctx context.Context, limit int) ([]adjustment.RequestWithUser, error) {
		assert.Equal(t, topPendingLimit, limit)
		return []adjustment.RequestWithUser{
			{
				AdjustmentRequest: adjustment.AdjustmentRequest{
					ID:      uuid.New(),
					UserID:  uuid.New(),
					Date:    "2024-06-01",
					NewTime: "18:30",
					Type:    domain.PunchExit,
					Reason:  "forgot to clock out",
					Status:  adjustment.StatusPending,
				},
				UserName: "Maria Souza",
			},
		}, nil
	}

	svc := newTestService(repo, &fakeUserRepo{}, adjRepo, DefaultConfig())

	resp, err := svc.Dashboard(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(12), resp.TotalEmployees)
	assert.Equal(t, int64(3), resp.PendingRequests)
	assert.Equal(t, int64(7), resp.PresentToday)
	assert.Len(t, resp.TopPending, 1)
	assert.Equal(t, "Maria Souza", resp.TopPending[0].UserName)
}
