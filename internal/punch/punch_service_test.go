package punch

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yungsandro2003/vivaponto/internal/domain"
	puncherrors "github.com/yungsandro2003/vivaponto/internal/punch/errors"
)

type fakeRepo struct {
	withTxFn             func(tx *sql.Tx) Repository
	createFn             func(ctx context.Context, p *Punch) error
	findByIDFn           func(ctx context.Context, id string) (*Punch, error)
	findByUserDateTypeFn func(ctx context.Context, userID, date, punchType string) (*Punch, error)
	findAllForUserDateFn func(ctx context.Context, userID, date string) ([]Punch, error)
	listFn               func(ctx context.Context, q ListQuery) ([]Punch, error)
	updateFn             func(ctx context.Context, p *Punch) error
	deleteFn             func(ctx context.Context, id string) error
	findDayWithUserFn    func(ctx context.Context, userID, date string) ([]DayRecord, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, p *Punch) error { return f.createFn(ctx, p) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Punch, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByUserDateType(ctx context.Context, userID, date, punchType string) (*Punch, error) {
	return f.findByUserDateTypeFn(ctx, userID, date, punchType)
}
func (f *fakeRepo) FindAllForUserDate(ctx context.Context, userID, date string) ([]Punch, error) {
	return f.findAllForUserDateFn(ctx, userID, date)
}
func (f *fakeRepo) List(ctx context.Context, q ListQuery) ([]Punch, error) { return f.listFn(ctx, q) }
func (f *fakeRepo) Update(ctx context.Context, p *Punch) error             { return f.updateFn(ctx, p) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error            { return f.deleteFn(ctx, id) }
func (f *fakeRepo) FindDayWithUser(ctx context.Context, userID, date string) ([]DayRecord, error) {
	return f.findDayWithUserFn(ctx, userID, date)
}

func punchesOfTypes(userID uuid.UUID, types ...string) []Punch {
	rows := make([]Punch, len(types))
	for i, t := range types {
		rows[i] = Punch{ID: uuid.New(), UserID: userID, Type: t, Time: "08:00"}
	}
	return rows
}

func TestNextPunchType(t *testing.T) {
	uid := uuid.New()

	tests := []struct {
		name     string
		existing []string
		want     string
		ok       bool
	}{
		{"empty day starts with entry", nil, domain.PunchEntry, true},
		{"after entry comes break_start", []string{domain.PunchEntry}, domain.PunchBreakStart, true},
		{"after break comes break_end", []string{domain.PunchEntry, domain.PunchBreakStart}, domain.PunchBreakEnd, true},
		{"exit is last", []string{domain.PunchEntry, domain.PunchBreakStart, domain.PunchBreakEnd}, domain.PunchExit, true},
		{"complete day has no next type", []string{domain.PunchEntry, domain.PunchBreakStart, domain.PunchBreakEnd, domain.PunchExit}, "", false},
		{"gap wins over later rows", []string{domain.PunchEntry, domain.PunchBreakEnd}, domain.PunchBreakStart, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nextPunchType(punchesOfTypes(uid, tt.existing...))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPunchType_Idempotent(t *testing.T) {
	rows := punchesOfTypes(uuid.New(), domain.PunchEntry)
	first, _ := nextPunchType(rows)
	second, _ := nextPunchType(rows)
	assert.Equal(t, first, second)
}

func TestService_ClockIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	ctx := context.Background()

	var saved []Punch
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, p *Punch) error { saved = append(saved, *p); return nil }
	repo.findAllForUserDateFn = func(ctx context.Context, uid, date string) ([]Punch, error) {
		return saved, nil
	}

	svc := NewService(db, repo)

	// Four punches in order, fifth refused.
	wantOrder := []string{domain.PunchEntry, domain.PunchBreakStart, domain.PunchBreakEnd, domain.PunchExit}
	for _, want := range wantOrder {
		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.ClockIn(ctx, userID.String())
		assert.NoError(t, err)
		assert.Equal(t, want, resp.Type)
		assert.Regexp(t, `^\d{2}:\d{2}$`, resp.Time)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(ctx, userID.String())
	assert.ErrorIs(t, err, puncherrors.ErrDayComplete)
	assert.Len(t, saved, 4)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_InvalidUserID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})
	_, err := svc.ClockIn(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, puncherrors.ErrInvalidUserID)
}

func TestService_Today_FoldsRows(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	first := Punch{ID: uuid.New(), UserID: userID, Type: domain.PunchEntry, Time: "08:00", CreatedAt: time.Now()}
	second := Punch{ID: uuid.New(), UserID: userID, Type: domain.PunchBreakStart, Time: "12:00", CreatedAt: time.Now()}

	repo := &fakeRepo{}
	repo.findAllForUserDateFn = func(ctx context.Context, uid, date string) ([]Punch, error) {
		return []Punch{first, second}, nil
	}

	svc := NewService(db, repo)
	resp, err := svc.Today(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.Equal(t, "08:00", *resp.Entry)
	assert.Equal(t, "12:00", *resp.BreakStart)
	assert.Nil(t, resp.BreakEnd)
	assert.Nil(t, resp.Exit)
	assert.Equal(t, first.ID.String(), *resp.ID)
}

func TestService_Today_EmptyDay(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllForUserDateFn = func(ctx context.Context, uid, date string) ([]Punch, error) {
		return nil, nil
	}

	svc := NewService(db, repo)
	resp, err := svc.Today(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Nil(t, resp.ID)
	assert.Nil(t, resp.Entry)
	assert.Nil(t, resp.Exit)
}

func TestService_List_EmployeePinnedToSelf(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	self := uuid.New().String()
	var gotQuery ListQuery
	repo := &fakeRepo{}
	repo.listFn = func(ctx context.Context, q ListQuery) ([]Punch, error) {
		gotQuery = q
		return nil, nil
	}

	svc := NewService(db, repo)

	_, err := svc.List(context.Background(), domain.Actor{UserID: self, Role: domain.RoleEmployee}, ListQuery{UserID: uuid.New().String()})
	assert.NoError(t, err)
	assert.Equal(t, self, gotQuery.UserID)

	other := uuid.New().String()
	_, err = svc.List(context.Background(), domain.Actor{UserID: self, Role: domain.RoleAdmin}, ListQuery{UserID: other})
	assert.NoError(t, err)
	assert.Equal(t, other, gotQuery.UserID)
}

func TestService_ManualAdd(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	admin := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleAdmin}
	target := uuid.New().String()

	var saved Punch
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, p *Punch) error { saved = *p; return nil }
	repo.findByUserDateTypeFn = func(ctx context.Context, uid, date, punchType string) (*Punch, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ManualAdd(context.Background(), admin, ManualAddRequest{
		UserID:        target,
		Date:          "2024-06-01",
		Time:          "08:30",
		Type:          domain.PunchEntry,
		Justification: "forgot badge",
	})
	assert.NoError(t, err)
	assert.True(t, resp.EditedByAdmin)
	assert.Equal(t, admin.UserID, *resp.AdminID)
	assert.True(t, saved.EditedByAdmin)
	assert.NotNil(t, saved.EditedAt)
	assert.Equal(t, "forgot badge", *saved.AdminJustification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ManualAdd_Conflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	admin := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleAdmin}

	repo := &fakeRepo{}
	repo.findByUserDateTypeFn = func(ctx context.Context, uid, date, punchType string) (*Punch, error) {
		return &Punch{ID: uuid.New()}, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ManualAdd(context.Background(), admin, ManualAddRequest{
		UserID:        uuid.New().String(),
		Date:          "2024-06-01",
		Time:          "08:30",
		Type:          domain.PunchEntry,
		Justification: "forgot badge",
	})
	assert.ErrorIs(t, err, puncherrors.ErrPunchExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ManualAdd_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	admin := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleAdmin}
	svc := NewService(db, &fakeRepo{})

	_, err := svc.ManualAdd(context.Background(), admin, ManualAddRequest{
		UserID: uuid.New().String(), Date: "2024-06-01", Time: "08:30", Type: "lunch", Justification: "x",
	})
	assert.ErrorIs(t, err, puncherrors.ErrInvalidPunchType)

	_, err = svc.ManualAdd(context.Background(), admin, ManualAddRequest{
		UserID: uuid.New().String(), Date: "June 1st", Time: "08:30", Type: domain.PunchEntry, Justification: "x",
	})
	assert.ErrorIs(t, err, puncherrors.ErrInvalidDate)

	_, err = svc.ManualAdd(context.Background(), admin, ManualAddRequest{
		UserID: uuid.New().String(), Date: "2024-06-01", Time: "8h30", Type: domain.PunchEntry, Justification: "x",
	})
	assert.ErrorIs(t, err, puncherrors.ErrInvalidTime)

	assert.NotPanics(t, func() {
		_, err = svc.ManualAdd(context.Background(), admin, ManualAddRequest{
			UserID: "not-a-uuid", Date: "2024-06-01", Time: "08:30", Type: domain.PunchEntry, Justification: "x",
		})
	})
	assert.ErrorIs(t, err, puncherrors.ErrInvalidUserID)
}

func TestService_ManualEdit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	admin := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleAdmin}
	existing := Punch{ID: uuid.New(), UserID: uuid.New(), Date: "2024-06-01", Time: "08:00", Type: domain.PunchEntry}

	var saved Punch
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Punch, error) {
		row := existing
		return &row, nil
	}
	repo.updateFn = func(ctx context.Context, p *Punch) error { saved = *p; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ManualEdit(context.Background(), admin, existing.ID.String(), ManualEditRequest{
		Time:          "08:15",
		Justification: "clock drift",
	})
	assert.NoError(t, err)
	assert.Equal(t, "08:15", resp.Time)
	assert.Equal(t, domain.PunchEntry, saved.Type)
	assert.Equal(t, "08:15", saved.Time)
	assert.True(t, saved.EditedByAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ManualEdit_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	admin := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleAdmin}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Punch, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ManualEdit(context.Background(), admin, uuid.New().String(), ManualEditRequest{
		Time:          "08:15",
		Justification: "clock drift",
	})
	assert.ErrorIs(t, err, puncherrors.ErrPunchNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ManualDelete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	admin := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleAdmin}
	existing := Punch{ID: uuid.New(), UserID: uuid.New(), Date: "2024-06-01", Time: "08:00", Type: domain.PunchEntry}

	var deletedID string
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Punch, error) {
		row := existing
		return &row, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error { deletedID = id; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.ManualDelete(context.Background(), admin, existing.ID.String(), ManualDeleteRequest{
		Justification: "duplicate entry",
	})
	assert.NoError(t, err)
	assert.Equal(t, existing.ID.String(), deletedID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
