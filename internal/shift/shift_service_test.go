package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	shifterrors "github.com/yungsandro2003/vivaponto/internal/shift/errors"
)

type fakeRepo struct {
	withTxFn             func(tx *sql.Tx) Repository
	createFn             func(ctx context.Context, s *Shift) error
	findAllFn            func(ctx context.Context) ([]Shift, error)
	findByIDFn           func(ctx context.Context, id string) (*Shift, error)
	updateFn             func(ctx context.Context, s *Shift) error
	deleteFn             func(ctx context.Context, id string) error
	countAssignedUsersFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, s *Shift) error      { return f.createFn(ctx, s) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Shift, error)    { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Shift, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, s *Shift) error  { return f.updateFn(ctx, s) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) CountAssignedUsers(ctx context.Context, id string) (int64, error) {
	return f.countAssignedUsersFn(ctx, id)
}

func standardShift() Shift {
	return Shift{
		ID:           uuid.New(),
		Name:         "Commercial",
		StartTime:    "08:00",
		BreakStart:   "12:00",
		BreakEnd:     "13:00",
		EndTime:      "17:00",
		TotalMinutes: 480,
	}
}

func TestValidateBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		bs      string
		be      string
		end     string
		total   int
		wantErr error
	}{
		{"valid 8h day", "08:00", "12:00", "13:00", "17:00", 480, nil},
		{"valid 9h day", "08:00", "12:00", "13:00", "18:00", 540, nil},
		{"malformed boundary", "8am", "12:00", "13:00", "17:00", 480, shifterrors.ErrInvalidBoundaryTimes},
		{"total mismatch", "08:00", "12:00", "13:00", "17:00", 500, shifterrors.ErrTotalMinutesMismatch},
		{"inverted span", "17:00", "12:00", "13:00", "08:00", 480, shifterrors.ErrNonPositiveTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBoundaries(tt.start, tt.bs, tt.be, tt.end, tt.total)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	var saved Shift
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, s *Shift) error { saved = *s; return nil }

	svc := NewService(db, repo, rdb)

	redisMock.ExpectDel(catalogCacheKey).SetVal(1)
	resp, err := svc.Create(context.Background(), CreateShiftRequest{
		Name:         "Commercial",
		StartTime:    "08:00",
		BreakStart:   "12:00",
		BreakEnd:     "13:00",
		EndTime:      "17:00",
		TotalMinutes: 480,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Commercial", resp.Name)
	assert.Equal(t, 480, saved.TotalMinutes)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_Create_BoundaryMismatch(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateShiftRequest{
		Name:         "Broken",
		StartTime:    "08:00",
		BreakStart:   "12:00",
		BreakEnd:     "13:00",
		EndTime:      "17:00",
		TotalMinutes: 300,
	})
	assert.ErrorIs(t, err, shifterrors.ErrTotalMinutesMismatch)
}

func TestService_GetAll_CacheMiss(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	row := standardShift()
	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Shift, error) { return []Shift{row}, nil }

	svc := NewService(db, repo, rdb)

	expected := []ShiftResponse{mapToResponse(row)}
	payload, _ := json.Marshal(expected)

	redisMock.ExpectGet(catalogCacheKey).RedisNil()
	redisMock.ExpectSet(catalogCacheKey, payload, 30*time.Minute).SetVal("OK")

	resp, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_GetAll_CacheHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	expected := []ShiftResponse{mapToResponse(standardShift())}
	payload, _ := json.Marshal(expected)

	// The repo fn is nil: any database read would panic.
	svc := NewService(db, &fakeRepo{}, rdb)

	redisMock.ExpectGet(catalogCacheKey).SetVal(string(payload))

	resp, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Shift, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, shifterrors.ErrShiftNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, shifterrors.ErrInvalidShiftID)
}

func TestService_Delete_RefusedWhileAssigned(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	row := standardShift()
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Shift, error) { return &row, nil }
	repo.countAssignedUsersFn = func(ctx context.Context, id string) (int64, error) { return 3, nil }

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), row.ID.String())
	assert.ErrorIs(t, err, shifterrors.ErrShiftInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	row := standardShift()
	var deletedID string
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Shift, error) { return &row, nil }
	repo.countAssignedUsersFn = func(ctx context.Context, id string) (int64, error) { return 0, nil }
	repo.deleteFn = func(ctx context.Context, id string) error { deletedID = id; return nil }

	svc := NewService(db, repo, rdb)

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(catalogCacheKey).SetVal(1)
	err := svc.Delete(context.Background(), row.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, row.ID.String(), deletedID)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
