package punch

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	puncherrors "github.com/yungsandro2003/vivaponto/internal/punch/errors"
)

// mapRepositoryError translates driver-level failures into the stable
// AppErrors this module exposes. The one-per-(user, date, type) unique
// index surfaces as CONFLICT, which also covers the race where two
// clock-ins slip past the pre-insert check simultaneously.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return puncherrors.ErrPunchNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_time_records_user_date_type" {
			return puncherrors.ErrPunchExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_time_records_user_date_type") {
		return puncherrors.ErrPunchExists
	}

	return err
}
