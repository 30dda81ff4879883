package user

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	usererrors "github.com/yungsandro2003/vivaponto/internal/user/errors"
)

// MapRepositoryError translates driver-level failures into the stable
// AppErrors this module exposes, so the unique indexes on email and cpf
// surface as CONFLICT instead of a raw SQLSTATE. The auth module reuses
// it when registering accounts.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_users_email":
				return usererrors.ErrEmailAlreadyExists
			case "uq_users_cpf":
				return usererrors.ErrCPFAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email") {
		return usererrors.ErrEmailAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_cpf") {
		return usererrors.ErrCPFAlreadyExists
	}

	return err
}
