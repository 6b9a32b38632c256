package logbook

import (
	"errors"
	"strings"

	logbookerrors "go-presensi/internal/logbook/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return logbookerrors.ErrLogbookNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_logbooks_user_date" {
			return logbookerrors.ErrLogbookAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_logbooks_user_date") {
		return logbookerrors.ErrLogbookAlreadyExists
	}

	return err
}
