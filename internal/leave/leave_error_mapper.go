package leave

import (
	"errors"
	"strings"

	leaveerrors "go-presensi/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

// isDuplicateQuotaUsage mendeteksi pelanggaran unik pada proyeksi kuota.
// Dipakai projector untuk swallow event yang dikonsumsi dua kali.
func isDuplicateQuotaUsage(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_quota_usages_leave"
	}
	return strings.Contains(err.Error(), "duplicate key value") &&
		strings.Contains(err.Error(), "uq_leave_quota_usages_leave")
}
