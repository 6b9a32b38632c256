package logbook_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-presensi/internal/logbook"
	logbookerrors "go-presensi/internal/logbook/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLogbookRepository struct {
	withTxFn            func(tx *sql.Tx) logbook.Repository
	createFn            func(ctx context.Context, lb *logbook.Logbook) error
	findByIDFn          func(ctx context.Context, id string) (*logbook.Logbook, error)
	findByUserAndDateFn func(ctx context.Context, userID string, date time.Time) (*logbook.Logbook, error)
	findAllByUserFn     func(ctx context.Context, userID string) ([]logbook.Logbook, error)
	findAllByStatusFn   func(ctx context.Context, status string) ([]logbook.Logbook, error)
	updateFn            func(ctx context.Context, lb *logbook.Logbook) error
	existsForDateFn     func(ctx context.Context, userID string, date time.Time) (bool, error)
}

func (f *fakeLogbookRepository) WithTx(tx *sql.Tx) logbook.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLogbookRepository) Create(ctx context.Context, lb *logbook.Logbook) error {
	if f.createFn != nil {
		return f.createFn(ctx, lb)
	}
	return nil
}

func (f *fakeLogbookRepository) FindByID(ctx context.Context, id string) (*logbook.Logbook, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLogbookRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*logbook.Logbook, error) {
	if f.findByUserAndDateFn != nil {
		return f.findByUserAndDateFn(ctx, userID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLogbookRepository) FindAllByUser(ctx context.Context, userID string) ([]logbook.Logbook, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLogbookRepository) FindAllByStatus(ctx context.Context, status string) ([]logbook.Logbook, error) {
	if f.findAllByStatusFn != nil {
		return f.findAllByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLogbookRepository) Update(ctx context.Context, lb *logbook.Logbook) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lb)
	}
	return nil
}

func (f *fakeLogbookRepository) ExistsForDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	if f.existsForDateFn != nil {
		return f.existsForDateFn(ctx, userID, date)
	}
	return false, nil
}

type fakeAttendanceChecker struct {
	hasCheckedInFn func(ctx context.Context, userID string, date time.Time) (bool, error)
}

func (f *fakeAttendanceChecker) HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error) {
	if f.hasCheckedInFn != nil {
		return f.hasCheckedInFn(ctx, userID, date)
	}
	return true, nil
}

type logbookServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    logbook.Service
	repo       *fakeLogbookRepository
	attendance *fakeAttendanceChecker
}

func setupLogbookServiceTest(t *testing.T) *logbookServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLogbookRepository{}
	attendance := &fakeAttendanceChecker{}
	svc := logbook.NewService(db, repo, attendance)

	return &logbookServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		attendance: attendance,
	}
}

func TestLogbookService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("sukses setelah check-in", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, userID, logbook.CreateLogbookRequest{
			Activity:    "Sprint planning",
			Description: "Menyusun backlog sprint 12",
		})

		assert.NoError(t, err)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, logbook.StatusPending, resp.Status)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), resp.LogDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("ditolak sebelum check-in", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.attendance.hasCheckedInFn = func(ctx context.Context, userID string, date time.Time) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, userID, logbook.CreateLogbookRequest{
			Activity:    "Sprint planning",
			Description: "Menyusun backlog sprint 12",
		})

		assert.ErrorIs(t, err, logbookerrors.ErrCheckInRequired)
	})

	t.Run("duplikat tanggal jadi conflict", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.createFn = func(ctx context.Context, lb *logbook.Logbook) error {
			return errors.New(`ERROR: duplicate key value violates unique constraint "uq_logbooks_user_date" (SQLSTATE 23505)`)
		}

		_, err := deps.service.Create(ctx, userID, logbook.CreateLogbookRequest{
			Activity:    "Sprint planning",
			Description: "Menyusun backlog sprint 12",
		})

		assert.ErrorIs(t, err, logbookerrors.ErrLogbookAlreadyExists)
	})

	t.Run("user id tidak valid", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "bukan-uuid", logbook.CreateLogbookRequest{
			Activity:    "Sprint planning",
			Description: "Menyusun backlog sprint 12",
		})

		assert.ErrorIs(t, err, logbookerrors.ErrInvalidUserID)
	})
}

func TestLogbookService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	logbookID := uuid.New()

	pendingLogbook := func() *logbook.Logbook {
		return &logbook.Logbook{
			ID:          logbookID,
			UserID:      userID,
			LogDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Activity:    "Standup",
			Description: "Daily standup",
			Status:      logbook.StatusPending,
		}
	}

	t.Run("pemilik boleh mengubah entri pending", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*logbook.Logbook, error) {
			return pendingLogbook(), nil
		}

		resp, err := deps.service.Update(ctx, userID.String(), logbookID.String(), logbook.UpdateLogbookRequest{
			Activity:    "Standup & review",
			Description: "Daily standup lalu code review",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Standup & review", resp.Activity)
	})

	t.Run("user lain ditolak", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*logbook.Logbook, error) {
			return pendingLogbook(), nil
		}

		_, err := deps.service.Update(ctx, uuid.New().String(), logbookID.String(), logbook.UpdateLogbookRequest{
			Activity:    "X",
			Description: "Y",
		})

		assert.ErrorIs(t, err, logbookerrors.ErrLogbookNotOwned)
	})

	t.Run("entri sudah direview tidak bisa diubah", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*logbook.Logbook, error) {
			lb := pendingLogbook()
			lb.Status = logbook.StatusApproved
			return lb, nil
		}

		_, err := deps.service.Update(ctx, userID.String(), logbookID.String(), logbook.UpdateLogbookRequest{
			Activity:    "X",
			Description: "Y",
		})

		assert.ErrorIs(t, err, logbookerrors.ErrLogbookNotPending)
	})
}

func TestLogbookService_Review(t *testing.T) {
	ctx := context.Background()
	reviewerID := uuid.New().String()
	logbookID := uuid.New()

	pendingLogbook := func() *logbook.Logbook {
		return &logbook.Logbook{
			ID:          logbookID,
			UserID:      uuid.New(),
			LogDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Activity:    "Standup",
			Description: "Daily standup",
			Status:      logbook.StatusPending,
		}
	}

	t.Run("approve mengisi reviewer dan waktu", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var saved *logbook.Logbook
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*logbook.Logbook, error) {
			return pendingLogbook(), nil
		}
		deps.repo.updateFn = func(ctx context.Context, lb *logbook.Logbook) error {
			saved = lb
			return nil
		}

		resp, err := deps.service.Approve(ctx, reviewerID, logbookID.String(), nil)

		assert.NoError(t, err)
		assert.Equal(t, logbook.StatusApproved, resp.Status)
		assert.NotNil(t, saved.ReviewedBy)
		assert.Equal(t, reviewerID, saved.ReviewedBy.String())
		assert.NotNil(t, saved.ReviewedAt)
	})

	t.Run("reject wajib pakai catatan", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, reviewerID, logbookID.String(), "")

		assert.ErrorIs(t, err, logbookerrors.ErrReviewNotesRequired)
	})

	t.Run("reject menyimpan catatan", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*logbook.Logbook, error) {
			return pendingLogbook(), nil
		}

		resp, err := deps.service.Reject(ctx, reviewerID, logbookID.String(), "Deskripsi terlalu singkat")

		assert.NoError(t, err)
		assert.Equal(t, logbook.StatusRejected, resp.Status)
		assert.NotNil(t, resp.ReviewNotes)
		assert.Equal(t, "Deskripsi terlalu singkat", *resp.ReviewNotes)
	})

	t.Run("review ulang ditolak", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*logbook.Logbook, error) {
			lb := pendingLogbook()
			lb.Status = logbook.StatusRejected
			return lb, nil
		}

		_, err := deps.service.Approve(ctx, reviewerID, logbookID.String(), nil)

		assert.ErrorIs(t, err, logbookerrors.ErrLogbookNotPending)
	})
}

func TestLogbookService_GetAllForReview(t *testing.T) {
	ctx := context.Background()

	t.Run("filter status tidak dikenal ditolak", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetAllForReview(ctx, "draft")

		assert.ErrorIs(t, err, logbookerrors.ErrInvalidStatusFilter)
	})

	t.Run("filter pending diteruskan ke repo", func(t *testing.T) {
		deps := setupLogbookServiceTest(t)
		defer deps.db.Close()

		var gotStatus string
		deps.repo.findAllByStatusFn = func(ctx context.Context, status string) ([]logbook.Logbook, error) {
			gotStatus = status
			return []logbook.Logbook{}, nil
		}

		_, err := deps.service.GetAllForReview(ctx, logbook.StatusPending)

		assert.NoError(t, err)
		assert.Equal(t, logbook.StatusPending, gotStatus)
	})
}
