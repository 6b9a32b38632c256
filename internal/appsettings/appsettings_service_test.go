package appsettings

import (
	"context"
	"database/sql"
	"testing"

	"go-presensi/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	findAllFn func(ctx context.Context) ([]AppSetting, error)
	upsertFn  func(ctx context.Context, key, value string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) FindAll(ctx context.Context) ([]AppSetting, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) Upsert(ctx context.Context, key, value string) error {
	return f.upsertFn(ctx, key, value)
}

func TestService_TimeWindowSettings_Defaults(t *testing.T) {
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]AppSetting, error) { return nil, nil },
	}
	svc := NewService(nil, repo)

	settings, err := svc.TimeWindowSettings(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "08:00", settings.CheckIn.Start.Clock())
	assert.Equal(t, "10:00", settings.CheckIn.End.Clock())
	assert.Equal(t, "17:00", settings.WorkingHours.End.Clock())
	assert.Equal(t, 15, settings.LateToleranceMinutes)
}

func TestService_TimeWindowSettings_OverridesAndBadValueFallback(t *testing.T) {
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]AppSetting, error) {
			return []AppSetting{
				{Key: KeyCheckInStart, Value: "07:30"},
				{Key: KeyLateTolerance, Value: "30"},
				{Key: KeyWorkingEnd, Value: "kaput"},
			}, nil
		},
	}
	svc := NewService(nil, repo)

	settings, err := svc.TimeWindowSettings(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "07:30", settings.CheckIn.Start.Clock())
	assert.Equal(t, 30, settings.LateToleranceMinutes)
	// Nilai rusak jatuh ke default.
	assert.Equal(t, "17:00", settings.WorkingHours.End.Clock())
}

func TestService_LeavePolicy(t *testing.T) {
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]AppSetting, error) {
			return []AppSetting{{Key: KeyLeaveAnnualQuota, Value: "20"}}, nil
		},
	}
	svc := NewService(nil, repo)

	policy, err := svc.LeavePolicy(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 20, policy.AnnualQuotaDays)
	assert.Equal(t, 10, policy.MinReasonLength)
	assert.Equal(t, 24, policy.SubmitDeadlineHours)
}

func TestService_Update_RejectsUnknownAndInvalid(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	upserts := map[string]string{}
	repo := &fakeRepo{
		upsertFn: func(ctx context.Context, key, value string) error {
			upserts[key] = value
			return nil
		},
	}
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Update(context.Background(), UpdateSettingsRequest{
		Settings: map[string]string{"mystery.key": "1"},
	})
	assert.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = svc.Update(context.Background(), UpdateSettingsRequest{
		Settings: map[string]string{KeyCheckInStart: "26:00"},
	})
	assert.Error(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.Update(context.Background(), UpdateSettingsRequest{
		Settings: map[string]string{KeyCheckInStart: "07:00", KeyLateTolerance: "10"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "07:00", upserts[KeyCheckInStart])
	assert.Equal(t, "10", upserts[KeyLateTolerance])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetTimeValidation_Shape(t *testing.T) {
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]AppSetting, error) { return nil, nil },
	}
	svc := NewService(nil, repo)

	resp, err := svc.GetTimeValidation(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "08:00", resp.CheckIn.StartTime)
	assert.Equal(t, 15, resp.CheckIn.LateToleranceMinutes)
	assert.Equal(t, "16:00", resp.CheckOut.StartTime)
	assert.Equal(t, "17:00", resp.WorkingHours.End)
}
