package appsettings

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/timewindow"

	"go.uber.org/zap"
)

//go:generate mockgen -source=appsettings_service.go -destination=mock/appsettings_service_mock.go -package=mock
type Service interface {
	// TimeWindowSettings membaca konfigurasi terkini dari database pada
	// setiap panggilan. Tidak ada cache di boundary validator.
	TimeWindowSettings(ctx context.Context) (timewindow.TimeSettings, error)
	LeavePolicy(ctx context.Context) (LeavePolicy, error)
	GetTimeValidation(ctx context.Context) (TimeValidationResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("appsettings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("appsettings.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) currentValues(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func (s *service) TimeWindowSettings(ctx context.Context) (timewindow.TimeSettings, error) {
	values, err := s.currentValues(ctx)
	if err != nil {
		return timewindow.TimeSettings{}, err
	}

	parse := func(key string) (timewindow.Minutes, error) {
		m, err := timewindow.ParseClock(values[key])
		if err != nil {
			// Nilai rusak di database dianggap kesalahan konfigurasi;
			// fallback ke default agar validasi tetap deterministik.
			s.logger.Warn("invalid clock setting, using default",
				zap.String("key", key),
				zap.String("value", values[key]),
			)
			return timewindow.ParseClock(defaults[key])
		}
		return m, nil
	}

	var settings timewindow.TimeSettings
	if settings.CheckIn.Start, err = parse(KeyCheckInStart); err != nil {
		return settings, err
	}
	if settings.CheckIn.End, err = parse(KeyCheckInEnd); err != nil {
		return settings, err
	}
	if settings.CheckOut.Start, err = parse(KeyCheckOutStart); err != nil {
		return settings, err
	}
	if settings.CheckOut.End, err = parse(KeyCheckOutEnd); err != nil {
		return settings, err
	}
	if settings.WorkingHours.Start, err = parse(KeyWorkingStart); err != nil {
		return settings, err
	}
	if settings.WorkingHours.End, err = parse(KeyWorkingEnd); err != nil {
		return settings, err
	}

	settings.LateToleranceMinutes = intValue(values, KeyLateTolerance)

	return settings, nil
}

func (s *service) LeavePolicy(ctx context.Context) (LeavePolicy, error) {
	values, err := s.currentValues(ctx)
	if err != nil {
		return LeavePolicy{}, err
	}

	return LeavePolicy{
		MinReasonLength:     intValue(values, KeyLeaveMinReason),
		SubmitDeadlineHours: intValue(values, KeyLeaveDeadlineHrs),
		AnnualQuotaDays:     intValue(values, KeyLeaveAnnualQuota),
	}, nil
}

func (s *service) GetTimeValidation(ctx context.Context) (TimeValidationResponse, error) {
	settings, err := s.TimeWindowSettings(ctx)
	if err != nil {
		return TimeValidationResponse{}, err
	}

	var resp TimeValidationResponse
	resp.CheckIn.StartTime = settings.CheckIn.Start.Clock()
	resp.CheckIn.EndTime = settings.CheckIn.End.Clock()
	resp.CheckIn.LateToleranceMinutes = settings.LateToleranceMinutes
	resp.CheckOut.StartTime = settings.CheckOut.Start.Clock()
	resp.CheckOut.EndTime = settings.CheckOut.End.Clock()
	resp.WorkingHours.Start = settings.WorkingHours.Start.Clock()
	resp.WorkingHours.End = settings.WorkingHours.End.Clock()
	return resp, nil
}

func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	for key, value := range req.Settings {
		if err := validateSetting(key, value); err != nil {
			s.logger.Warn("update settings validation failed",
				zap.String("key", key),
				zap.Error(err),
			)
			return err
		}
		if err := qtx.Upsert(ctx, key, value); err != nil {
			s.logger.Error("upsert setting failed", zap.String("key", key), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("settings updated", zap.Int("count", len(req.Settings)))
	return nil
}

func validateSetting(key, value string) error {
	switch key {
	case KeyCheckInStart, KeyCheckInEnd, KeyCheckOutStart, KeyCheckOutEnd,
		KeyWorkingStart, KeyWorkingEnd:
		if _, err := timewindow.ParseClock(value); err != nil {
			return apperror.InvalidField(key)
		}
	case KeyLateTolerance, KeyLeaveMinReason, KeyLeaveDeadlineHrs, KeyLeaveAnnualQuota:
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return apperror.InvalidField(key)
		}
	default:
		return apperror.NewWithDetails(
			apperror.CodeInvalidInput,
			"unknown setting key",
			http.StatusBadRequest,
			map[string]string{"key": key},
		)
	}
	return nil
}

func intValue(values map[string]string, key string) int {
	n, err := strconv.Atoi(values[key])
	if err != nil {
		n, _ = strconv.Atoi(defaults[key])
	}
	return n
}
