package officenetwork

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	officenetworkerrors "go-presensi/internal/officenetwork/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// Cache list network aktif; di-invalidate setiap mutasi CRUD.
	ActiveNetworksCacheKey = "office_networks:active"
	activeNetworksCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=officenetwork_service.go -destination=mock/officenetwork_service_mock.go -package=mock
type Service interface {
	Classify(ctx context.Context, input ClassifyInput) (Classification, error)
	Create(ctx context.Context, req CreateOfficeNetworkRequest) (OfficeNetworkResponse, error)
	GetAll(ctx context.Context) ([]OfficeNetworkResponse, error)
	GetByID(ctx context.Context, id int64) (OfficeNetworkResponse, error)
	Update(ctx context.Context, id int64, req UpdateOfficeNetworkRequest) (OfficeNetworkResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("officenetwork.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("officenetwork.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// activeNetworks membaca daftar network aktif, lewat cache redis bila ada.
// Singleflight mencegah query berulang saat cache kosong di bawah beban.
func (s *service) activeNetworks(ctx context.Context) ([]OfficeNetwork, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, ActiveNetworksCacheKey).Result()
		if err == nil {
			var rows []OfficeNetwork
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveNetworksCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAllActive(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(rows); err == nil {
				s.rdb.Set(ctx, ActiveNetworksCacheKey, jsonData, activeNetworksCacheTTL)
			}
		}

		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]OfficeNetwork), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveNetworksCacheKey).Err(); err != nil {
		s.logger.Error("invalidate cache failed",
			zap.String("key", ActiveNetworksCacheKey),
			zap.Error(err),
		)
	}
}

func validateIdentity(o *OfficeNetwork) error {
	if o.RadiusMeters <= 0 {
		return officenetworkerrors.ErrInvalidRadius
	}

	hasRangeStart := o.IPRangeStart != nil && *o.IPRangeStart != ""
	hasRangeEnd := o.IPRangeEnd != nil && *o.IPRangeEnd != ""
	if hasRangeStart != hasRangeEnd {
		return officenetworkerrors.ErrIncompleteIPRange
	}

	if (o.Latitude != nil) != (o.Longitude != nil) {
		return officenetworkerrors.ErrIncompleteCoordinate
	}

	if !o.HasIPIdentity() && !o.HasGPSIdentity() {
		return officenetworkerrors.ErrIdentityRequired
	}

	return nil
}

func (s *service) Create(ctx context.Context, req CreateOfficeNetworkRequest) (OfficeNetworkResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OfficeNetworkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o := &OfficeNetwork{
		Name:         req.Name,
		IPAddress:    req.IPAddress,
		IPRangeStart: req.IPRangeStart,
		IPRangeEnd:   req.IPRangeEnd,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: 100,
		IsActive:     true,
	}
	if req.RadiusMeters != nil {
		o.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := validateIdentity(o); err != nil {
		s.logger.Warn("create office network validation failed", zap.Error(err))
		return OfficeNetworkResponse{}, err
	}

	if err := qtx.Create(ctx, o); err != nil {
		s.logger.Error("create office network persist failed", zap.Error(err))
		return OfficeNetworkResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return OfficeNetworkResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("create office network success",
		zap.Int64("office_network_id", o.ID),
		zap.String("name", o.Name),
	)

	return mapToResponse(*o), nil
}

func (s *service) GetAll(ctx context.Context) ([]OfficeNetworkResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]OfficeNetworkResponse, len(rows))
	for i, o := range rows {
		res[i] = mapToResponse(o)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (OfficeNetworkResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OfficeNetworkResponse{}, officenetworkerrors.ErrOfficeNetworkNotFound
		}
		return OfficeNetworkResponse{}, err
	}
	return mapToResponse(*o), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateOfficeNetworkRequest) (OfficeNetworkResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OfficeNetworkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OfficeNetworkResponse{}, officenetworkerrors.ErrOfficeNetworkNotFound
		}
		return OfficeNetworkResponse{}, err
	}

	o.Name = req.Name
	o.IPAddress = req.IPAddress
	o.IPRangeStart = req.IPRangeStart
	o.IPRangeEnd = req.IPRangeEnd
	o.Latitude = req.Latitude
	o.Longitude = req.Longitude
	if req.RadiusMeters != nil {
		o.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := validateIdentity(o); err != nil {
		return OfficeNetworkResponse{}, err
	}

	if err := qtx.Update(ctx, o); err != nil {
		s.logger.Error("update office network persist failed",
			zap.Int64("office_network_id", id),
			zap.Error(err),
		)
		return OfficeNetworkResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return OfficeNetworkResponse{}, err
	}

	s.invalidateCache(ctx)

	return mapToResponse(*o), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func mapToResponse(o OfficeNetwork) OfficeNetworkResponse {
	return OfficeNetworkResponse{
		ID:           o.ID,
		Name:         o.Name,
		IPAddress:    o.IPAddress,
		IPRangeStart: o.IPRangeStart,
		IPRangeEnd:   o.IPRangeEnd,
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		RadiusMeters: o.RadiusMeters,
		IsActive:     o.IsActive,
	}
}
