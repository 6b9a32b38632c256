package officenetwork

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	officenetworkerrors "go-presensi/internal/officenetwork/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, o *OfficeNetwork) error
	updateFn        func(ctx context.Context, o *OfficeNetwork) error
	deleteFn        func(ctx context.Context, id int64) error
	findByIDFn      func(ctx context.Context, id int64) (*OfficeNetwork, error)
	findAllFn       func(ctx context.Context) ([]OfficeNetwork, error)
	findAllActiveFn func(ctx context.Context) ([]OfficeNetwork, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, o *OfficeNetwork) error {
	return f.createFn(ctx, o)
}
func (f *fakeRepo) Update(ctx context.Context, o *OfficeNetwork) error {
	return f.updateFn(ctx, o)
}
func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*OfficeNetwork, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]OfficeNetwork, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]OfficeNetwork, error) {
	return f.findAllActiveFn(ctx)
}

func TestService_Classify_OnsiteByIP(t *testing.T) {
	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]OfficeNetwork, error) {
			return []OfficeNetwork{mainOffice()}, nil
		},
	}
	svc := NewService(nil, repo, nil)

	res, err := svc.Classify(context.Background(), ClassifyInput{IP: "192.168.1.50"})
	assert.NoError(t, err)
	assert.True(t, res.IsOnsite)
	assert.Equal(t, WorkTypeOnsite, res.WorkType)
	assert.Equal(t, MethodIP, res.Method)
	assert.Equal(t, "IP address matches Kantor Pusat", res.Reason)
	assert.NotNil(t, res.Office)
}

func TestService_Classify_OnsiteByGPSOnly(t *testing.T) {
	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]OfficeNetwork, error) {
			return []OfficeNetwork{mainOffice()}, nil
		},
	}
	svc := NewService(nil, repo, nil)

	res, err := svc.Classify(context.Background(), ClassifyInput{
		Latitude:  f64Ptr(-6.19955),
		Longitude: f64Ptr(106.8166),
	})
	assert.NoError(t, err)
	assert.True(t, res.IsOnsite)
	assert.Equal(t, "Within 100m of Kantor Pusat", res.Reason)
}

func TestService_Classify_Offsite(t *testing.T) {
	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]OfficeNetwork, error) {
			return []OfficeNetwork{mainOffice()}, nil
		},
	}
	svc := NewService(nil, repo, nil)

	// GPS ~200m dari kantor, IP tidak cocok.
	res, err := svc.Classify(context.Background(), ClassifyInput{
		IP:        "10.0.0.1",
		Latitude:  f64Ptr(-6.1982),
		Longitude: f64Ptr(106.8166),
	})
	assert.NoError(t, err)
	assert.False(t, res.IsOnsite)
	assert.Equal(t, WorkTypeOffsite, res.WorkType)
	assert.Equal(t, "No matching office network found for IP/GPS", res.Reason)
}

func TestService_Classify_NoActiveNetworkConfigured(t *testing.T) {
	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]OfficeNetwork, error) {
			return nil, nil
		},
	}
	svc := NewService(nil, repo, nil)

	res, err := svc.Classify(context.Background(), ClassifyInput{IP: "192.168.1.50"})
	assert.NoError(t, err)
	assert.False(t, res.IsOnsite)
	assert.Equal(t, "No active office network configured", res.Reason)
}

func TestService_Classify_UsesRedisCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached, _ := json.Marshal([]OfficeNetwork{mainOffice()})
	mock.ExpectGet(ActiveNetworksCacheKey).SetVal(string(cached))

	called := false
	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]OfficeNetwork, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewService(nil, repo, rdb)

	res, err := svc.Classify(context.Background(), ClassifyInput{IP: "192.168.1.50"})
	assert.NoError(t, err)
	assert.True(t, res.IsOnsite)
	assert.False(t, called, "cache hit must not touch the repository")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_ValidationAndCacheInvalidation(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()
	rdb, redmock := redismock.NewClientMock()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, o *OfficeNetwork) error {
			o.ID = 7
			return nil
		},
	}
	svc := NewService(db, repo, rdb)

	// Tanpa identitas IP maupun GPS: ditolak.
	dbmock.ExpectBegin()
	dbmock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateOfficeNetworkRequest{Name: "Kosong"})
	assert.ErrorIs(t, err, officenetworkerrors.ErrIdentityRequired)

	// Radius nol: ditolak.
	zero := 0
	dbmock.ExpectBegin()
	dbmock.ExpectRollback()
	_, err = svc.Create(context.Background(), CreateOfficeNetworkRequest{
		Name:         "Radius Nol",
		IPAddress:    strPtr("10.0.0.1"),
		RadiusMeters: &zero,
	})
	assert.ErrorIs(t, err, officenetworkerrors.ErrInvalidRadius)

	// Valid: tersimpan, default radius 100, cache di-invalidate.
	dbmock.ExpectBegin()
	dbmock.ExpectCommit()
	redmock.ExpectDel(ActiveNetworksCacheKey).SetVal(1)
	resp, err := svc.Create(context.Background(), CreateOfficeNetworkRequest{
		Name:      "Kantor Baru",
		IPAddress: strPtr("10.0.0.1"),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 100, resp.RadiusMeters)
	assert.True(t, resp.IsActive)

	assert.NoError(t, dbmock.ExpectationsWereMet())
	assert.NoError(t, redmock.ExpectationsWereMet())
}
