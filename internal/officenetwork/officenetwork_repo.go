package officenetwork

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=officenetwork_repo.go -destination=mock/officenetwork_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *OfficeNetwork) error
	Update(ctx context.Context, o *OfficeNetwork) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*OfficeNetwork, error)
	FindAll(ctx context.Context) ([]OfficeNetwork, error)
	FindAllActive(ctx context.Context) ([]OfficeNetwork, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, o *OfficeNetwork) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) Update(ctx context.Context, o *OfficeNetwork) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&OfficeNetwork{}, id).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*OfficeNetwork, error) {
	var o OfficeNetwork
	err := r.db.WithContext(ctx).First(&o, id).Error
	return &o, err
}

func (r *repository) FindAll(ctx context.Context) ([]OfficeNetwork, error) {
	var rows []OfficeNetwork
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindAllActive mengembalikan network aktif dalam urutan konfigurasi
// (ascending id); urutan ini yang dipakai matcher sebagai prioritas.
func (r *repository) FindAllActive(ctx context.Context) ([]OfficeNetwork, error) {
	var rows []OfficeNetwork
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
