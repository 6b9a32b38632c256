package appsettings

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=appsettings_repo.go -destination=mock/appsettings_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]AppSetting, error)
	Upsert(ctx context.Context, key, value string) error
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

func (r *repository) FindAll(ctx context.Context) ([]AppSetting, error) {
	var rows []AppSetting
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *repository) Upsert(ctx context.Context, key, value string) error {
	// UPSERT atomik per key, pola yang sama dengan counter company.
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO app_settings (key, value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, key, value).Error
}
