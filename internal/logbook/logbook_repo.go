package logbook

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=logbook_repo.go -destination=mock/logbook_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lb *Logbook) error
	FindByID(ctx context.Context, id string) (*Logbook, error)
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Logbook, error)
	FindAllByUser(ctx context.Context, userID string) ([]Logbook, error)
	FindAllByStatus(ctx context.Context, status string) ([]Logbook, error)
	Update(ctx context.Context, lb *Logbook) error
	ExistsForDate(ctx context.Context, userID string, date time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, lb *Logbook) error {
	return r.db.WithContext(ctx).Create(lb).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Logbook, error) {
	var lb Logbook
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&lb, "id = ?", id).Error
	return &lb, err
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Logbook, error) {
	var lb Logbook
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("log_date = ?", date.Format("2006-01-02")).
		First(&lb).Error
	return &lb, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Logbook, error) {
	var logbooks []Logbook
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("log_date DESC").
		Find(&logbooks).Error
	return logbooks, err
}

func (r *repository) FindAllByStatus(ctx context.Context, status string) ([]Logbook, error) {
	var logbooks []Logbook
	db := r.db.WithContext(ctx).Preload("User")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("log_date DESC").Find(&logbooks).Error
	return logbooks, err
}

func (r *repository) Update(ctx context.Context, lb *Logbook) error {
	return r.db.WithContext(ctx).Save(lb).Error
}

func (r *repository) ExistsForDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Logbook{}).
		Where("user_id = ?", userID).
		Where("log_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}
