package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAllByUser(ctx context.Context, userID string) ([]Leave, error)
	FindAllByStatus(ctx context.Context, status string) ([]Leave, error)
	UpdateReview(ctx context.Context, l *Leave) error
	HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	PendingDaysInYear(ctx context.Context, userID, leaveType string, year int) (int, error)
	QuotaUsedDays(ctx context.Context, userID string, year int) (int, error)
	CreateQuotaUsage(ctx context.Context, usage *LeaveQuotaUsage) error
	IsFileReferenced(ctx context.Context, path string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByStatus(ctx context.Context, status string) ([]Leave, error) {
	var leaves []Leave
	db := r.db.WithContext(ctx).Preload("User")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

// UpdateReview hanya menyentuh kolom review.
func (r *repository) UpdateReview(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"status":       l.Status,
			"review_notes": l.ReviewNotes,
			"reviewed_by":  l.ReviewedBy,
			"reviewed_at":  l.ReviewedAt,
		}).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("user_id = ?", userID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) PendingDaysInYear(ctx context.Context, userID, leaveType string, year int) (int, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Select("COALESCE(SUM(total_days), 0)").
		Where("user_id = ?", userID).
		Where("leave_type = ?", leaveType).
		Where("status = ?", StatusPending).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Scan(&total).Error
	return int(total.Int64), err
}

func (r *repository) QuotaUsedDays(ctx context.Context, userID string, year int) (int, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&LeaveQuotaUsage{}).
		Select("COALESCE(SUM(days), 0)").
		Where("user_id = ?", userID).
		Where("year = ?", year).
		Scan(&total).Error
	return int(total.Int64), err
}

func (r *repository) CreateQuotaUsage(ctx context.Context, usage *LeaveQuotaUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

func (r *repository) IsFileReferenced(ctx context.Context, path string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("attachment = ?", path).
		Count(&count).Error
	return count > 0, err
}
