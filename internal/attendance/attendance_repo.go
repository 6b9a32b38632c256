package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, f ListFilter) ([]Attendance, int64, error)
	UpdateCheckOut(ctx context.Context, a *Attendance) error
	UpdateApproval(ctx context.Context, a *Attendance) error
	HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, f ListFilter) ([]Attendance, int64, error) {
	q := r.db.WithContext(ctx).Model(&Attendance{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.WorkType != "" {
		q = q.Where("check_in_work_type = ? OR check_out_work_type = ?", f.WorkType, f.WorkType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", f.StartDate.Format("2006-01-02"))
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", f.EndDate.Format("2006-01-02"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var rows []Attendance
	err := q.Preload("User").
		Order("date DESC, check_in_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}

// UpdateCheckOut hanya menyentuh kolom leg check-out supaya keputusan
// approval yang berjalan bersamaan tidak tertimpa.
func (r *repository) UpdateCheckOut(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"check_out_time":           a.CheckOutTime,
			"check_out_work_type":      a.CheckOutWorkType,
			"check_out_offsite_reason": a.CheckOutOffsiteReason,
			"check_out_photo":          a.CheckOutPhoto,
			"check_out_address":        a.CheckOutAddress,
			"check_out_ip":             a.CheckOutIP,
			"work_hours":               a.WorkHours,
			"status":                   a.Status,
		}).Error
}

// UpdateApproval hanya menyentuh kolom approval; kolom check-in/out aman
// dari penulis yang bersamaan.
func (r *repository) UpdateApproval(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"approval_status":  a.ApprovalStatus,
			"approved_by":      a.ApprovedBy,
			"approved_at":      a.ApprovedAt,
			"rejected_by":      a.RejectedBy,
			"rejected_at":      a.RejectedAt,
			"rejection_reason": a.RejectionReason,
		}).Error
}

func (r *repository) HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("check_in_time IS NOT NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) IsFileReferenced(ctx context.Context, path string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("check_in_photo = ? OR check_out_photo = ?", path, path).
		Count(&count).Error
	return count > 0, err
}
