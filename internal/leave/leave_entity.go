package leave

import (
	"time"

	"go-presensi/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_user_dates"`

	LeaveType  string    `gorm:"type:varchar(10);not null"`
	StartDate  time.Time `gorm:"type:date;not null;index:idx_leaves_user_dates"`
	EndDate    time.Time `gorm:"type:date;not null;index:idx_leaves_user_dates"`
	TotalDays  int       `gorm:"type:int;not null;default:1"`
	Reason     string    `gorm:"type:text;not null"`
	Attachment *string   `gorm:"type:varchar(255)"`

	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leaves_status"`
	ReviewNotes *string    `gorm:"type:text"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time

	User *user.User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

// LeaveQuotaUsage adalah proyeksi pemakaian kuota izin tahunan, diisi oleh
// consumer event leave.approved. Unik per leave supaya konsumsi ulang event
// tidak menghitung dua kali.
type LeaveQuotaUsage struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_quota_usages_leave"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_quota_usages_user_year"`
	Year    int       `gorm:"type:int;not null;index:idx_leave_quota_usages_user_year"`
	Days    int       `gorm:"type:int;not null"`

	CreatedAt time.Time
}

func (LeaveQuotaUsage) TableName() string {
	return "leave_quota_usages"
}
