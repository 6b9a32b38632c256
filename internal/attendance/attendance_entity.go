package attendance

import (
	"time"

	"go-presensi/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_user_date"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendances_user_date"`

	CheckInTime  time.Time  `gorm:"type:timestamptz;not null"`
	CheckOutTime *time.Time `gorm:"type:timestamptz"`

	// Work type dicatat per leg; check-in dan check-out boleh berbeda.
	CheckInWorkType       string  `gorm:"type:varchar(10);not null"`
	CheckOutWorkType      *string `gorm:"type:varchar(10)"`
	CheckInOffsiteReason  *string `gorm:"type:varchar(1000)"`
	CheckOutOffsiteReason *string `gorm:"type:varchar(1000)"`
	CheckInPhoto          *string `gorm:"type:varchar(255)"`
	CheckOutPhoto         *string `gorm:"type:varchar(255)"`
	CheckInAddress        *string `gorm:"type:varchar(255)"`
	CheckOutAddress       *string `gorm:"type:varchar(255)"`
	CheckInIP             *string `gorm:"type:varchar(45)"`
	CheckOutIP            *string `gorm:"type:varchar(45)"`

	Status      string   `gorm:"type:varchar(20);not null;default:'present'"`
	LateMinutes int      `gorm:"type:int;not null;default:0"`
	WorkHours   *float64 `gorm:"type:numeric(5,2)"`

	ApprovalStatus  string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_attendances_approval"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	User *user.User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_attendances_deleted_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
