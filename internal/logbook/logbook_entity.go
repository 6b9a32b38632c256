package logbook

import (
	"time"

	"go-presensi/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Logbook struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_logbooks_user_date"`
	LogDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_logbooks_user_date"`

	Activity    string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`

	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_logbooks_status"`
	ReviewNotes *string    `gorm:"type:text"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time

	User *user.User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_logbooks_deleted_at"`
}

func (Logbook) TableName() string {
	return "logbooks"
}
