package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee   = "employee"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password string    `gorm:"type:text;not null"`
	Role     string    `gorm:"type:varchar(20);not null;default:'employee'"`
	IsActive bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}
