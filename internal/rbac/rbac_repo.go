package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles() ([]UserRoleRow, error)
	GetRolePermissions() ([]RolePermissionRow, error)
	UpsertUserRole(userID, role string) error
	SeedRolePermissions(rows []RolePermissionRow) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type UserRoleRow struct {
	UserID string `gorm:"primaryKey;type:uuid"`
	Role   string `gorm:"type:varchar(20);not null"`
}

func (UserRoleRow) TableName() string {
	return "user_roles"
}

type RolePermissionRow struct {
	Role     string `gorm:"primaryKey;type:varchar(20)"`
	Resource string `gorm:"primaryKey;type:varchar(50)"`
	Action   string `gorm:"primaryKey;type:varchar(50)"`
}

func (RolePermissionRow) TableName() string {
	return "role_permissions"
}

func (r *repository) GetUserRoles() ([]UserRoleRow, error) {
	var result []UserRoleRow
	err := r.db.Find(&result).Error
	return result, err
}

func (r *repository) GetRolePermissions() ([]RolePermissionRow, error) {
	var result []RolePermissionRow
	err := r.db.Find(&result).Error
	return result, err
}

// UpsertUserRole mengganti role user; satu user satu role.
func (r *repository) UpsertUserRole(userID, role string) error {
	return r.db.Exec(
		`INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`,
		userID, role,
	).Error
}

// SeedRolePermissions mengisi permission bawaan bila belum ada.
func (r *repository) SeedRolePermissions(rows []RolePermissionRow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			err := tx.Exec(
				`INSERT INTO role_permissions (role, resource, action) VALUES (?, ?, ?)
				 ON CONFLICT (role, resource, action) DO NOTHING`,
				row.Role, row.Resource, row.Action,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
