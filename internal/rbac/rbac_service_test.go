package rbac

import (
	"context"
	"testing"

	"go-presensi/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
)

type mockRepo struct {
	userRoles    []UserRoleRow
	rolePerms    []RolePermissionRow
	assignedUser string
	assignedRole string
}

func (m *mockRepo) GetUserRoles() ([]UserRoleRow, error) {
	return m.userRoles, nil
}

func (m *mockRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return m.rolePerms, nil
}

func (m *mockRepo) UpsertUserRole(userID, role string) error {
	m.assignedUser = userID
	m.assignedRole = role
	return nil
}

func (m *mockRepo) SeedRolePermissions(rows []RolePermissionRow) error {
	m.rolePerms = append(m.rolePerms, rows...)
	return nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &mockRepo{
		userRoles: []UserRoleRow{
			{UserID: "user-1", Role: "supervisor"},
			{UserID: "user-2", Role: "employee"},
		},
		rolePerms: []RolePermissionRow{
			{Role: "supervisor", Resource: "attendance", Action: "review"},
		},
	}
	service := NewService(repo, newTestEnforcer(t))

	allowed, err := service.Enforce(domain.EnforceRequest{
		UserID:   "user-1",
		Resource: "attendance",
		Action:   "review",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.Enforce(domain.EnforceRequest{
		UserID:   "user-2",
		Resource: "attendance",
		Action:   "review",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = service.Enforce(domain.EnforceRequest{
		UserID:   "user-1",
		Resource: "attendance",
		Action:   "delete",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestRBACService_EnforceSeesRoleChanges(t *testing.T) {
	repo := &mockRepo{
		rolePerms: []RolePermissionRow{
			{Role: "supervisor", Resource: "leave", Action: "review"},
		},
	}
	service := NewService(repo, newTestEnforcer(t))

	req := domain.EnforceRequest{UserID: "user-1", Resource: "leave", Action: "review"}

	allowed, err := service.Enforce(req)
	assert.NoError(t, err)
	assert.False(t, allowed)

	// Promosi berlaku pada enforce berikutnya tanpa reload eksplisit.
	repo.userRoles = []UserRoleRow{{UserID: "user-1", Role: "supervisor"}}

	allowed, err = service.Enforce(req)
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestRBACService_AssignRole(t *testing.T) {
	repo := &mockRepo{}
	service := NewService(repo, newTestEnforcer(t))

	err := service.AssignRole(context.Background(), "user-9", "admin")
	assert.NoError(t, err)
	assert.Equal(t, "user-9", repo.assignedUser)
	assert.Equal(t, "admin", repo.assignedRole)
}
