package rbac

// DefaultRolePermissions adalah permission bawaan per role. Disemai saat
// startup dan bisa ditambah lewat tabel role_permissions.
func DefaultRolePermissions() []RolePermissionRow {
	return []RolePermissionRow{
		{Role: "supervisor", Resource: "attendance", Action: "review"},
		{Role: "supervisor", Resource: "logbook", Action: "review"},
		{Role: "supervisor", Resource: "leave", Action: "review"},
		{Role: "supervisor", Resource: "office_network", Action: "read"},

		{Role: "admin", Resource: "attendance", Action: "review"},
		{Role: "admin", Resource: "logbook", Action: "review"},
		{Role: "admin", Resource: "leave", Action: "review"},
		{Role: "admin", Resource: "office_network", Action: "read"},
		{Role: "admin", Resource: "office_network", Action: "manage"},
		{Role: "admin", Resource: "user", Action: "manage"},
		{Role: "admin", Resource: "settings", Action: "manage"},
	}
}
