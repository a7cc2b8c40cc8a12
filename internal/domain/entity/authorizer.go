package entity

// Authorizer decides what a role is allowed to do. All privileged-access
// checks go through this single capability instead of repeating role lists
// at every call site.
type Authorizer interface {
	// IsPrivileged reports whether the role may administer the clinic:
	// review suggestions, manage users and workplaces, read audit logs.
	IsPrivileged(roleID int) bool

	// CanProposeAppointments reports whether the role may file
	// appointment suggestions.
	CanProposeAppointments(roleID int) bool
}

// RoleAuthorizer is the default Authorizer backed by the static role table.
type RoleAuthorizer struct{}

func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

func (RoleAuthorizer) IsPrivileged(roleID int) bool {
	return roleID == RoleIDAdmin
}

func (RoleAuthorizer) CanProposeAppointments(roleID int) bool {
	return roleID == RoleIDDoctor
}
