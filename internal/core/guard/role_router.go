package guard

import "github.com/loccar/loccar-web/internal/core/domain"

// DefaultRoute maps a role to its landing page.
func DefaultRoute(role domain.Role) string {
	switch {
	case role.IsClient():
		return ClientHome
	case role.IsStaff():
		return DashboardPath
	default:
		return LoginPath
	}
}

// Landing decides where a request for the root path goes.
func Landing(authenticated bool, role domain.Role) string {
	if !authenticated {
		return LoginPath
	}
	return DefaultRoute(role)
}
