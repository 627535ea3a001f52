package auth

// LoginPath is the unauthenticated entry point. All auth failures funnel
// here silently; only business-action failures surface inline errors.
const LoginPath = "/login/person"

// homePaths maps each role to its landing screen. Expressed as a literal
// table rather than a conditional chain so it can be iterated in tests.
var homePaths = map[Role]string{
	RoleSystemAdmin:       "/homes/system_admin",
	RoleBasetypeAdmin:     "/homes/basetype_admin",
	RoleHRAdmin:           "/homes/hr_admin",
	RoleOrganizationAdmin: "/homes/organization_admin",
	RoleOrganizationUser:  "/homes/organization_user",
	RolePersonUser:        "/homes/person_user",
}

// HomePath returns the landing path for a role. The second return is false
// for any role outside the table; callers must treat that as a login
// redirect, never a crash.
func HomePath(role Role) (string, bool) {
	path, ok := homePaths[role]
	return path, ok
}

// HomePaths returns a copy of the role→path table.
func HomePaths() map[Role]string {
	out := make(map[Role]string, len(homePaths))
	for role, path := range homePaths {
		out[role] = path
	}
	return out
}
