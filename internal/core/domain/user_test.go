package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"normal":     RoleNormal,
		"admin":      RoleAdmin,
		"superadmin": RoleSuperAdmin,
		"guest":      RoleGuest,
		"":           RoleGuest,
		"SuperAdmin": RoleGuest,
		"root":       RoleGuest,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssignableRole(t *testing.T) {
	for _, r := range Roles() {
		if !AssignableRole(string(r)) {
			t.Errorf("AssignableRole(%q) = false", r)
		}
	}
	for _, s := range []string{"guest", "", "root"} {
		if AssignableRole(s) {
			t.Errorf("AssignableRole(%q) = true", s)
		}
	}
}
