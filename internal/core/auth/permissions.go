// Package auth implements the authorization engine shared by the user and
// URL services: the static role→action permission tables, the signed bearer
// credential codec, and the request identity resolver.
package auth

import (
	"fmt"

	"github.com/urlmin/minify-system/internal/core/domain"
)

// Action names one guarded operation. Actions are static and known at
// compile time; each service checks against its own table.
type Action string

// URL service actions.
const (
	ActionMinifyURL   Action = "minify-url"
	ActionRedirectURL Action = "redirect-url"
	ActionStatsByURL  Action = "stats-by-url"
	ActionStatsByUser Action = "stats-by-user"
	ActionAllStats    Action = "all-stats"
)

// User service actions.
const (
	ActionAddUser    Action = "add-user"
	ActionUpdateUser Action = "update-user"
	ActionDeleteUser Action = "delete-user"
	ActionListUsers  Action = "list-users"
	ActionViewUser   Action = "view-user"
	ActionUpdateRole Action = "update-role"
)

// Table maps every role to its allowed action set. Tables are built once at
// package init and never mutated.
type Table map[domain.Role]map[Action]struct{}

func newTable(entries map[domain.Role][]Action) Table {
	t := make(Table, len(entries))
	for role, actions := range entries {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			set[a] = struct{}{}
		}
		t[role] = set
	}
	return t
}

// Allows reports whether role may perform action. The lookup is total: a
// role without an entry of its own is checked against the guest entry, so an
// unexpected role is treated as the most restrictive one rather than
// panicking or escalating.
func (t Table) Allows(role domain.Role, action Action) bool {
	set, ok := t[role]
	if !ok {
		set = t[domain.RoleGuest]
	}
	_, allowed := set[action]
	return allowed
}

// Actions returns the action set for role, applying the same guest fallback
// as Allows. Used by tests to assert table totality.
func (t Table) Actions(role domain.Role) []Action {
	set, ok := t[role]
	if !ok {
		set = t[domain.RoleGuest]
	}
	out := make([]Action, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	return out
}

// URLPermissions guards the URL-shortening service. The redirect route
// itself is public; redirect-url stays in the table so authenticated
// tooling can be checked against it.
var URLPermissions = newTable(map[domain.Role][]Action{
	domain.RoleGuest: {},
	domain.RoleNormal: {
		ActionMinifyURL, ActionRedirectURL, ActionStatsByURL, ActionStatsByUser,
	},
	domain.RoleAdmin: {
		ActionMinifyURL, ActionRedirectURL, ActionStatsByURL, ActionStatsByUser,
	},
	domain.RoleSuperAdmin: {
		ActionMinifyURL, ActionRedirectURL, ActionStatsByURL, ActionStatsByUser,
		ActionAllStats,
	},
})

// UserPermissions guards the user-identity service.
var UserPermissions = newTable(map[domain.Role][]Action{
	domain.RoleGuest: {},
	domain.RoleNormal: {
		ActionListUsers, ActionViewUser,
	},
	domain.RoleAdmin: {
		ActionAddUser, ActionUpdateUser, ActionDeleteUser,
		ActionListUsers, ActionViewUser,
	},
	domain.RoleSuperAdmin: {
		ActionAddUser, ActionUpdateUser, ActionDeleteUser,
		ActionListUsers, ActionViewUser, ActionUpdateRole,
	},
})

// ForbiddenError is returned when an authenticated principal lacks
// permission for an action. The message matches the error contract both
// services expose to clients.
type ForbiddenError struct {
	Email  string
	Action Action
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("'%s' is not allowed operation '%s'", e.Email, e.Action)
}
