package auth

import "github.com/urlmin/minify-system/internal/core/domain"

// Bootstrap defaults. The SuperAdmin account exists only here, never in
// storage; it seeds administration on a fresh deployment. Override the
// login token in any real environment via SUPERADMIN_TOKEN.
const (
	DefaultSuperAdminID    = "SA"
	DefaultSuperAdminEmail = "sa@sa.sa"
	DefaultSuperAdminToken = "mhvXdrZT4jP5T8vBxuvm75"
)

// Bootstrap holds the two reserved identities that exist outside normal
// storage: the SuperAdmin seed account and the anonymous Guest. Built once
// at startup from configuration and never mutated.
type Bootstrap struct {
	superAdmin domain.Principal
	superToken string
}

// NewBootstrap builds the reserved identities. Empty arguments fall back to
// the well-known defaults.
func NewBootstrap(id, email, token string) *Bootstrap {
	if id == "" {
		id = DefaultSuperAdminID
	}
	if email == "" {
		email = DefaultSuperAdminEmail
	}
	if token == "" {
		token = DefaultSuperAdminToken
	}
	return &Bootstrap{
		superAdmin: domain.Principal{ID: id, Email: email, Role: domain.RoleSuperAdmin},
		superToken: token,
	}
}

// SuperAdmin returns the bootstrap SuperAdmin principal.
func (b *Bootstrap) SuperAdmin() domain.Principal {
	return b.superAdmin
}

// Guest returns the principal an unauthenticated request resolves to.
func (b *Bootstrap) Guest() domain.Principal {
	return domain.Principal{ID: "", Email: "", Role: domain.RoleGuest}
}

// IsSuperAdmin reports whether a verified credential names the bootstrap
// account, letting the resolver skip the persistence lookup.
func (b *Bootstrap) IsSuperAdmin(p domain.Principal) bool {
	return p.ID == b.superAdmin.ID && p.Email == b.superAdmin.Email
}

// MatchLogin reports whether the given login credentials are the bootstrap
// account's. Used by the login endpoint before any database access.
func (b *Bootstrap) MatchLogin(email, token string) bool {
	return email == b.superAdmin.Email && token == b.superToken
}
