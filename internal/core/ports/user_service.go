package ports

import (
	"context"

	"github.com/urlmin/minify-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name  string
	Email string
	Role  string
}

// UpdateUserInput carries the mutable profile fields. Role is deliberately
// absent: role changes go through the dedicated UpdateRole operation.
type UpdateUserInput struct {
	Name  string
	Email string
}

// RegisteredUser is returned once from Register. Token is the plaintext
// login secret; it is never recoverable afterwards.
type RegisteredUser struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
	Token string
	Ref   string
}

// UserView is the read projection of an account.
type UserView struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
	Ref   string
}

// UserService defines the use-case operations of the identity service.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisteredUser, error)
	// Login exchanges (email, login secret) for a signed bearer credential.
	Login(ctx context.Context, email, secretToken string) (string, domain.Principal, error)
	Get(ctx context.Context, id string) (*UserView, error)
	Search(ctx context.Context, namePattern string) ([]UserView, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*UserView, error)
	UpdateRole(ctx context.Context, id, role string) (*UserView, error)
	Delete(ctx context.Context, id string) error
}
