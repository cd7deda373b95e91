package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/urlmin/minify-system/internal/core/domain"
)

// UserLookup is the slice of the user repository the resolver needs.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Resolver turns the Authorization header of a request into a Principal.
//
// The header carries a repurposed Basic shape: base64(loginKey:credential),
// where credential is a signed bearer token from Codec.Issue. Only the
// credential segment is authenticated; the loginKey segment is ignored.
type Resolver struct {
	codec     *Codec
	users     UserLookup
	bootstrap *Bootstrap
}

// NewResolver builds a Resolver.
func NewResolver(codec *Codec, users UserLookup, bootstrap *Bootstrap) *Resolver {
	return &Resolver{codec: codec, users: users, bootstrap: bootstrap}
}

// Resolve produces the request principal.
//
//  1. No credential material → the fixed Guest principal. Whether guests may
//     do anything is decided by the permission tables, not here.
//  2. Malformed transport encoding or a bad/expired credential →
//     domain.ErrAuthentication.
//  3. A credential naming the bootstrap SuperAdmin short-circuits the
//     persistence lookup.
//  4. Anyone else must still exist in storage; a credential for a deleted
//     account is treated exactly like a forged one.
func (r *Resolver) Resolve(ctx context.Context, authHeader string) (domain.Principal, error) {
	if authHeader == "" {
		return r.bootstrap.Guest(), nil
	}

	credential, err := extractCredential(authHeader)
	if err != nil {
		return domain.Principal{}, err
	}

	claimed, err := r.codec.Verify(credential)
	if err != nil {
		return domain.Principal{}, err
	}

	if r.bootstrap.IsSuperAdmin(claimed) {
		return r.bootstrap.SuperAdmin(), nil
	}

	user, err := r.users.FindByID(ctx, claimed.ID)
	if err != nil {
		// Unknown principal collapses into the generic authentication
		// failure; the client must not learn whether the account exists.
		return domain.Principal{}, fmt.Errorf("resolve principal: %w", domain.ErrAuthentication)
	}
	return user.Principal(), nil
}

// extractCredential peels the bearer token out of "Basic base64(key:token)".
func extractCredential(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
		return "", fmt.Errorf("authorization header: %w", domain.ErrAuthentication)
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("authorization header: %w", domain.ErrAuthentication)
	}

	_, credential, found := strings.Cut(string(decoded), ":")
	if !found || credential == "" {
		return "", fmt.Errorf("authorization header: %w", domain.ErrAuthentication)
	}
	return credential, nil
}
