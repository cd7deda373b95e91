package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/urlmin/minify-system/internal/core/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	p := domain.Principal{ID: "u1", Email: "alice@example.com", Role: domain.RoleNormal}

	token, err := codec.Issue(p)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	got, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Millisecond)
	token, err := codec.Issue(domain.Principal{ID: "u1", Email: "a@b.c", Role: domain.RoleNormal})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication for expired token, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	token, err := issuer.Issue(domain.Principal{ID: "u1", Email: "a@b.c", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication for forged token, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	if _, err := codec.Verify("not-a-token"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestCodec_UnknownRoleDowngradesToGuest(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	token, err := codec.Issue(domain.Principal{ID: "u1", Email: "a@b.c", Role: domain.Role("root")})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Role != domain.RoleGuest {
		t.Fatalf("expected guest for unknown role, got %s", got.Role)
	}
}
