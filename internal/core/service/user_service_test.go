package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/urlmin/minify-system/internal/core/auth"
	"github.com/urlmin/minify-system/internal/core/domain"
	"github.com/urlmin/minify-system/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Name == u.Name {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Search(_ context.Context, _ string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) EnsureIndexes(_ context.Context) error { return nil }

func newTestUserService(repo *stubUserRepo) *UserService {
	codec := auth.NewCodec("test-secret", 0)
	bootstrap := auth.NewBootstrap("", "", "")
	return NewUserService(repo, codec, bootstrap, "http://localhost:3000", zerolog.Nop())
}

func TestUserService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	out, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:  "alice",
		Email: "alice@example.com",
		Role:  "normal",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.ID == "" {
		t.Fatalf("empty user id")
	}
	if out.Token == "" {
		t.Fatalf("empty login secret")
	}
	if out.Ref != "http://localhost:3000/users/"+out.ID {
		t.Fatalf("ref = %q", out.Ref)
	}

	stored := repo.users[out.ID]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.TokenHash == out.Token {
		t.Fatalf("login secret stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.TokenHash), []byte(out.Token)) != nil {
		t.Fatalf("stored hash does not match the issued secret")
	}
}

func TestUserService_RegisterDuplicateName(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Name: "alice", Email: "a@example.com", Role: "normal"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, ports.RegisterInput{Name: "alice", Email: "b@example.com", Role: "normal"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_RegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Email: "a@example.com", Role: "root"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_RegisterRejectsGuestRole(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Email: "a@example.com", Role: "guest"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_LoginStoredUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	out, err := svc.Register(ctx, ports.RegisterInput{Name: "alice", Email: "alice@example.com", Role: "admin"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	credential, principal, err := svc.Login(ctx, "alice@example.com", out.Token)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if credential == "" {
		t.Fatalf("empty credential")
	}
	if principal.ID != out.ID || principal.Role != domain.RoleAdmin {
		t.Fatalf("principal = %+v", principal)
	}

	parsed, err := auth.NewCodec("test-secret", 0).Verify(credential)
	if err != nil {
		t.Fatalf("verify issued credential: %v", err)
	}
	if parsed.ID != out.ID || parsed.Email != "alice@example.com" || parsed.Role != domain.RoleAdmin {
		t.Fatalf("parsed principal = %+v", parsed)
	}
}

func TestUserService_LoginWrongSecret(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Name: "alice", Email: "alice@example.com", Role: "normal"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

// The bootstrap SuperAdmin authenticates without any stored account.
func TestUserService_LoginBootstrapSuperAdmin(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	credential, principal, err := svc.Login(context.Background(), auth.DefaultSuperAdminEmail, auth.DefaultSuperAdminToken)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if credential == "" {
		t.Fatalf("empty credential")
	}
	if principal.Role != domain.RoleSuperAdmin || principal.ID != auth.DefaultSuperAdminID {
		t.Fatalf("principal = %+v", principal)
	}
}

func TestUserService_UpdateLeavesRoleAlone(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	out, _ := svc.Register(ctx, ports.RegisterInput{Name: "alice", Email: "alice@example.com", Role: "admin"})

	view, err := svc.Update(ctx, out.ID, ports.UpdateUserInput{Name: "alicia"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Name != "alicia" {
		t.Fatalf("name = %q", view.Name)
	}
	if view.Role != domain.RoleAdmin {
		t.Fatalf("role changed to %q", view.Role)
	}
	if view.Email != "alice@example.com" {
		t.Fatalf("email = %q", view.Email)
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	out, _ := svc.Register(ctx, ports.RegisterInput{Name: "alice", Email: "alice@example.com", Role: "normal"})

	view, err := svc.UpdateRole(ctx, out.ID, "admin")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if view.Role != domain.RoleAdmin {
		t.Fatalf("role = %q", view.Role)
	}
	if repo.users[out.ID].Role != domain.RoleAdmin {
		t.Fatalf("stored role = %q", repo.users[out.ID].Role)
	}

	if _, err := svc.UpdateRole(ctx, out.ID, "root"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_DeleteMissing(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	err := svc.Delete(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
