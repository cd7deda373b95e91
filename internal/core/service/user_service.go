package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/urlmin/minify-system/internal/core/auth"
	"github.com/urlmin/minify-system/internal/core/domain"
	"github.com/urlmin/minify-system/internal/core/ports"
)

// UserService implements registration, login and account administration.
type UserService struct {
	repo      ports.UserRepository
	codec     *auth.Codec
	bootstrap *auth.Bootstrap
	baseURL   string
	log       zerolog.Logger
}

func NewUserService(repo ports.UserRepository, codec *auth.Codec, bootstrap *auth.Bootstrap, baseURL string, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, codec: codec, bootstrap: bootstrap, baseURL: baseURL, log: log}
}

// Register creates an account with a fresh id and login secret. The secret
// is stored only as a bcrypt hash and returned in plaintext exactly once.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisteredUser, error) {
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("register: name and email are required: %w", domain.ErrValidation)
	}
	if !domain.AssignableRole(in.Role) {
		return nil, fmt.Errorf("register: unknown role %q: %w", in.Role, domain.ErrValidation)
	}

	if existing, err := s.repo.FindByName(ctx, in.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("register: name %q taken: %w", in.Name, domain.ErrUserExists)
	}

	secret := NewShortToken()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash secret: %w", err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      domain.Role(in.Role),
		TokenHash: string(hash),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("user insert failed")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")

	return &ports.RegisteredUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: secret,
		Ref:   s.ref(user.ID),
	}, nil
}

// Login exchanges (email, login secret) for a signed bearer credential valid
// for the codec's TTL. The bootstrap SuperAdmin is matched before any
// database access; all failure modes collapse into ErrAuthentication so the
// response never reveals whether the account exists.
func (s *UserService) Login(ctx context.Context, email, secretToken string) (string, domain.Principal, error) {
	if s.bootstrap.MatchLogin(email, secretToken) {
		return s.issue(s.bootstrap.SuperAdmin())
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("login: %w", domain.ErrAuthentication)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.TokenHash), []byte(secretToken)) != nil {
		return "", domain.Principal{}, fmt.Errorf("login: %w", domain.ErrAuthentication)
	}

	return s.issue(user.Principal())
}

func (s *UserService) issue(p domain.Principal) (string, domain.Principal, error) {
	credential, err := s.codec.Issue(p)
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("issue credential: %w", err)
	}
	s.log.Info().Str("user_id", p.ID).Str("role", string(p.Role)).Msg("credential issued")
	return credential, p, nil
}

// Get returns one account by id.
func (s *UserService) Get(ctx context.Context, id string) (*ports.UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.view(user), nil
}

// Search returns accounts whose name matches the pattern. Empty pattern
// lists everyone.
func (s *UserService) Search(ctx context.Context, namePattern string) ([]ports.UserView, error) {
	users, err := s.repo.Search(ctx, namePattern)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	views := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, *s.view(u))
	}
	return views, nil
}

// Update changes profile fields. Role is untouchable on this path.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*ports.UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return s.view(user), nil
}

// UpdateRole is the only way a stored role changes.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*ports.UserView, error) {
	if !domain.AssignableRole(role) {
		return nil, fmt.Errorf("update role: unknown role %q: %w", role, domain.ErrValidation)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	user.Role = domain.Role(role)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	s.log.Info().Str("user_id", id).Str("role", role).Msg("role updated")
	return s.view(user), nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) view(u *domain.User) *ports.UserView {
	return &ports.UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Ref:   s.ref(u.ID),
	}
}

func (s *UserService) ref(id string) string {
	return fmt.Sprintf("%s/users/%s", s.baseURL, id)
}
