package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/urlmin/minify-system/internal/core/domain"
	"github.com/urlmin/minify-system/internal/core/ports"
)

// stubUserService records the last call and plays back canned results.
type stubUserService struct {
	registered *ports.RegisteredUser
	view       *ports.UserView
	views      []ports.UserView
	credential string
	principal  domain.Principal
	err        error

	gotLogin    [2]string
	gotRegister ports.RegisterInput
	gotRole     string
	gotID       string
}

func (s *stubUserService) Register(_ context.Context, in ports.RegisterInput) (*ports.RegisteredUser, error) {
	s.gotRegister = in
	return s.registered, s.err
}

func (s *stubUserService) Login(_ context.Context, email, secretToken string) (string, domain.Principal, error) {
	s.gotLogin = [2]string{email, secretToken}
	return s.credential, s.principal, s.err
}

func (s *stubUserService) Get(_ context.Context, id string) (*ports.UserView, error) {
	s.gotID = id
	return s.view, s.err
}

func (s *stubUserService) Search(_ context.Context, _ string) ([]ports.UserView, error) {
	return s.views, s.err
}

func (s *stubUserService) Update(_ context.Context, id string, _ ports.UpdateUserInput) (*ports.UserView, error) {
	s.gotID = id
	return s.view, s.err
}

func (s *stubUserService) UpdateRole(_ context.Context, id, role string) (*ports.UserView, error) {
	s.gotID = id
	s.gotRole = role
	return s.view, s.err
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	s.gotID = id
	return s.err
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register(t *testing.T) {
	svc := &stubUserService{
		registered: &ports.RegisteredUser{
			ID:    "u1",
			Name:  "alice",
			Email: "alice@example.com",
			Role:  domain.RoleNormal,
			Token: "s3cret",
			Ref:   "http://localhost:3000/users/u1",
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/users",
		`{"name":"alice","email":"alice@example.com","role":"normal"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp registeredUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.ID != "u1" || resp.Token != "s3cret" || resp.Role != "normal" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if svc.gotRegister.Name != "alice" || svc.gotRegister.Role != "normal" {
		t.Fatalf("service received %+v", svc.gotRegister)
	}
}

func TestUserHandler_RegisterInvalidRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodPost, "/users",
		`{"name":"alice","email":"alice@example.com","role":"root"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserHandler_RegisterMissingEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodPost, "/users", `{"name":"alice","role":"normal"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing parameter 'email'") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestUserHandler_Login(t *testing.T) {
	svc := &stubUserService{
		credential: "signed.jwt.here",
		principal:  domain.Principal{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/users/login",
		`{"email":"alice@example.com","secretToken":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Token != "signed.jwt.here" || resp.Role != "admin" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if svc.gotLogin != [2]string{"alice@example.com", "s3cret"} {
		t.Fatalf("service received %v", svc.gotLogin)
	}
}

func TestUserHandler_LoginFailurePassesThrough(t *testing.T) {
	h := NewUserHandler(&stubUserService{err: domain.ErrAuthentication})

	c, _ := newTestContext(http.MethodPost, "/users/login",
		`{"email":"alice@example.com","secretToken":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestUserHandler_UpdateRole(t *testing.T) {
	svc := &stubUserService{
		view: &ports.UserView{ID: "u1", Name: "alice", Email: "alice@example.com", Role: domain.RoleAdmin},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPatch, "/users/u1/role", `{"role":"admin"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("update role: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotID != "u1" || svc.gotRole != "admin" {
		t.Fatalf("service received id=%q role=%q", svc.gotID, svc.gotRole)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var resp deletedUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.ID != "u1" || resp.Message != "user has been deleted" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestUserHandler_GetNotFound(t *testing.T) {
	h := NewUserHandler(&stubUserService{err: domain.ErrUserNotFound})

	c, _ := newTestContext(http.MethodGet, "/users/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
