package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/repository"
	"github.com/NitishV2006/OneOrbit/internal/services"
)

type stubIdentityService struct {
	loginResult  *models.Account
	loginErr     error
	signupResult *models.Account
	signupErr    error
	resolveMap   map[string]*models.Account
	lastUsername string
	lastPassword string
}

func (s *stubIdentityService) Login(_ context.Context, username, password string) (*models.Account, error) {
	s.lastUsername = username
	s.lastPassword = password
	return s.loginResult, s.loginErr
}

func (s *stubIdentityService) Signup(_ context.Context, candidate models.NewAccount) (*models.Account, error) {
	s.lastUsername = candidate.Username
	return s.signupResult, s.signupErr
}

func (s *stubIdentityService) Resolve(_ context.Context, userID string) (*models.Account, error) {
	account, ok := s.resolveMap[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return account, nil
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return parsed
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	service := &stubIdentityService{
		loginResult: &models.Account{ID: "u1", Username: "sam", AvatarURL: "https://example.com/a.png"},
	}
	handler := NewAuthHandler(service, "test-secret")

	app := fiber.New()
	app.Post("/api/auth/login", handler.Login)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "sam",
		"password": "hunter2",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["token"] == nil || body["token"] == "" {
		t.Fatal("expected a token in the response")
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["username"] != "sam" {
		t.Fatalf("expected user payload, got %v", body["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must not appear in the response")
	}
	if service.lastUsername != "sam" || service.lastPassword != "hunter2" {
		t.Fatalf("credentials not passed through: %q/%q", service.lastUsername, service.lastPassword)
	}
}

func TestLoginFailureReturns401(t *testing.T) {
	service := &stubIdentityService{loginErr: services.ErrInvalidCredentials}
	handler := NewAuthHandler(service, "test-secret")

	app := fiber.New()
	app.Post("/api/auth/login", handler.Login)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "sam",
		"password": "wrong",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Invalid username or password" {
		t.Fatalf("expected opaque error message, got %v", body["error"])
	}
}

func TestSignupConflictReturns409(t *testing.T) {
	service := &stubIdentityService{signupErr: services.ErrUsernameTaken}
	handler := NewAuthHandler(service, "test-secret")

	app := fiber.New()
	app.Post("/api/auth/signup", handler.Signup)

	req := jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "sam",
		"password": "hunter2",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestMeWithStaleIdentityReturns404(t *testing.T) {
	service := &stubIdentityService{resolveMap: map[string]*models.Account{}}
	handler := NewAuthHandler(service, "test-secret")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "deleted-user")
		return c.Next()
	})
	app.Get("/api/auth/me", handler.Me)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for stale identity, got %d", resp.StatusCode)
	}
}
