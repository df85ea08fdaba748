package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestService() *Service {
	return NewService(map[string]string{"staff": "s3cret"}, "0123456789abcdef0123456789abcdef", time.Hour)
}

func TestLogin(t *testing.T) {
	svc := newTestService()

	token, err := svc.Login("staff", "s3cret")
	if err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify: %v", err)
	}
	if claims.Username != "staff" {
		t.Errorf("expected username staff, got %q", claims.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Login("staff", "wrong"); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, err := svc.Login("ghost", "s3cret"); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService(map[string]string{"staff": "s3cret"}, "0123456789abcdef0123456789abcdef", -time.Hour)
	token, err := svc.Login("staff", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestMiddleware(t *testing.T) {
	svc := newTestService()
	e := echo.New()

	handler := Middleware(svc)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("username").(string))
	})

	// No token
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err == nil {
		t.Error("expected error without bearer token")
	}

	// Valid token
	token, _ := svc.Login("staff", "s3cret")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("expected authenticated request to pass: %v", err)
	}
	if rec.Body.String() != "staff" {
		t.Errorf("expected username on context, got %q", rec.Body.String())
	}
}
