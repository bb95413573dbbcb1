package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/labstack/echo/v4"
)

func TestAuthnResolvesBearerToken(t *testing.T) {
	auth, err := services.NewAuthentication("test-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := auth.CreateToken(&models.UserFromAuth{ID: "user-42", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved *models.UserFromAuth
	next := func(c echo.Context) error {
		resolved, _ = ResolveValidUser(c.Request().Context())
		return nil
	}

	if err := Authn(auth)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected user in request context")
	}
	if resolved.ID != "user-42" || resolved.Email != "user@example.com" {
		t.Fatalf("resolved wrong user: %+v", resolved)
	}
}

func TestAuthnPassesThroughWithoutHeader(t *testing.T) {
	auth, _ := services.NewAuthentication("test-secret")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		if _, err := ResolveValidUser(c.Request().Context()); err == nil {
			t.Fatal("expected no user in context")
		}
		return nil
	}

	if err := Authn(auth)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called for anonymous request")
	}
}

func TestAuthnRejectsInvalidToken(t *testing.T) {
	auth, _ := services.NewAuthentication("test-secret")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	if err := Authn(auth)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if called {
		t.Fatal("next handler should not run with an invalid token")
	}
	if rec.Code == http.StatusOK {
		t.Fatalf("expected error status, got %d", rec.Code)
	}
}
