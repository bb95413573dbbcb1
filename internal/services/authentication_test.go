package services

import (
	"testing"

	"prizewheel/internal/models"
)

func TestAuthenticationRoundTrip(t *testing.T) {
	auth, err := NewAuthentication("test-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := &models.UserFromAuth{ID: "user-42", Email: "user@example.com"}
	token, err := auth.CreateToken(user)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	got, err := auth.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ID != user.ID || got.Email != user.Email {
		t.Fatalf("got %+v, want %+v", got, user)
	}
}

func TestAuthenticationRejectsWrongSecret(t *testing.T) {
	auth, _ := NewAuthentication("secret-a")
	other, _ := NewAuthentication("secret-b")

	token, err := auth.CreateToken(&models.UserFromAuth{ID: "user-42"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestAuthenticationRejectsGarbage(t *testing.T) {
	auth, _ := NewAuthentication("test-secret")
	if _, err := auth.Validate("not-a-token"); err == nil {
		t.Fatal("expected validation to fail")
	}
}
