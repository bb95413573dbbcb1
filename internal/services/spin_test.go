package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInsufficientBalanceError(t *testing.T) {
	err := &InsufficientBalanceError{RequiredCents: 3000, BalanceCents: 1250}

	if !strings.Contains(err.Error(), "30.00") || !strings.Contains(err.Error(), "12.50") {
		t.Fatalf("error message missing amounts: %q", err.Error())
	}

	// handlers unwrap this from the service error chain
	wrapped := fmt.Errorf("spin: %w", err)
	var target *InsufficientBalanceError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed to match wrapped error")
	}
	if target.RequiredCents != 3000 {
		t.Fatalf("got required %d, want 3000", target.RequiredCents)
	}
}
