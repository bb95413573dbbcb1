package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"prizewheel/internal/models"
	"prizewheel/internal/pkg/mailer"
	"prizewheel/internal/pkg/retry"
)

func noSleepPolicy(maxAttempts int) retry.Policy {
	return retry.Policy{MaxAttempts: maxAttempts, Delay: time.Second, Sleep: func(time.Duration) {}}
}

func TestSendWithRetryRecoversFromFailures(t *testing.T) {
	mock := &mailer.MockMailer{FailNext: 2}
	email := &mailer.Email{To: "user@example.com", Subject: "hi"}

	attempts, err := SendWithRetry(context.Background(), mock, noSleepPolicy(3), email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
	if mock.SentCount() != 1 {
		t.Fatalf("sent %d emails, want 1", mock.SentCount())
	}
}

func TestSendWithRetryGivesUp(t *testing.T) {
	mock := &mailer.MockMailer{FailNext: 10}

	attempts, err := SendWithRetry(context.Background(), mock, noSleepPolicy(3), &mailer.Email{})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
	if mock.SentCount() != 0 {
		t.Fatalf("sent %d emails, want 0", mock.SentCount())
	}
}

func TestComposePrizeEmail(t *testing.T) {
	prize := &models.Prize{Name: "Gift Card", Emoji: "🎁"}
	email := ComposePrizeEmail(prize, models.TierGold, "CODE-1234")

	if !strings.Contains(email.Subject, "Gift Card") {
		t.Fatalf("subject missing prize name: %q", email.Subject)
	}
	if !strings.Contains(email.Body, "CODE-1234") {
		t.Fatalf("body missing payload: %q", email.Body)
	}
	if !strings.Contains(email.Body, "gold") {
		t.Fatalf("body missing tier: %q", email.Body)
	}
}

func TestComposeInterimEmail(t *testing.T) {
	prize := &models.Prize{Name: "Signed Poster", Emoji: "🖼️"}
	email := ComposeInterimEmail(prize)

	if !strings.Contains(email.Body, "Signed Poster") {
		t.Fatalf("body missing prize name: %q", email.Body)
	}
	if strings.Contains(email.Subject, "won") {
		t.Fatalf("interim subject should not announce delivery: %q", email.Subject)
	}
}

func TestComposeFulfillmentEmail(t *testing.T) {
	prize := &models.Prize{Name: "Signed Poster", Emoji: "🖼️"}
	email := ComposeFulfillmentEmail(prize, "https://claims.example.com/abc")

	if !strings.Contains(email.Body, "https://claims.example.com/abc") {
		t.Fatalf("body missing claim link: %q", email.Body)
	}
	if !strings.Contains(email.Subject, "Signed Poster") {
		t.Fatalf("subject missing prize name: %q", email.Subject)
	}
}
