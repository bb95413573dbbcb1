package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"
)

type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"html"`
}

// Mailer sends a single transactional email. Retries are the caller's
// concern; one Send is one attempt against the email API.
type Mailer interface {
	Send(email *Email) error
}

type APIMailer struct {
	baseURL string
	apiKey  string
	sender  string
	client  *httpclient.Client
}

func NewAPIMailer(baseURL, apiKey, sender string) *APIMailer {
	return &APIMailer{
		baseURL: baseURL,
		apiKey:  apiKey,
		sender:  sender,
		client:  httpclient.NewClient(httpclient.WithHTTPTimeout(10 * time.Second)),
	}
}

func (m *APIMailer) Send(email *Email) error {
	payload, err := json.Marshal(map[string]string{
		"from":    m.sender,
		"to":      email.To,
		"subject": email.Subject,
		"html":    email.Body,
	})
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+m.apiKey)
	headers.Set("Content-Type", "application/json")

	res, err := m.client.Post(m.baseURL+"/emails", bytes.NewReader(payload), headers)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("email api status %d: %s", res.StatusCode, string(body))
	}

	return nil
}

// MockMailer records sent emails and can be primed to fail the first N sends.
type MockMailer struct {
	mu       sync.Mutex
	Sent     []Email
	FailNext int
}

func (m *MockMailer) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext > 0 {
		m.FailNext--
		return fmt.Errorf("mock mailer failure")
	}

	m.Sent = append(m.Sent, *email)
	return nil
}

func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
