package webhook

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

// Notifier pushes domain events to the external workflow automation tool.
type Notifier interface {
	Notify(event string, payload map[string]any) error
}

type HTTPNotifier struct {
	url      string
	username string
	password string
	client   *httpclient.Client
}

func NewHTTPNotifier(url, username, password string) *HTTPNotifier {
	return &HTTPNotifier{
		url:      url,
		username: username,
		password: password,
		client:   httpclient.NewClient(httpclient.WithHTTPTimeout(10 * time.Second)),
	}
}

func (n *HTTPNotifier) Notify(event string, payload map[string]any) error {
	body := map[string]any{"event": event}
	for k, v := range payload {
		body[k] = v
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(n.username, n.password)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("webhook status %d: %s", res.StatusCode, string(b))
	}

	return nil
}

// MockNotifier records events for tests.
type MockNotifier struct {
	mu     sync.Mutex
	Events []MockEvent
	Err    error
}

type MockEvent struct {
	Event   string
	Payload map[string]any
}

func (n *MockNotifier) Notify(event string, payload map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Err != nil {
		return n.Err
	}

	n.Events = append(n.Events, MockEvent{Event: event, Payload: payload})
	return nil
}
