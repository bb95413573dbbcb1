package payment

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
)

// CheckoutSession is the slice of the gateway's session object this service
// cares about.
type CheckoutSession struct {
	ID          string `json:"id"`
	Paid        bool   `json:"paid"`
	AmountCents int64  `json:"amount_cents"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	// Tier is set when the session bought a prepaid spin token instead of a
	// wallet top-up (legacy flow).
	Tier string `json:"tier,omitempty"`
}

// Client looks up checkout sessions at the payment gateway.
type Client interface {
	GetCheckoutSession(sessionID string) (*CheckoutSession, error)
}

type APIClient struct {
	baseURL   string
	secretKey string
	client    *httpclient.Client
}

func NewAPIClient(baseURL, secretKey string) *APIClient {
	backoff := heimdall.NewConstantBackoff(500*time.Millisecond, 100*time.Millisecond)
	return &APIClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		client: httpclient.NewClient(
			httpclient.WithHTTPTimeout(10*time.Second),
			httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
			httpclient.WithRetryCount(2),
		),
	}
}

func (c *APIClient) GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.secretKey)

	res, err := c.client.Get(fmt.Sprintf("%s/v1/checkout/sessions/%s", c.baseURL, sessionID), headers)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("payment api status %d: %s", res.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

// MockClient serves canned sessions keyed by id.
type MockClient struct {
	Sessions map[string]*CheckoutSession
}

func (c *MockClient) GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	session, ok := c.Sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	return session, nil
}
