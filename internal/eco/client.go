package eco

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrSessionExpired is returned when the API rejects the bearer token.
// Callers should drop the session and send the user back to login.
var ErrSessionExpired = errors.New("session expired")

// APIError is a structured error response from the EcoBazaar API.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Detail  string `json:"message"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Detail
	}
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("API error (status %d): %s", e.Status, msg)
}

// Client is an EcoBazaar REST API client.
// It holds the bearer token for the current session.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	token   string
	session *Session
}

// ClientOption is a functional option for configuring the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets an initial bearer token (used when restoring a session).
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new EcoBazaar API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentSession returns the logged-in session, or nil when anonymous.
func (c *Client) CurrentSession() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession installs a session and its bearer token.
func (c *Client) SetSession(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
	if s != nil {
		c.token = s.Token
	} else {
		c.token = ""
	}
}

// ClearSession drops the token and identity. Called on logout and when the
// server reports the token as expired.
func (c *Client) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.token = ""
}

// doRequest performs an HTTP request against the API, attaching the bearer
// token when present. A 401 on an authenticated request clears the session
// and yields ErrSessionExpired; a 401 without a token (login, register) is
// an ordinary APIError carrying the server's message.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.ClearSession()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) == nil && (apiErr.Message != "" || apiErr.Detail != "") {
			return apiErr
		}
		return &APIError{Status: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
