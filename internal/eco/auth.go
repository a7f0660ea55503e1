package eco

import (
	"context"
	"fmt"
	"net/http"
)

// Login authenticates with email, password, and role. On success the
// returned session is installed on the client so later requests carry the
// bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	var session Session
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", nil, creds, &session); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("logging in: no token in response")
	}
	c.SetSession(&session)
	return &session, nil
}

// Register creates a new account. It does not log the user in; the API
// expects a follow-up login.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", nil, reg, nil); err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	return nil
}

// Logout drops the local session. The API is stateless, so no request is made.
func (c *Client) Logout() {
	c.ClearSession()
}
