package eco

import (
	"context"
	"fmt"
	"net/http"
)

// GetProfile fetches the profile for a user.
func (c *Client) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	endpoint := fmt.Sprintf("/api/profile/user/%d", userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &profile); err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile saves profile details and notification preferences.
func (c *Client) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	endpoint := fmt.Sprintf("/api/profile/user/%d", userID)
	if err := c.doRequest(ctx, http.MethodPut, endpoint, nil, update, &profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return &profile, nil
}

// UpdatePassword changes the account password. The server verifies the
// current password before accepting the new one.
func (c *Client) UpdatePassword(ctx context.Context, userID int64, update PasswordUpdate) error {
	endpoint := fmt.Sprintf("/api/profile/user/%d/password", userID)
	if err := c.doRequest(ctx, http.MethodPut, endpoint, nil, update, nil); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}
