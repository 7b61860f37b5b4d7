package studysdk

import (
	"context"
	"net/http"
)

// Profile returns the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*UserResponse, error) {
	var resp UserResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/profile/", nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile changes the user's name. Empty fields are left as-is.
func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName string) (*UserResponse, error) {
	var resp UserResponse
	err := c.do(ctx, http.MethodPatch, "/api/auth/profile/",
		ProfileUpdateRequest{FirstName: firstName, LastName: lastName},
		&resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
