package studysdk

import (
	"context"
	"net/http"
)

// Login signs in with email and password. On success the access token is
// stored in the session and the refresh cookie in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*UserResponse, error) {
	var resp TokenResponse
	err := c.doNoRetry(ctx, http.MethodPost, "/api/auth/login/",
		LoginRequest{Email: email, Password: password}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	c.session.setToken(resp.AccessToken)
	return resp.User, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var resp TokenResponse
	err := c.doNoRetry(ctx, http.MethodPost, "/api/auth/register/",
		req, &resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	c.session.setToken(resp.AccessToken)
	return resp.User, nil
}

// LoginWithGoogle exchanges a Google authorization code for a session.
func (c *Client) LoginWithGoogle(ctx context.Context, code string) (*UserResponse, error) {
	var resp TokenResponse
	err := c.doNoRetry(ctx, http.MethodPost, "/api/auth/oauth/google/",
		GoogleExchangeRequest{Code: code}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	c.session.setToken(resp.AccessToken)
	return resp.User, nil
}

// Logout signs out. The server call is best-effort; locally the session
// always ends: credential cleared, navigate callback invoked.
func (c *Client) Logout(ctx context.Context) {
	c.logoutCall(ctx)
	c.session.clear()
	if c.session.navigate != nil {
		c.session.navigate()
	}
}
