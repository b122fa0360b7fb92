package api

import (
	"context"

	"learntrack/internal/model"
)

// SignupRequest is the payload for account registration.
type SignupRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// loginRequest carries credentials for the token exchange.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the bearer token issued on login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup registers a new account. Validation failures (duplicate email
// or username) surface as *Error with the server's detail message.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	var user model.User
	if err := c.post(ctx, "/api/auth/signup", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. The token is returned
// but not attached to the client; callers decide when to SetToken.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	err := c.post(ctx, "/api/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me resolves the profile of the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
