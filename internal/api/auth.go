package api

import (
	"context"

	"github.com/pakaura/paktui/internal/model"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with the backend, which sets the session cookie on
// success. A 401 here means bad credentials and never triggers the global
// expiry signal.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	var user model.User
	err := c.post(ctx, "/api/v1/auth/login", credentials{Email: email, Password: password}, &user)
	return user, err
}

// Register creates an account and signs it in. Duplicate emails surface as a
// CONFLICT error.
func (c *Client) Register(ctx context.Context, email, password string) (model.User, error) {
	var user model.User
	err := c.post(ctx, "/api/v1/auth/register", credentials{Email: email, Password: password}, &user)
	return user, err
}

// Me returns the currently authenticated user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.get(ctx, "/api/v1/auth/me", &user)
	return user, err
}

// Logout invalidates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/v1/auth/logout", nil, nil)
}
