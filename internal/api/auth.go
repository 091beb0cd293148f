package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User User `json:"user"`
}

// Login checks credentials and returns the account. Bad credentials match
// ErrUnauthorized and a locked account matches ErrForbidden.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var res loginResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "api/users/login/", nil, req, &res); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if res.User.ID == 0 {
		return nil, errors.New("login: response has no user")
	}
	return &res.User, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password_hash"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	var user User
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "api/user/add/", nil, req, &user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

type changePasswordRequest struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
}

// ChangePassword replaces the account password after checking the current
// one.
func (c *Client) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	req := changePasswordRequest{Current: current, New: next}
	path := fmt.Sprintf("api/change-password/%d/", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
