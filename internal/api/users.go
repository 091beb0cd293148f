package api

import (
	"context"
	"fmt"
	"net/http"
)

// UserUpdate holds the fields to change on an account. Nil fields are
// not sent.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Premium  *bool   `json:"isPremium,omitempty"`
}

// Users lists all accounts.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "api/users/", nil, nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes an account and returns the stored result.
func (c *Client) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("api/users/%d/", id), nil, upd, &user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &user, nil
}

// UpgradeToPremium grants the account access to premium songs.
func (c *Client) UpgradeToPremium(ctx context.Context, u *User) (*User, error) {
	premium := true
	return c.UpdateUser(ctx, u.ID, UserUpdate{
		Username: &u.Username,
		Email:    &u.Email,
		Premium:  &premium,
	})
}

// ToggleUserStatus locks or unlocks an account. The returned user carries
// the new status.
func (c *Client) ToggleUserStatus(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("api/users/%d/toggle-status/", id), nil, nil, &user); err != nil {
		return nil, fmt.Errorf("toggle user %d: %w", id, err)
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("api/delete-user/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
