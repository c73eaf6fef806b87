package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cinebook-cli/model"
)

// Login exchanges credentials for the user record the session keeps.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	if creds.Email == "" || creds.Password == "" {
		return model.User{}, errors.New("email and password are required")
	}
	endpoint := fmt.Sprintf("%s/users/login", c.baseURL)

	var user model.User
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, nil, creds, &user); err != nil {
		return model.User{}, err
	}
	if user.Id == "" {
		return model.User{}, errors.New("login response missing user id")
	}
	return user, nil
}

// Register creates an account and returns the new user record.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return model.User{}, errors.New("name, email and password are required")
	}
	endpoint := fmt.Sprintf("%s/users/register", c.baseURL)

	var user model.User
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, nil, reg, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Profile reads a user's profile.
func (c *Client) Profile(ctx context.Context, userID string) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, errors.New("user id is required")
	}
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))

	var user model.User
	if err := c.getJSON(ctx, endpoint, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateProfile saves name/email changes and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, errors.New("user id is required")
	}
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))

	var user model.User
	if err := c.sendJSON(ctx, http.MethodPut, endpoint, nil, update, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
