package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Auth wraps the GoTrue admin endpoints used to manage agent accounts.
type Auth struct {
	client *Client
}

func NewAuth(client *Client) *Auth {
	return &Auth{client: client}
}

func (a *Auth) CreateAccount(ctx context.Context, email, password string) (string, error) {
	req, err := a.client.newJSONRequest(ctx, http.MethodPost, "/auth/v1/admin/users", createUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	})
	if err != nil {
		return "", err
	}

	var user userResponse
	if err := a.client.do(req, &user); err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	if user.ID == "" {
		return "", errors.New("create account: response carried no user id")
	}
	return user.ID, nil
}

func (a *Auth) DeleteAccount(ctx context.Context, userID string) error {
	req, err := a.client.newJSONRequest(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return err
	}
	if err := a.client.do(req, nil); err != nil {
		return fmt.Errorf("delete account %s: %w", userID, err)
	}
	return nil
}

func (a *Auth) UpdateAccountEmail(ctx context.Context, userID, email string) error {
	req, err := a.client.newJSONRequest(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(userID), updateUserRequest{Email: email})
	if err != nil {
		return err
	}
	if err := a.client.do(req, nil); err != nil {
		return fmt.Errorf("update account email %s: %w", userID, err)
	}
	return nil
}
