package supabase

import (
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("supabase client is not configured")

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase api error (status %d): %s", e.Status, e.Body)
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

type updateUserRequest struct {
	Email string `json:"email"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type deleteObjectsRequest struct {
	Prefixes []string `json:"prefixes"`
}
