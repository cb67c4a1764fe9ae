package gateway

import (
	"context"
	"net/http"
)

// Login authenticates against the gateway and returns the issued identity.
// A 401 or 403 maps to ErrInvalidCredentials; anything else that goes wrong
// is a plain RequestError.
func (c *Client) Login(ctx context.Context, username, password string) (*Identity, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", &LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: "POST /api/auth/login", Message: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidCredentials
	default:
		return nil, &RequestError{Op: "POST /api/auth/login", Status: resp.StatusCode, Message: resp.Status}
	}

	var identity Identity
	if err := decodeJSON(resp.Body, &identity); err != nil {
		return nil, &RequestError{Op: "POST /api/auth/login", Status: resp.StatusCode, Message: err.Error()}
	}
	return &identity, nil
}
