package gateway

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.get(ctx, fmt.Sprintf("/api/users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, user User) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/users", &user)
	if err != nil {
		return nil, err
	}
	var created User
	if err := c.do(req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, user User) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), &user)
	if err != nil {
		return nil, err
	}
	var updated User
	if err := c.do(req, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}
