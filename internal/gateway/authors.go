package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) GetAllAuthors(ctx context.Context) ([]Author, error) {
	var authors []Author
	if err := c.get(ctx, "/api/authors", &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (c *Client) GetAuthorByID(ctx context.Context, id int64) (*Author, error) {
	var author Author
	if err := c.get(ctx, fmt.Sprintf("/api/authors/%d", id), &author); err != nil {
		return nil, err
	}
	return &author, nil
}

func (c *Client) CreateAuthor(ctx context.Context, author Author) (*Author, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/authors", &author)
	if err != nil {
		return nil, err
	}
	var created Author
	if err := c.do(req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateAuthor(ctx context.Context, id int64, author Author) (*Author, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/authors/%d", id), &author)
	if err != nil {
		return nil, err
	}
	var updated Author
	if err := c.do(req, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAuthor(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/authors/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}

func (c *Client) SearchAuthors(ctx context.Context, name string) ([]Author, error) {
	path := "/api/authors/search?name=" + url.QueryEscape(name)
	var authors []Author
	if err := c.get(ctx, path, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}
