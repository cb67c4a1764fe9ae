package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) GetAllBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.get(ctx, "/api/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) GetBookByID(ctx context.Context, id int64) (*Book, error) {
	var book Book
	if err := c.get(ctx, fmt.Sprintf("/api/books/%d", id), &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) GetBookWithAuthor(ctx context.Context, id int64) (*BookWithAuthor, error) {
	var book BookWithAuthor
	if err := c.get(ctx, fmt.Sprintf("/api/books/%d/with-author", id), &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) CreateBook(ctx context.Context, book Book) (*Book, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/books", &book)
	if err != nil {
		return nil, err
	}
	var created Book
	if err := c.do(req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateBook(ctx context.Context, id int64, book Book) (*Book, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/books/%d", id), &book)
	if err != nil {
		return nil, err
	}
	var updated Book
	if err := c.do(req, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}

// SearchBooks queries the gateway-side search endpoint. Empty criteria are
// left out of the query string entirely.
func (c *Client) SearchBooks(ctx context.Context, criteria BookSearch) ([]Book, error) {
	q := url.Values{}
	if criteria.Title != "" {
		q.Set("title", criteria.Title)
	}
	if criteria.ISBN != "" {
		q.Set("isbn", criteria.ISBN)
	}
	if criteria.Category != "" {
		q.Set("category", criteria.Category)
	}

	path := "/api/books/search"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var books []Book
	if err := c.get(ctx, path, &books); err != nil {
		return nil, err
	}
	return books, nil
}
