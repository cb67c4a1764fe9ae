package gateway

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) GetAllLoans(ctx context.Context) ([]Loan, error) {
	var loans []Loan
	if err := c.get(ctx, "/api/loans", &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (c *Client) GetLoanByID(ctx context.Context, id int64) (*Loan, error) {
	var loan Loan
	if err := c.get(ctx, fmt.Sprintf("/api/loans/%d", id), &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (c *Client) GetLoansByUser(ctx context.Context, userID int64) ([]Loan, error) {
	var loans []Loan
	if err := c.get(ctx, fmt.Sprintf("/api/loans/user/%d", userID), &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (c *Client) GetActiveLoansByUser(ctx context.Context, userID int64) ([]Loan, error) {
	var loans []Loan
	if err := c.get(ctx, fmt.Sprintf("/api/loans/user/%d/active", userID), &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// BorrowBook asks the gateway to open a loan. Availability is entirely the
// backend's call; a book with no free copies fails here, never client-side.
func (c *Client) BorrowBook(ctx context.Context, request BorrowRequest) (*Loan, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/loans/borrow", &request)
	if err != nil {
		return nil, err
	}
	var loan Loan
	if err := c.do(req, http.StatusCreated, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// ReturnBook transitions a loan to RETURNED. The request carries no body:
// return is a state transition, not a record replace.
func (c *Client) ReturnBook(ctx context.Context, id int64) (*Loan, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/loans/%d/return", id), nil)
	if err != nil {
		return nil, err
	}
	var loan Loan
	if err := c.do(req, http.StatusOK, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}
