package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"librarium/internal/gateway"
	"librarium/internal/notify"
)

type LoansAPI interface {
	GetAllLoans(ctx context.Context) ([]gateway.Loan, error)
	GetLoansByUser(ctx context.Context, userID int64) ([]gateway.Loan, error)
	GetActiveLoansByUser(ctx context.Context, userID int64) ([]gateway.Loan, error)
	BorrowBook(ctx context.Context, request gateway.BorrowRequest) (*gateway.Loan, error)
	ReturnBook(ctx context.Context, id int64) (*gateway.Loan, error)
	GetAllBooks(ctx context.Context) ([]gateway.Book, error)
	GetAllUsers(ctx context.Context) ([]gateway.User, error)
}

// LoansController drives the loans page. Loans are never created or updated
// through the generic save path; borrowing and returning have their own
// endpoints, and returning sits behind the same confirmation gate as a
// delete would.
type LoansController struct {
	*ListController[gateway.Loan]
	api  LoansAPI
	sink notify.Sink
}

func NewLoansController(api LoansAPI, sink notify.Sink) *LoansController {
	ops := Ops[gateway.Loan]{
		List: api.GetAllLoans,
		ID:   func(l gateway.Loan) int64 { return l.ID },
		// Loans have no text fields; the filter matches against the
		// decimal loan, book and user ids.
		Match: func(l gateway.Loan, needle string) bool {
			return strings.Contains(strconv.FormatInt(l.ID, 10), needle) ||
				strings.Contains(strconv.FormatInt(l.BookID, 10), needle) ||
				strings.Contains(strconv.FormatInt(l.UserID, 10), needle)
		},
		Label: func(l gateway.Loan) string {
			return fmt.Sprintf("loan #%d (book %d, user %d)", l.ID, l.BookID, l.UserID)
		},
	}

	return &LoansController{
		ListController: NewListController(Names{Singular: "loan", Plural: "loans"}, ops, sink),
		api:            api,
		sink:           sink,
	}
}

// Borrow opens a loan. The backend alone decides availability; the console
// never pre-checks copies, it just surfaces the failure.
func (lc *LoansController) Borrow(ctx context.Context, userID, bookID int64) error {
	lc.mu.Lock()
	if lc.closed {
		lc.mu.Unlock()
		return ErrClosed
	}
	if lc.saving {
		lc.mu.Unlock()
		return ErrSaveInFlight
	}
	lc.saving = true
	lc.mu.Unlock()
	defer func() {
		lc.mu.Lock()
		lc.saving = false
		lc.mu.Unlock()
	}()

	_, err := lc.api.BorrowBook(ctx, gateway.BorrowRequest{UserID: userID, BookID: bookID})
	if err != nil {
		lc.sink.Error("Failed to borrow book. Is it available?")
		return err
	}
	lc.sink.Success("Book borrowed successfully!")
	return lc.Refresh(ctx)
}

// RequestReturn records the loan awaiting return confirmation. No network
// call happens until ConfirmReturn.
func (lc *LoansController) RequestReturn(loan gateway.Loan) {
	lc.RequestDelete(loan)
}

func (lc *LoansController) PendingReturn() (PendingConfirmation, bool) {
	return lc.PendingDelete()
}

func (lc *LoansController) CancelReturn() {
	lc.CancelDelete()
}

// ConfirmReturn fires the return recorded by RequestReturn, then refreshes.
func (lc *LoansController) ConfirmReturn(ctx context.Context) error {
	lc.mu.Lock()
	pending, err := lc.confirm.Confirm()
	lc.mu.Unlock()
	if err != nil {
		return err
	}

	if _, err := lc.api.ReturnBook(ctx, pending.ID); err != nil {
		lc.sink.Error("Failed to return book")
		return err
	}
	lc.sink.Success("Book returned successfully!")
	return lc.Refresh(ctx)
}

// ForUser lists one user's loans, optionally only the active ones. A direct
// query; the page collection is untouched.
func (lc *LoansController) ForUser(ctx context.Context, userID int64, activeOnly bool) ([]gateway.Loan, error) {
	if activeOnly {
		return lc.api.GetActiveLoansByUser(ctx, userID)
	}
	return lc.api.GetLoansByUser(ctx, userID)
}

// BorrowChoices loads the selectable books and users for a new loan in
// parallel. Only books with free copies are offered; if either load fails
// the whole thing fails.
func (lc *LoansController) BorrowChoices(ctx context.Context) ([]gateway.Book, []gateway.User, error) {
	var (
		wg       sync.WaitGroup
		books    []gateway.Book
		users    []gateway.User
		booksErr error
		usersErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		books, booksErr = lc.api.GetAllBooks(ctx)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = lc.api.GetAllUsers(ctx)
	}()
	wg.Wait()

	if booksErr != nil {
		return nil, nil, booksErr
	}
	if usersErr != nil {
		return nil, nil, usersErr
	}

	available := books[:0]
	for _, book := range books {
		if book.AvailableCopies > 0 {
			available = append(available, book)
		}
	}
	return available, users, nil
}
