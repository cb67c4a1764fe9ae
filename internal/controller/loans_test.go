package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/gateway"
	"librarium/internal/notify"
)

type fakeLoansAPI struct {
	loans []gateway.Loan
	books []gateway.Book
	users []gateway.User

	listCalls   int
	borrowCalls int
	returnCalls int

	borrowErr error
	returnErr error
	booksErr  error
	usersErr  error
}

func (f *fakeLoansAPI) GetAllLoans(ctx context.Context) ([]gateway.Loan, error) {
	f.listCalls++
	return append([]gateway.Loan(nil), f.loans...), nil
}

func (f *fakeLoansAPI) GetLoansByUser(ctx context.Context, userID int64) ([]gateway.Loan, error) {
	var out []gateway.Loan
	for _, loan := range f.loans {
		if loan.UserID == userID {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (f *fakeLoansAPI) GetActiveLoansByUser(ctx context.Context, userID int64) ([]gateway.Loan, error) {
	var out []gateway.Loan
	for _, loan := range f.loans {
		if loan.UserID == userID && loan.Status == gateway.LoanActive {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (f *fakeLoansAPI) BorrowBook(ctx context.Context, request gateway.BorrowRequest) (*gateway.Loan, error) {
	f.borrowCalls++
	if f.borrowErr != nil {
		return nil, f.borrowErr
	}
	loan := gateway.Loan{ID: int64(len(f.loans) + 1), UserID: request.UserID, BookID: request.BookID, Status: gateway.LoanActive}
	f.loans = append(f.loans, loan)
	return &loan, nil
}

func (f *fakeLoansAPI) ReturnBook(ctx context.Context, id int64) (*gateway.Loan, error) {
	f.returnCalls++
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	for i := range f.loans {
		if f.loans[i].ID == id {
			f.loans[i].Status = gateway.LoanReturned
			return &f.loans[i], nil
		}
	}
	return nil, &gateway.RequestError{Op: "PUT /api/loans/return", Status: 404, Message: "not found"}
}

func (f *fakeLoansAPI) GetAllBooks(ctx context.Context) ([]gateway.Book, error) {
	if f.booksErr != nil {
		return nil, f.booksErr
	}
	return append([]gateway.Book(nil), f.books...), nil
}

func (f *fakeLoansAPI) GetAllUsers(ctx context.Context) ([]gateway.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return append([]gateway.User(nil), f.users...), nil
}

func TestLoansFilterMatchesIDs(t *testing.T) {
	api := &fakeLoansAPI{loans: []gateway.Loan{
		{ID: 12, UserID: 3, BookID: 40},
		{ID: 7, UserID: 21, BookID: 5},
	}}
	lc := NewLoansController(api, notify.NewMemSink())
	require.NoError(t, lc.Refresh(context.Background()))

	lc.SetFilter("21")
	visible := lc.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(7), visible[0].ID)

	lc.SetFilter("12")
	visible = lc.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(12), visible[0].ID)
}

func TestBorrowSuccessRefreshes(t *testing.T) {
	api := &fakeLoansAPI{}
	sink := notify.NewMemSink()
	lc := NewLoansController(api, sink)

	require.NoError(t, lc.Borrow(context.Background(), 3, 40))
	assert.Equal(t, 1, api.borrowCalls)
	assert.Equal(t, 1, api.listCalls)
	assert.Equal(t, []string{"Book borrowed successfully!"}, sink.Successes)
}

func TestBorrowUnavailableLeavesLoansUnchanged(t *testing.T) {
	api := &fakeLoansAPI{loans: []gateway.Loan{{ID: 1, UserID: 3, BookID: 40, Status: gateway.LoanActive}}}
	sink := notify.NewMemSink()
	lc := NewLoansController(api, sink)
	require.NoError(t, lc.Refresh(context.Background()))

	// backend says no: zero available copies
	api.borrowErr = &gateway.RequestError{Op: "POST /api/loans/borrow", Status: 409, Message: "no copies available"}
	err := lc.Borrow(context.Background(), 3, 41)
	require.Error(t, err)
	assert.True(t, gateway.IsRequestFailed(err))

	assert.Len(t, lc.Collection(), 1, "collection untouched after a failed borrow")
	assert.Equal(t, []string{"Failed to borrow book. Is it available?"}, sink.Errors)
	assert.False(t, lc.Saving())
}

func TestReturnRequiresConfirmation(t *testing.T) {
	api := &fakeLoansAPI{loans: []gateway.Loan{{ID: 4, UserID: 3, BookID: 40, Status: gateway.LoanActive}}}
	sink := notify.NewMemSink()
	lc := NewLoansController(api, sink)
	require.NoError(t, lc.Refresh(context.Background()))

	lc.RequestReturn(api.loans[0])
	assert.Zero(t, api.returnCalls, "requesting a return must not call the gateway")

	lc.CancelReturn()
	assert.Zero(t, api.returnCalls, "cancelled return never fires")

	lc.RequestReturn(api.loans[0])
	require.NoError(t, lc.ConfirmReturn(context.Background()))
	assert.Equal(t, 1, api.returnCalls)
	assert.Equal(t, []string{"Book returned successfully!"}, sink.Successes)

	assert.ErrorIs(t, lc.ConfirmReturn(context.Background()), ErrNoPendingConfirmation)
	assert.Equal(t, 1, api.returnCalls)
}

func TestReturnFailureNotifies(t *testing.T) {
	api := &fakeLoansAPI{
		loans:     []gateway.Loan{{ID: 4, Status: gateway.LoanActive}},
		returnErr: &gateway.RequestError{Op: "PUT /api/loans/4/return", Status: 500, Message: "boom"},
	}
	sink := notify.NewMemSink()
	lc := NewLoansController(api, sink)

	lc.RequestReturn(api.loans[0])
	require.Error(t, lc.ConfirmReturn(context.Background()))
	assert.Equal(t, []string{"Failed to return book"}, sink.Errors)
	assert.Zero(t, api.listCalls, "no refresh after a failed return")
}

func TestBorrowChoicesOnlyOffersAvailableBooks(t *testing.T) {
	api := &fakeLoansAPI{
		books: []gateway.Book{
			{ID: 1, Title: "Dune", AvailableCopies: 2, TotalCopies: 3},
			{ID: 2, Title: "Solaris", AvailableCopies: 0, TotalCopies: 1},
		},
		users: []gateway.User{{ID: 3, FullName: "Ada Lovelace"}},
	}
	lc := NewLoansController(api, notify.NewMemSink())

	books, users, err := lc.BorrowChoices(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Len(t, users, 1)
}

func TestBorrowChoicesFailsAsAWhole(t *testing.T) {
	api := &fakeLoansAPI{
		books:    []gateway.Book{{ID: 1, AvailableCopies: 1}},
		usersErr: errors.New("users service down"),
	}
	lc := NewLoansController(api, notify.NewMemSink())

	_, _, err := lc.BorrowChoices(context.Background())
	assert.Error(t, err)
}

func TestForUserQueries(t *testing.T) {
	api := &fakeLoansAPI{loans: []gateway.Loan{
		{ID: 1, UserID: 3, Status: gateway.LoanActive},
		{ID: 2, UserID: 3, Status: gateway.LoanReturned},
		{ID: 3, UserID: 4, Status: gateway.LoanActive},
	}}
	lc := NewLoansController(api, notify.NewMemSink())

	all, err := lc.ForUser(context.Background(), 3, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := lc.ForUser(context.Background(), 3, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)
}
