package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/gateway"
	"librarium/internal/notify"
)

type fakeBooksAPI struct {
	mu      sync.Mutex
	books   []gateway.Book
	authors []gateway.Author

	bookListCalls   int
	authorListCalls int
	createCalls     int
	updateCalls     int
	deleteCalls     int

	authorsErr error

	createStarted  chan struct{}
	createRelease  chan struct{}
	authorsStarted chan struct{}
	authorsRelease chan struct{}
}

func (f *fakeBooksAPI) GetAllBooks(ctx context.Context) ([]gateway.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookListCalls++
	return append([]gateway.Book(nil), f.books...), nil
}

func (f *fakeBooksAPI) GetAllAuthors(ctx context.Context) ([]gateway.Author, error) {
	if f.authorsStarted != nil {
		close(f.authorsStarted)
		<-f.authorsRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authorListCalls++
	if f.authorsErr != nil {
		return nil, f.authorsErr
	}
	return append([]gateway.Author(nil), f.authors...), nil
}

func (f *fakeBooksAPI) CreateBook(ctx context.Context, book gateway.Book) (*gateway.Book, error) {
	if f.createStarted != nil {
		close(f.createStarted)
		<-f.createRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	book.ID = int64(len(f.books) + 1)
	f.books = append(f.books, book)
	return &book, nil
}

func (f *fakeBooksAPI) UpdateBook(ctx context.Context, id int64, book gateway.Book) (*gateway.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	return &book, nil
}

func (f *fakeBooksAPI) DeleteBook(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func (f *fakeBooksAPI) SearchBooks(ctx context.Context, criteria gateway.BookSearch) ([]gateway.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gateway.Book
	for _, book := range f.books {
		if criteria.Title != "" && book.Title == criteria.Title {
			out = append(out, book)
		}
	}
	return out, nil
}

func TestBooksRefreshLoadsAuthorsToo(t *testing.T) {
	authorID := int64(9)
	api := &fakeBooksAPI{
		books:   []gateway.Book{{ID: 1, Title: "Dune", ISBN: "978", AuthorID: &authorID}},
		authors: []gateway.Author{{ID: 9, FirstName: "Frank", LastName: "Herbert"}},
	}
	bc := NewBooksController(api, notify.NewMemSink())

	require.NoError(t, bc.Refresh(context.Background()))
	assert.Equal(t, 1, api.bookListCalls)
	assert.Equal(t, 1, api.authorListCalls)

	assert.Len(t, bc.Collection(), 1)
	assert.Len(t, bc.Authors(), 1)
	assert.Equal(t, "Frank Herbert", bc.AuthorName(&authorID))
	assert.Empty(t, bc.AuthorName(nil))
}

func TestBooksRefreshFailsWhenAuthorsFail(t *testing.T) {
	api := &fakeBooksAPI{
		books:      []gateway.Book{{ID: 1, Title: "Dune"}},
		authorsErr: errors.New("author service down"),
	}
	sink := notify.NewMemSink()
	bc := NewBooksController(api, sink)

	require.Error(t, bc.Refresh(context.Background()))
	assert.Empty(t, bc.Collection())
	assert.Equal(t, []string{"Failed to load books"}, sink.Errors)
}

func TestBooksFilterMatchesTitleOrISBN(t *testing.T) {
	api := &fakeBooksAPI{books: []gateway.Book{
		{ID: 1, Title: "Dune", ISBN: "978-0441013593"},
		{ID: 2, Title: "Solaris", ISBN: "978-0156027601"},
	}}
	bc := NewBooksController(api, notify.NewMemSink())
	require.NoError(t, bc.Refresh(context.Background()))

	bc.SetFilter("dune")
	require.Len(t, bc.Visible(), 1)

	bc.SetFilter("0156027601")
	visible := bc.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Solaris", visible[0].Title)
}

func TestLateAuthorFetchIsDiscardedAfterClose(t *testing.T) {
	api := &fakeBooksAPI{
		authors:        []gateway.Author{{ID: 9, FirstName: "Frank", LastName: "Herbert"}},
		authorsStarted: make(chan struct{}),
		authorsRelease: make(chan struct{}),
	}
	bc := NewBooksController(api, notify.NewMemSink())

	done := make(chan error)
	go func() { done <- bc.Refresh(context.Background()) }()

	<-api.authorsStarted
	bc.Close()
	close(api.authorsRelease)

	require.NoError(t, <-done)
	assert.Empty(t, bc.Authors(), "late author result must be discarded after close")
	assert.False(t, bc.Loading())
}

func TestDuplicateSaveIsRejectedWhileInFlight(t *testing.T) {
	api := &fakeBooksAPI{
		createStarted: make(chan struct{}),
		createRelease: make(chan struct{}),
	}
	bc := NewBooksController(api, notify.NewMemSink())

	done := make(chan error)
	go func() { done <- bc.Save(context.Background(), gateway.Book{Title: "Dune", ISBN: "978"}) }()

	<-api.createStarted
	assert.True(t, bc.Saving())
	assert.ErrorIs(t, bc.Save(context.Background(), gateway.Book{Title: "Other", ISBN: "979"}), ErrSaveInFlight)

	close(api.createRelease)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.createCalls, "the duplicate submit never reached the gateway")
	assert.False(t, bc.Saving())
}
