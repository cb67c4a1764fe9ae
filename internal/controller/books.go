package controller

import (
	"context"
	"strings"
	"sync"

	"librarium/internal/gateway"
	"librarium/internal/notify"
)

// BooksAPI is the slice of the gateway the books page needs.
type BooksAPI interface {
	GetAllBooks(ctx context.Context) ([]gateway.Book, error)
	CreateBook(ctx context.Context, book gateway.Book) (*gateway.Book, error)
	UpdateBook(ctx context.Context, id int64, book gateway.Book) (*gateway.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	SearchBooks(ctx context.Context, criteria gateway.BookSearch) ([]gateway.Book, error)
	GetAllAuthors(ctx context.Context) ([]gateway.Author, error)
}

// BooksController drives the books page. Refresh loads books and authors
// together; the authors populate the author selector and name lookups.
type BooksController struct {
	*ListController[gateway.Book]
	api BooksAPI

	mu      sync.Mutex
	authors []gateway.Author
}

func NewBooksController(api BooksAPI, sink notify.Sink) *BooksController {
	bc := &BooksController{api: api}

	ops := Ops[gateway.Book]{
		List: api.GetAllBooks,
		Create: func(ctx context.Context, draft gateway.Book) (gateway.Book, error) {
			created, err := api.CreateBook(ctx, draft)
			if err != nil {
				return gateway.Book{}, err
			}
			return *created, nil
		},
		Update: func(ctx context.Context, id int64, draft gateway.Book) (gateway.Book, error) {
			updated, err := api.UpdateBook(ctx, id, draft)
			if err != nil {
				return gateway.Book{}, err
			}
			return *updated, nil
		},
		Delete: api.DeleteBook,
		ID:     func(b gateway.Book) int64 { return b.ID },
		Match: func(b gateway.Book, needle string) bool {
			return strings.Contains(strings.ToLower(b.Title), needle) ||
				strings.Contains(strings.ToLower(b.ISBN), needle)
		},
		Label: func(b gateway.Book) string { return b.Title },
	}

	bc.ListController = NewListController(Names{Singular: "book", Plural: "books"}, ops, sink)
	bc.ListController.aux = bc.loadAuthors
	return bc
}

func (bc *BooksController) loadAuthors(ctx context.Context, epoch uint64) error {
	authors, err := bc.api.GetAllAuthors(ctx)
	if err != nil {
		return err
	}
	if !bc.epochCurrent(epoch) {
		return nil
	}
	bc.mu.Lock()
	bc.authors = authors
	bc.mu.Unlock()
	return nil
}

// Authors returns the author list loaded alongside the books.
func (bc *BooksController) Authors() []gateway.Author {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return append([]gateway.Author(nil), bc.authors...)
}

// AuthorName resolves an author id against the loaded authors. Empty when
// unknown or the book has no author.
func (bc *BooksController) AuthorName(id *int64) string {
	if id == nil {
		return ""
	}
	bc.mu.Lock()
	defer bc.mu.Unlock()
	for _, author := range bc.authors {
		if author.ID == *id {
			return author.FullName()
		}
	}
	return ""
}

// Search hits the gateway's dedicated search endpoint. This is separate from
// the local filter path and does not touch the collection.
func (bc *BooksController) Search(ctx context.Context, criteria gateway.BookSearch) ([]gateway.Book, error) {
	return bc.api.SearchBooks(ctx, criteria)
}
