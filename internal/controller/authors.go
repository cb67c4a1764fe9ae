package controller

import (
	"context"
	"strings"

	"librarium/internal/gateway"
	"librarium/internal/notify"
)

type AuthorsAPI interface {
	GetAllAuthors(ctx context.Context) ([]gateway.Author, error)
	CreateAuthor(ctx context.Context, author gateway.Author) (*gateway.Author, error)
	UpdateAuthor(ctx context.Context, id int64, author gateway.Author) (*gateway.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error
	SearchAuthors(ctx context.Context, name string) ([]gateway.Author, error)
}

type AuthorsController struct {
	*ListController[gateway.Author]
	api AuthorsAPI
}

func NewAuthorsController(api AuthorsAPI, sink notify.Sink) *AuthorsController {
	ops := Ops[gateway.Author]{
		List: api.GetAllAuthors,
		Create: func(ctx context.Context, draft gateway.Author) (gateway.Author, error) {
			created, err := api.CreateAuthor(ctx, draft)
			if err != nil {
				return gateway.Author{}, err
			}
			return *created, nil
		},
		Update: func(ctx context.Context, id int64, draft gateway.Author) (gateway.Author, error) {
			updated, err := api.UpdateAuthor(ctx, id, draft)
			if err != nil {
				return gateway.Author{}, err
			}
			return *updated, nil
		},
		Delete: api.DeleteAuthor,
		ID:     func(a gateway.Author) int64 { return a.ID },
		Match: func(a gateway.Author, needle string) bool {
			return strings.Contains(strings.ToLower(a.FirstName), needle) ||
				strings.Contains(strings.ToLower(a.LastName), needle) ||
				strings.Contains(strings.ToLower(a.FullName()), needle)
		},
		Label: func(a gateway.Author) string { return a.FullName() },
	}

	return &AuthorsController{
		ListController: NewListController(Names{Singular: "author", Plural: "authors"}, ops, sink),
		api:            api,
	}
}

func (ac *AuthorsController) Search(ctx context.Context, name string) ([]gateway.Author, error) {
	return ac.api.SearchAuthors(ctx, name)
}
