package controller

import (
	"context"
	"strings"

	"librarium/internal/gateway"
	"librarium/internal/notify"
)

type UsersAPI interface {
	GetAllUsers(ctx context.Context) ([]gateway.User, error)
	CreateUser(ctx context.Context, user gateway.User) (*gateway.User, error)
	UpdateUser(ctx context.Context, id int64, user gateway.User) (*gateway.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type UsersController struct {
	*ListController[gateway.User]
}

func NewUsersController(api UsersAPI, sink notify.Sink) *UsersController {
	ops := Ops[gateway.User]{
		List: api.GetAllUsers,
		Create: func(ctx context.Context, draft gateway.User) (gateway.User, error) {
			created, err := api.CreateUser(ctx, draft)
			if err != nil {
				return gateway.User{}, err
			}
			return *created, nil
		},
		Update: func(ctx context.Context, id int64, draft gateway.User) (gateway.User, error) {
			updated, err := api.UpdateUser(ctx, id, draft)
			if err != nil {
				return gateway.User{}, err
			}
			return *updated, nil
		},
		Delete: api.DeleteUser,
		ID:     func(u gateway.User) int64 { return u.ID },
		Match: func(u gateway.User, needle string) bool {
			return strings.Contains(strings.ToLower(u.FullName), needle) ||
				strings.Contains(strings.ToLower(u.Email), needle)
		},
		Label: func(u gateway.User) string { return u.FullName },
	}

	return &UsersController{
		ListController: NewListController(Names{Singular: "user", Plural: "users"}, ops, sink),
	}
}
