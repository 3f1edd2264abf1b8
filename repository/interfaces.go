package repository

import (
	"cafewifi/model"
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrCafeNameTaken = errors.New("cafe name already exists")
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

// CafeRepositoryI defines operations on Cafe entities. Returned cafes have
// their Author loaded.
type CafeRepositoryI interface {
	Create(ctx context.Context, c *model.Cafe) error
	GetByID(ctx context.Context, id uint) (*model.Cafe, error)
	Update(ctx context.Context, c *model.Cafe) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.Cafe, error)
	Random(ctx context.Context) (*model.Cafe, error)
	SearchByName(ctx context.Context, query string) ([]model.Cafe, error)
	SearchByLocation(ctx context.Context, query string) ([]model.Cafe, error)
}
