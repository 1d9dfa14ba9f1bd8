// Package store is the credential store: persistence for user and
// item records. Two implementations exist, a gorm/PostgreSQL store
// used in production and an in-memory store used by tests.
package store

import (
	"context"

	"custodyserver/models"
)

// Store exposes per-call atomic CRUD on users and items. Name
// uniqueness is enforced by the implementation itself (unique
// constraint, not a prior existence check), so concurrent creates
// with the same name resolve to exactly one success.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByName(ctx context.Context, name string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateItem(ctx context.Context, item *models.Item) error
	FindItemsByOwner(ctx context.Context, ownerID uint) ([]models.Item, error)
	FindItemByID(ctx context.Context, id uint) (*models.Item, error)
	UpdateItemOwner(ctx context.Context, id uint, newOwnerID uint) error
	// DeleteItem is scoped to the owner: deleting an item that does
	// not exist or belongs to someone else returns ErrNotFound.
	DeleteItem(ctx context.Context, id uint, ownerID uint) error
}
