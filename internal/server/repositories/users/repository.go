// Package users provides the repository for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

// Repository defines persistence operations for users. Implementations map
// a missing row to common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Search(ctx context.Context, query string) ([]*models.User, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}
