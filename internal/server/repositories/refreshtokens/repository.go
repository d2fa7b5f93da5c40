// Package refreshtokens provides the repository for server-side refresh
// token records used by the token rotation flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

// Repository defines persistence operations for refresh tokens.
type Repository interface {
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error
	// Rotate atomically replaces all of the user's refresh records with a
	// single new one.
	Rotate(ctx context.Context, userID int64, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	FindActiveByUser(ctx context.Context, userID int64) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID int64) error
}
