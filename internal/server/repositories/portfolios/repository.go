// Package portfolios provides the repository for portfolios and their
// instrument membership.
package portfolios

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

// ListFilter describes a listing request; sort fields are whitelisted.
type ListFilter struct {
	Search        string
	SortBy        string // "name" (default) or "userId"
	SortDirection string // "asc" (default) or "desc", case-insensitive
	UserID        int64
	Admin         bool
}

// OrderBy resolves the filter into a safe ORDER BY clause.
func (f ListFilter) OrderBy() string {
	column := "name"
	if f.SortBy == "userId" {
		column = "user_id"
	}
	direction := "ASC"
	if strings.EqualFold(f.SortDirection, "desc") {
		direction = "DESC"
	}
	return " ORDER BY " + column + " " + direction
}

// Repository defines persistence operations for portfolios, including the
// portfolio membership rows.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*models.Portfolio, error)
	GetByID(ctx context.Context, id int64) (*models.Portfolio, error)
	Create(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error)
	Update(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error)
	Delete(ctx context.Context, id int64) error

	ListEtfs(ctx context.Context, portfolioID int64) ([]*models.Etf, error)
	HasEtf(ctx context.Context, portfolioID, etfID int64) (bool, error)
	AddEtf(ctx context.Context, portfolioID, etfID int64) error
	RemoveEtf(ctx context.Context, portfolioID, etfID int64) error
}
