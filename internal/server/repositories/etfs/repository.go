// Package etfs provides the repository for instrument records.
package etfs

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

// ListFilter describes a listing request. SortBy and SortDirection are
// matched against a whitelist, never interpolated from raw input.
type ListFilter struct {
	Search        string
	SortBy        string // "ticker" (default) or "assetClass"
	SortDirection string // "asc" (default) or "desc", case-insensitive
	UserID        int64
	Admin         bool
}

// OrderBy resolves the filter into a safe ORDER BY clause.
func (f ListFilter) OrderBy() string {
	column := "ticker"
	if f.SortBy == "assetClass" {
		column = "asset_class"
	}
	direction := "ASC"
	if strings.EqualFold(f.SortDirection, "desc") {
		direction = "DESC"
	}
	return " ORDER BY " + column + " " + direction
}

// Repository defines persistence operations for instruments.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*models.Etf, error)
	GetByID(ctx context.Context, id int64) (*models.Etf, error)
	Create(ctx context.Context, etf *models.Etf) (*models.Etf, error)
	Update(ctx context.Context, etf *models.Etf) (*models.Etf, error)
	Delete(ctx context.Context, id int64) error
}
