package services

import (
	"context"

	"github.com/dmitrijs2005/etfdesk/internal/common"
	"github.com/dmitrijs2005/etfdesk/internal/server/models"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/etfs"
)

// EtfService implements instrument CRUD with the console's visibility rules:
// admins see everything, regular users see their own rows and public ones.
type EtfService struct {
	etfs etfs.Repository
}

func NewEtfService(etfRepo etfs.Repository) *EtfService {
	return &EtfService{etfs: etfRepo}
}

// List returns the instruments visible to caller, optionally filtered by a
// search term and ordered by the whitelisted sort parameters.
func (s *EtfService) List(ctx context.Context, caller *models.User, search, sortBy, sortDirection string) ([]*models.Etf, error) {
	filter := etfs.ListFilter{
		Search:        search,
		SortBy:        sortBy,
		SortDirection: sortDirection,
		UserID:        caller.ID,
		Admin:         caller.IsAdmin(),
	}
	return s.etfs.List(ctx, filter)
}

// Get returns one instrument, enforcing read visibility.
func (s *EtfService) Get(ctx context.Context, caller *models.User, id int64) (*models.Etf, error) {
	etf, err := s.etfs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && etf.UserID != caller.ID && !etf.IsPublic {
		return nil, common.ErrorForbidden
	}
	return etf, nil
}

// Create stamps the caller as owner; any client-supplied id is discarded.
func (s *EtfService) Create(ctx context.Context, caller *models.User, etf *models.Etf) (*models.Etf, error) {
	etf.ID = 0
	etf.UserID = caller.ID
	return s.etfs.Create(ctx, etf)
}

// Update requires ownership or admin. Ownership never transfers on update.
func (s *EtfService) Update(ctx context.Context, caller *models.User, id int64, etf *models.Etf) (*models.Etf, error) {
	existing, err := s.etfs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && existing.UserID != caller.ID {
		return nil, common.ErrorForbidden
	}

	etf.ID = id
	etf.UserID = existing.UserID
	return s.etfs.Update(ctx, etf)
}

// Delete requires ownership or admin.
func (s *EtfService) Delete(ctx context.Context, caller *models.User, id int64) error {
	existing, err := s.etfs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && existing.UserID != caller.ID {
		return common.ErrorForbidden
	}
	return s.etfs.Delete(ctx, id)
}
