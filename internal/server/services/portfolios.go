package services

import (
	"context"

	"github.com/dmitrijs2005/etfdesk/internal/common"
	"github.com/dmitrijs2005/etfdesk/internal/server/models"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/etfs"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/portfolios"
)

// PortfolioService implements portfolio CRUD and instrument membership with
// the same visibility rules as EtfService.
type PortfolioService struct {
	portfolios portfolios.Repository
	etfs       etfs.Repository
}

func NewPortfolioService(portfolioRepo portfolios.Repository, etfRepo etfs.Repository) *PortfolioService {
	return &PortfolioService{portfolios: portfolioRepo, etfs: etfRepo}
}

func (s *PortfolioService) List(ctx context.Context, caller *models.User, search, sortBy, sortDirection string) ([]*models.Portfolio, error) {
	filter := portfolios.ListFilter{
		Search:        search,
		SortBy:        sortBy,
		SortDirection: sortDirection,
		UserID:        caller.ID,
		Admin:         caller.IsAdmin(),
	}
	return s.portfolios.List(ctx, filter)
}

// Get returns one portfolio, enforcing read visibility.
func (s *PortfolioService) Get(ctx context.Context, caller *models.User, id int64) (*models.Portfolio, error) {
	portfolio, err := s.portfolios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canRead(caller, portfolio) {
		return nil, common.ErrorForbidden
	}
	return portfolio, nil
}

func (s *PortfolioService) canRead(caller *models.User, p *models.Portfolio) bool {
	return caller.IsAdmin() || p.UserID == caller.ID || p.IsPublic
}

func (s *PortfolioService) canWrite(caller *models.User, p *models.Portfolio) bool {
	return caller.IsAdmin() || p.UserID == caller.ID
}

func (s *PortfolioService) Create(ctx context.Context, caller *models.User, portfolio *models.Portfolio) (*models.Portfolio, error) {
	portfolio.ID = 0
	portfolio.UserID = caller.ID
	return s.portfolios.Create(ctx, portfolio)
}

func (s *PortfolioService) Update(ctx context.Context, caller *models.User, id int64, portfolio *models.Portfolio) (*models.Portfolio, error) {
	existing, err := s.portfolios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canWrite(caller, existing) {
		return nil, common.ErrorForbidden
	}

	portfolio.ID = id
	portfolio.UserID = existing.UserID
	return s.portfolios.Update(ctx, portfolio)
}

func (s *PortfolioService) Delete(ctx context.Context, caller *models.User, id int64) error {
	existing, err := s.portfolios.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canWrite(caller, existing) {
		return common.ErrorForbidden
	}
	return s.portfolios.Delete(ctx, id)
}

// ListEtfs returns the member instruments of a portfolio the caller may read.
func (s *PortfolioService) ListEtfs(ctx context.Context, caller *models.User, portfolioID int64) ([]*models.Etf, error) {
	portfolio, err := s.portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if !s.canRead(caller, portfolio) {
		return nil, common.ErrorForbidden
	}
	return s.portfolios.ListEtfs(ctx, portfolioID)
}

// AddEtf adds an instrument to a portfolio. Both rows must exist, the caller
// must own the portfolio (or be admin), and duplicates are a conflict.
func (s *PortfolioService) AddEtf(ctx context.Context, caller *models.User, portfolioID, etfID int64) error {
	portfolio, err := s.portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return err
	}
	if _, err := s.etfs.GetByID(ctx, etfID); err != nil {
		return err
	}
	if !s.canWrite(caller, portfolio) {
		return common.ErrorForbidden
	}

	member, err := s.portfolios.HasEtf(ctx, portfolioID, etfID)
	if err != nil {
		return common.ErrorInternal
	}
	if member {
		return common.ErrorConflict
	}
	return s.portfolios.AddEtf(ctx, portfolioID, etfID)
}

// RemoveEtf detaches an instrument from a portfolio. Removing a non-member
// is a no-op, matching the membership endpoint's idempotent delete.
func (s *PortfolioService) RemoveEtf(ctx context.Context, caller *models.User, portfolioID, etfID int64) error {
	portfolio, err := s.portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return err
	}
	if !s.canWrite(caller, portfolio) {
		return common.ErrorForbidden
	}
	return s.portfolios.RemoveEtf(ctx, portfolioID, etfID)
}
