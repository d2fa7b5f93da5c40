package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
)

func (c *Client) ListPortfolios(ctx context.Context, search, sortBy, sortDirection string) ([]*models.Portfolio, error) {
	var portfolios []*models.Portfolio
	err := c.do(ctx, http.MethodGet, "/api/portfolios", listQuery(search, sortBy, sortDirection), nil, &portfolios)
	return portfolios, err
}

func (c *Client) GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/portfolios/%d", id), nil, nil, &portfolio); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (c *Client) CreatePortfolio(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error) {
	var created models.Portfolio
	if err := c.do(ctx, http.MethodPost, "/api/portfolios", nil, portfolio, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, id int64, portfolio *models.Portfolio) (*models.Portfolio, error) {
	var updated models.Portfolio
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/portfolios/%d", id), nil, portfolio, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/portfolios/%d", id), nil, nil, nil)
}

// ListPortfolioEtfs returns the member instruments of a portfolio.
func (c *Client) ListPortfolioEtfs(ctx context.Context, portfolioID int64) ([]*models.Etf, error) {
	var etfs []*models.Etf
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/portfolios/%d/etfs", portfolioID), nil, nil, &etfs)
	return etfs, err
}

func (c *Client) AddPortfolioEtf(ctx context.Context, portfolioID, etfID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/portfolios/%d/etfs/%d", portfolioID, etfID), nil, nil, nil)
}

func (c *Client) RemovePortfolioEtf(ctx context.Context, portfolioID, etfID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/portfolios/%d/etfs/%d", portfolioID, etfID), nil, nil, nil)
}
