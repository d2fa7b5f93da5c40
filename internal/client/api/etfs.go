package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
)

// ListEtfs returns the instruments visible to the caller, optionally
// filtered and sorted server-side.
func (c *Client) ListEtfs(ctx context.Context, search, sortBy, sortDirection string) ([]*models.Etf, error) {
	var etfs []*models.Etf
	err := c.do(ctx, http.MethodGet, "/api/etfs", listQuery(search, sortBy, sortDirection), nil, &etfs)
	return etfs, err
}

func (c *Client) GetEtf(ctx context.Context, id int64) (*models.Etf, error) {
	var etf models.Etf
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/etfs/%d", id), nil, nil, &etf); err != nil {
		return nil, err
	}
	return &etf, nil
}

func (c *Client) CreateEtf(ctx context.Context, etf *models.Etf) (*models.Etf, error) {
	var created models.Etf
	if err := c.do(ctx, http.MethodPost, "/api/etfs", nil, etf, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateEtf(ctx context.Context, id int64, etf *models.Etf) (*models.Etf, error) {
	var updated models.Etf
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/etfs/%d", id), nil, etf, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteEtf(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/etfs/%d", id), nil, nil, nil)
}
