package portfolios

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/etfdesk/internal/common"
	"github.com/dmitrijs2005/etfdesk/internal/dbx"
	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]*models.Portfolio, error) {
	query := "SELECT id, name, user_id, is_public FROM portfolio"
	var (
		conditions []string
		args       []any
	)

	if !f.Admin {
		args = append(args, f.UserID)
		conditions = append(conditions, fmt.Sprintf("(user_id = $%d OR is_public = TRUE)", len(args)))
	}
	if f.Search != "" {
		args = append(args, f.Search)
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += f.OrderBy()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Portfolio
	for rows.Next() {
		p := &models.Portfolio{}
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID, &p.IsPublic); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Portfolio, error) {
	query := `
		SELECT id, name, user_id, is_public FROM portfolio
		WHERE id = $1
	`
	p := &models.Portfolio{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.UserID, &p.IsPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error) {
	query := `
		INSERT INTO portfolio (name, user_id, is_public)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, portfolio.Name, portfolio.UserID, portfolio.IsPublic).Scan(&portfolio.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return portfolio, nil
}

func (r *PostgresRepository) Update(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error) {
	query := `
		UPDATE portfolio SET name = $1, is_public = $2
		WHERE id = $3
	`
	res, err := r.db.ExecContext(ctx, query, portfolio.Name, portfolio.IsPublic, portfolio.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}
	return portfolio, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM portfolio WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListEtfs(ctx context.Context, portfolioID int64) ([]*models.Etf, error) {
	query := `
		SELECT e.id, e.ticker, e.description, e.asset_class, e.expense_ratio, e.user_id, e.is_public
		FROM etf e
		JOIN portfolio_etf pe ON pe.etf_id = e.id
		WHERE pe.portfolio_id = $1
		ORDER BY e.ticker
	`
	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Etf
	for rows.Next() {
		e := &models.Etf{}
		if err := rows.Scan(&e.ID, &e.Ticker, &e.Description, &e.AssetClass, &e.ExpenseRatio, &e.UserID, &e.IsPublic); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) HasEtf(ctx context.Context, portfolioID, etfID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM portfolio_etf WHERE portfolio_id = $1 AND etf_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, portfolioID, etfID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) AddEtf(ctx context.Context, portfolioID, etfID int64) error {
	query := `
		INSERT INTO portfolio_etf (portfolio_id, etf_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, portfolioID, etfID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveEtf(ctx context.Context, portfolioID, etfID int64) error {
	query := `
		DELETE FROM portfolio_etf WHERE portfolio_id = $1 AND etf_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, portfolioID, etfID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
