package etfs

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

const etfColumns = "id, ticker, description, asset_class, expense_ratio, user_id, is_public"

// List applies visibility (own or public rows unless admin), optional
// case-insensitive search over ticker and description, and whitelisted
// ordering.
func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]*models.Etf, error) {
	query := "SELECT " + etfColumns + " FROM etf"
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
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(ticker ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
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

	var result []*models.Etf
	for rows.Next() {
		etf := &models.Etf{}
		if err := scanEtf(rows.Scan, etf); err != nil {
			return nil, err
		}
		result = append(result, etf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scanEtf(scan func(dest ...any) error, etf *models.Etf) error {
	err := scan(&etf.ID, &etf.Ticker, &etf.Description, &etf.AssetClass, &etf.ExpenseRatio, &etf.UserID, &etf.IsPublic)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Etf, error) {
	query := "SELECT " + etfColumns + " FROM etf WHERE id = $1"

	etf := &models.Etf{}
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(&etf.ID, &etf.Ticker, &etf.Description, &etf.AssetClass, &etf.ExpenseRatio, &etf.UserID, &etf.IsPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return etf, nil
}

func (r *PostgresRepository) Create(ctx context.Context, etf *models.Etf) (*models.Etf, error) {
	query := `
		INSERT INTO etf (ticker, description, asset_class, expense_ratio, user_id, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		etf.Ticker, etf.Description, etf.AssetClass, etf.ExpenseRatio, etf.UserID, etf.IsPublic).Scan(&etf.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return etf, nil
}

func (r *PostgresRepository) Update(ctx context.Context, etf *models.Etf) (*models.Etf, error) {
	query := `
		UPDATE etf
		SET ticker = $1, description = $2, asset_class = $3, expense_ratio = $4, is_public = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		etf.Ticker, etf.Description, etf.AssetClass, etf.ExpenseRatio, etf.IsPublic, etf.ID)
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
	return etf, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM etf WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
