// Package db wires the server repositories to a shared database handle and
// runs schema migrations.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/etfs"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/portfolios"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Etfs() etfs.Repository
	Portfolios() portfolios.Repository
	RefreshTokens() refreshtokens.Repository
}
