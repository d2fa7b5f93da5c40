// Package cli implements the interactive console for the instrument and
// portfolio manager: a REPL over the REST API with a locally persisted
// session.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/etfdesk/internal/client/api"
	"github.com/dmitrijs2005/etfdesk/internal/client/client"
	"github.com/dmitrijs2005/etfdesk/internal/client/config"
	"github.com/dmitrijs2005/etfdesk/internal/client/models"
	"github.com/dmitrijs2005/etfdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/etfdesk/internal/client/session"
)

// authService is the slice of session behavior the commands need. Login and
// Register resolve to the stored token; the commands only care about the
// error, the token stays with the session.
type authService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

// apiService is the protected-resource surface the commands call.
type apiService interface {
	ListEtfs(ctx context.Context, search, sortBy, sortDirection string) ([]*models.Etf, error)
	GetEtf(ctx context.Context, id int64) (*models.Etf, error)
	CreateEtf(ctx context.Context, etf *models.Etf) (*models.Etf, error)
	UpdateEtf(ctx context.Context, id int64, etf *models.Etf) (*models.Etf, error)
	DeleteEtf(ctx context.Context, id int64) error

	ListPortfolios(ctx context.Context, search, sortBy, sortDirection string) ([]*models.Portfolio, error)
	GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, error)
	CreatePortfolio(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id int64, portfolio *models.Portfolio) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id int64) error
	ListPortfolioEtfs(ctx context.Context, portfolioID int64) ([]*models.Etf, error)
	AddPortfolioEtf(ctx context.Context, portfolioID, etfID int64) error
	RemovePortfolioEtf(ctx context.Context, portfolioID, etfID int64) error

	ListUsers(ctx context.Context, search string) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, username, password, role string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, username, role, newPassword string) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

type App struct {
	config    *config.Config
	auth      authService
	api       apiService
	bootstrap func(ctx context.Context) (*models.User, error)
	reader    *bufio.Reader
	user      *models.User
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.StatePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	store := session.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
	sess := session.New(c.BaseURL, c.RequestTimeout, store)
	apiClient := api.New(c.BaseURL, c.RequestTimeout, sess)
	boot := session.NewBootstrapper(sess)

	return &App{
		config:    c,
		auth:      sess,
		api:       apiClient,
		bootstrap: boot.Run,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) isAdmin() bool {
	return a.user != nil && a.user.IsAdmin()
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	s := a.user.Username
	if a.user.IsAdmin() {
		s += " admin"
	}
	return "(" + s + ")"
}

// Run verifies the persisted session and starts the REPL.
func (a *App) Run(ctx context.Context) {
	if user, err := a.bootstrap(ctx); err == nil && user != nil {
		a.user = user
		log.Printf("Session restored for %s", user.Username)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
