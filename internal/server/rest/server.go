// Package rest exposes the console's HTTP API: authentication and token
// rotation, instrument and portfolio CRUD, and admin user management.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/etfdesk/internal/logging"
	"github.com/dmitrijs2005/etfdesk/internal/server/models"
	"github.com/dmitrijs2005/etfdesk/internal/server/services"
)

// userService covers account lifecycle, login and token rotation.
type userService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, tokenString string) (string, error)
	Logout(ctx context.Context, userID int64) error
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
	ParseAccessToken(tokenString string) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	ListUsers(ctx context.Context, search string) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, username, password, role string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, username, role, newPassword string) (*models.User, error)
	DeleteUser(ctx context.Context, id, callerID int64) error
}

type etfService interface {
	List(ctx context.Context, caller *models.User, search, sortBy, sortDirection string) ([]*models.Etf, error)
	Get(ctx context.Context, caller *models.User, id int64) (*models.Etf, error)
	Create(ctx context.Context, caller *models.User, etf *models.Etf) (*models.Etf, error)
	Update(ctx context.Context, caller *models.User, id int64, etf *models.Etf) (*models.Etf, error)
	Delete(ctx context.Context, caller *models.User, id int64) error
}

type portfolioService interface {
	List(ctx context.Context, caller *models.User, search, sortBy, sortDirection string) ([]*models.Portfolio, error)
	Get(ctx context.Context, caller *models.User, id int64) (*models.Portfolio, error)
	Create(ctx context.Context, caller *models.User, portfolio *models.Portfolio) (*models.Portfolio, error)
	Update(ctx context.Context, caller *models.User, id int64, portfolio *models.Portfolio) (*models.Portfolio, error)
	Delete(ctx context.Context, caller *models.User, id int64) error
	ListEtfs(ctx context.Context, caller *models.User, portfolioID int64) ([]*models.Etf, error)
	AddEtf(ctx context.Context, caller *models.User, portfolioID, etfID int64) error
	RemoveEtf(ctx context.Context, caller *models.User, portfolioID, etfID int64) error
}

type Server struct {
	address    string
	logger     logging.Logger
	users      userService
	etfs       etfService
	portfolios portfolioService
}

func NewServer(address string, logger logging.Logger, us userService, es etfService, ps portfolioService) *Server {
	return &Server{
		address:    address,
		logger:     logger.With("module", "rest_server"),
		users:      us,
		etfs:       es,
		portfolios: ps,
	}
}

// routes builds the echo instance with all handlers registered.
func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.logRequests)

	e.POST("/auth/login", s.login)
	e.GET("/auth/refresh", s.refresh)

	e.POST("/api/register", s.register)

	authed := e.Group("", s.requireAuth)
	authed.POST("/auth/logout", s.logout)
	authed.GET("/api/auth/user", s.userInfo)
	authed.PUT("/api/auth/change-password", s.changePassword)

	etfs := authed.Group("/api/etfs")
	etfs.GET("", s.listEtfs)
	etfs.GET("/:id", s.getEtf)
	etfs.POST("", s.createEtf)
	etfs.PUT("/:id", s.updateEtf)
	etfs.DELETE("/:id", s.deleteEtf)

	portfolios := authed.Group("/api/portfolios")
	portfolios.GET("", s.listPortfolios)
	portfolios.GET("/:id", s.getPortfolio)
	portfolios.POST("", s.createPortfolio)
	portfolios.PUT("/:id", s.updatePortfolio)
	portfolios.DELETE("/:id", s.deletePortfolio)
	portfolios.GET("/:id/etfs", s.listPortfolioEtfs)
	portfolios.POST("/:id/etfs/:etfId", s.addPortfolioEtf)
	portfolios.DELETE("/:id/etfs/:etfId", s.removePortfolioEtf)

	admin := authed.Group("/api/auth/users", s.requireAdmin)
	admin.GET("", s.listUsers)
	admin.GET("/:id", s.getUser)
	admin.POST("", s.createUser)
	admin.PUT("/:id", s.updateUser)
	admin.DELETE("/:id", s.deleteUser)

	return e
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	e := s.routes()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.address)

	if err := e.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
