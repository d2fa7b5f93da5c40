package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

func (s *Server) listPortfolios(c echo.Context) error {
	portfolios, err := s.portfolios.List(c.Request().Context(), callerFrom(c),
		c.QueryParam("search"), c.QueryParam("sortBy"), c.QueryParam("sortDirection"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, portfolios)
}

func (s *Server) getPortfolio(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	portfolio, err := s.portfolios.Get(c.Request().Context(), callerFrom(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, portfolio)
}

func (s *Server) createPortfolio(c echo.Context) error {
	var portfolio models.Portfolio
	if err := c.Bind(&portfolio); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	created, err := s.portfolios.Create(c.Request().Context(), callerFrom(c), &portfolio)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updatePortfolio(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var portfolio models.Portfolio
	if err := c.Bind(&portfolio); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	updated, err := s.portfolios.Update(c.Request().Context(), callerFrom(c), id, &portfolio)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deletePortfolio(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	if err := s.portfolios.Delete(c.Request().Context(), callerFrom(c), id); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listPortfolioEtfs(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	etfs, err := s.portfolios.ListEtfs(c.Request().Context(), callerFrom(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, etfs)
}

func (s *Server) addPortfolioEtf(c echo.Context) error {
	portfolioID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}
	etfID, err := pathID(c, "etfId")
	if err != nil {
		return s.writeError(c, err)
	}

	if err := s.portfolios.AddEtf(c.Request().Context(), callerFrom(c), portfolioID, etfID); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) removePortfolioEtf(c echo.Context) error {
	portfolioID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}
	etfID, err := pathID(c, "etfId")
	if err != nil {
		return s.writeError(c, err)
	}

	if err := s.portfolios.RemoveEtf(c.Request().Context(), callerFrom(c), portfolioID, etfID); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
