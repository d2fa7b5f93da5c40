package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/etfdesk/internal/server/models"
)

func (s *Server) listEtfs(c echo.Context) error {
	etfs, err := s.etfs.List(c.Request().Context(), callerFrom(c),
		c.QueryParam("search"), c.QueryParam("sortBy"), c.QueryParam("sortDirection"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, etfs)
}

func (s *Server) getEtf(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	etf, err := s.etfs.Get(c.Request().Context(), callerFrom(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, etf)
}

func (s *Server) createEtf(c echo.Context) error {
	var etf models.Etf
	if err := c.Bind(&etf); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	created, err := s.etfs.Create(c.Request().Context(), callerFrom(c), &etf)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateEtf(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var etf models.Etf
	if err := c.Bind(&etf); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	updated, err := s.etfs.Update(c.Request().Context(), callerFrom(c), id, &etf)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteEtf(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	if err := s.etfs.Delete(c.Request().Context(), callerFrom(c), id); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
