package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/etfdesk/internal/common"
	"github.com/dmitrijs2005/etfdesk/internal/server/services"
)

func messageBody(message string) map[string]string {
	return map[string]string{"message": message}
}

// writeError maps a service error to an HTTP response. Validation errors
// surface their message verbatim in a 400; sentinel errors map to their
// status codes; everything else is an opaque 500.
func (s *Server) writeError(c echo.Context, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, messageBody(validation.Message))
	}

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, messageBody("Not found"))
	case errors.Is(err, common.ErrorUnauthorized):
		return c.JSON(http.StatusUnauthorized, messageBody("Unauthorized"))
	case errors.Is(err, common.ErrorForbidden):
		return c.JSON(http.StatusForbidden, messageBody("Forbidden"))
	case errors.Is(err, common.ErrorConflict):
		return c.JSON(http.StatusConflict, messageBody("Conflict"))
	default:
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, messageBody("Internal error"))
	}
}

// pathID parses a numeric path parameter. An unparsable id behaves like a
// row that does not exist.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}
