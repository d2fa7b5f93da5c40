package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type userRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) listUsers(c echo.Context) error {
	users, err := s.users.ListUsers(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	user, err := s.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) createUser(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	user, err := s.users.CreateUser(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	user, err := s.users.UpdateUser(c.Request().Context(), id, req.Username, req.Role, req.NewPassword)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	if err := s.users.DeleteUser(c.Request().Context(), id, callerFrom(c).ID); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
