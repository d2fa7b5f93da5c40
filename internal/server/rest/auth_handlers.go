package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/etfdesk/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenBody struct {
	Token string `json:"token"`
}

// loginResponse mirrors the shape console clients expect: the access token
// nested under accessToken.token.
type loginResponse struct {
	AccessToken  tokenBody `json:"accessToken"`
	RefreshToken tokenBody `json:"refreshToken"`
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	tokens, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return c.JSON(http.StatusUnauthorized, messageBody("Invalid username or password"))
		}
		return s.writeError(c, err)
	}

	s.logger.Info(c.Request().Context(), "Login", "username", req.Username)

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  tokenBody{Token: tokens.AccessToken},
		RefreshToken: tokenBody{Token: tokens.RefreshToken},
	})
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	user, err := s.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	s.logger.Info(c.Request().Context(), "Registered", "username", user.Username)

	return c.String(http.StatusOK, "User registered successfully")
}

// refresh rotates an access token. The bearer token is read straight from
// the header because an expired token must be accepted here; the service
// checks the signature and the server-side refresh record.
func (s *Server) refresh(c echo.Context) error {
	token := bearerToken(c.Request())
	if token == "" {
		return c.JSON(http.StatusUnauthorized, messageBody("Missing token"))
	}

	newToken, err := s.users.Refresh(c.Request().Context(), token)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, tokenBody{Token: newToken})
}

func (s *Server) logout(c echo.Context) error {
	caller := callerFrom(c)

	if err := s.users.Logout(c.Request().Context(), caller.ID); err != nil {
		s.logger.Error(c.Request().Context(), err.Error())
	}

	// Logout succeeds for any authenticated caller even if cleanup failed.
	return c.JSON(http.StatusOK, messageBody("Logged out"))
}

func (s *Server) userInfo(c echo.Context) error {
	user, err := s.users.CurrentUser(c.Request().Context(), callerFrom(c).ID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) changePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageBody("Invalid request body"))
	}

	err := s.users.ChangePassword(c.Request().Context(), callerFrom(c).ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.String(http.StatusOK, "Password changed successfully")
}
