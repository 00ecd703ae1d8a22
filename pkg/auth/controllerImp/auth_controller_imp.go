package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nippo/pkg/auth/controller"
	authsvc "nippo/pkg/auth/service"
	"nippo/pkg/session"
	usersvc "nippo/pkg/user/service"
)

type authCtrl struct {
	users  usersvc.UserService
	tokens authsvc.TokenService
}

func NewAuthController(users usersvc.UserService, tokens authsvc.TokenService) controller.AuthController {
	return &authCtrl{users: users, tokens: tokens}
}

func (h *authCtrl) Login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	u, err := h.users.Authenticate(c.Request().Context(), body.Username, body.Password)
	if errors.Is(err, usersvc.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	token, err := h.tokens.Issue(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": u})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	actor, ok := session.Get(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	u, err := h.users.Get(c.Request().Context(), actor.UserID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}
