package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nippo/pkg/user/service"
)

type UserCtrl struct{ s service.UserService }

func New(s service.UserService) *UserCtrl { return &UserCtrl{s: s} }

// Register mounts the listing on g and user creation on admin.
func (h *UserCtrl) Register(g, admin *echo.Group) {
	g.GET("/users", h.List)
	admin.POST("/users", h.Create)
}

func (h *UserCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.List(c.Request().Context()))
}

func (h *UserCtrl) Create(c echo.Context) error {
	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	u, err := h.s.Create(c.Request().Context(), in)
	switch {
	case errors.Is(err, service.ErrInvalidUser):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}
