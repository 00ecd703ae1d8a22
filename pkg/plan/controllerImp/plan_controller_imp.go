package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"nippo/pkg/plan/controller"
	"nippo/pkg/plan/repository"
	"nippo/pkg/plan/service"
	"nippo/pkg/session"
)

type PlanCtrl struct{ svc service.PlanService }

func NewPlanCtrl(svc service.PlanService) *PlanCtrl { return &PlanCtrl{svc: svc} }

var _ controller.PlanController = (*PlanCtrl)(nil)

func (h *PlanCtrl) Register(g *echo.Group) {
	g.GET("/plans", h.List)
	g.POST("/plans", h.Create)
	g.GET("/plans/:id", h.Get)
	g.DELETE("/plans/:id", h.Delete)
}

func (h *PlanCtrl) Create(c echo.Context) error {
	actor, _ := session.Get(c)
	var in service.PlanInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.svc.Create(c.Request().Context(), actor, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlanCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	p, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlanCtrl) List(c echo.Context) error {
	f := repository.Filter{From: c.QueryParam("from"), To: c.QueryParam("to")}
	if v := c.QueryParam("user_id"); v != "" {
		uid, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		}
		f.UserID = uint(uid)
	}
	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context(), f))
}

func (h *PlanCtrl) Delete(c echo.Context) error {
	actor, _ := session.Get(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), actor, uint(id)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNoAuthor):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidStartDate), errors.Is(err, service.ErrStartNotMonday):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
