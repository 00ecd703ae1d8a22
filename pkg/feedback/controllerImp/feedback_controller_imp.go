package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"nippo/entities"
	"nippo/pkg/feedback/controller"
	"nippo/pkg/feedback/service"
	"nippo/pkg/session"
)

type feedbackCtrl struct{ s service.FeedbackService }

func New(s service.FeedbackService) controller.FeedbackController { return &feedbackCtrl{s: s} }

// Register mounts comment and reaction routes under both reports and plans.
func (h *feedbackCtrl) Register(g *echo.Group) {
	for _, prefix := range []string{"/reports", "/plans"} {
		g.GET(prefix+"/:id/comments", h.ListComments)
		g.POST(prefix+"/:id/comments", h.AddComment)
		g.POST(prefix+"/:id/reactions", h.AddReaction)
	}
}

// target resolves the commented or reacted row from the matched route.
func target(c echo.Context) (string, uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return "", 0, err
	}
	if strings.Contains(c.Path(), "/plans/") {
		return entities.TargetPlan, uint(id), nil
	}
	return entities.TargetPost, uint(id), nil
}

func (h *feedbackCtrl) AddComment(c echo.Context) error {
	actor, _ := session.Get(c)
	tt, id, err := target(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	cm, err := h.s.AddComment(c.Request().Context(), actor, tt, id, body.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, cm)
}

func (h *feedbackCtrl) ListComments(c echo.Context) error {
	tt, id, err := target(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return c.JSON(http.StatusOK, h.s.ListComments(c.Request().Context(), tt, id))
}

func (h *feedbackCtrl) AddReaction(c echo.Context) error {
	actor, _ := session.Get(c)
	tt, id, err := target(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Type string `json:"type"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	r, err := h.s.AddReaction(c.Request().Context(), actor, tt, id, entities.ReactionType(body.Type))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTargetNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidReactionType), errors.Is(err, service.ErrInvalidTarget), errors.Is(err, service.ErrEmptyComment):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
