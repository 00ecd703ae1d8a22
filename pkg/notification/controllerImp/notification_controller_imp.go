package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nippo/pkg/notification/service"
	"nippo/pkg/session"
)

type NotificationCtrl struct{ s service.NotificationService }

func New(s service.NotificationService) *NotificationCtrl { return &NotificationCtrl{s: s} }

func (h *NotificationCtrl) Register(g *echo.Group) {
	g.GET("/notifications", h.List)
	g.GET("/notifications/unread-count", h.UnreadCount)
	g.POST("/notifications/read", h.MarkAllRead)
}

func (h *NotificationCtrl) List(c echo.Context) error {
	actor, _ := session.Get(c)
	return c.JSON(http.StatusOK, h.s.List(c.Request().Context(), actor.UserID))
}

func (h *NotificationCtrl) UnreadCount(c echo.Context) error {
	actor, _ := session.Get(c)
	return c.JSON(http.StatusOK, map[string]int64{"unread": h.s.UnreadCount(c.Request().Context(), actor.UserID)})
}

func (h *NotificationCtrl) MarkAllRead(c echo.Context) error {
	actor, _ := session.Get(c)
	if err := h.s.MarkAllRead(c.Request().Context(), actor.UserID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
