package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nippo/pkg/export"
	"nippo/pkg/store/service"
)

type StoreCtrl struct{ s service.StoreService }

func New(s service.StoreService) *StoreCtrl { return &StoreCtrl{s: s} }

func (h *StoreCtrl) Register(g, admin *echo.Group) {
	g.GET("/stores", h.List)
	admin.POST("/stores/import", h.Import)
}

func (h *StoreCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.List(c.Request().Context()))
}

func (h *StoreCtrl) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	defer f.Close()

	res, err := h.s.Import(c.Request().Context(), f)
	if errors.Is(err, export.ErrMissingColumn) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	if errors.Is(err, service.ErrBadSpreadsheet) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
