package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"nippo/pkg/report/controller"
	"nippo/pkg/report/repository"
	"nippo/pkg/report/service"
	"nippo/pkg/session"
)

const maxImageBytes = 10 << 20

type reportCtrl struct{ s service.ReportService }

func New(s service.ReportService) controller.ReportController { return &reportCtrl{s: s} }

func (h *reportCtrl) Register(g *echo.Group) {
	g.GET("/reports", h.List)
	g.POST("/reports", h.Create)
	g.GET("/reports/:id", h.Get)
	g.PUT("/reports/:id", h.Update)
	g.DELETE("/reports/:id", h.Delete)
	g.POST("/reports/:id/images", h.UploadImage)
	g.GET("/reports/:id/images", h.ListImages)
	g.DELETE("/images/:id", h.DeleteImage)
}

func (h *reportCtrl) List(c echo.Context) error {
	var f repository.Filter
	if v := c.QueryParam("user_id"); v != "" {
		uid, err := parseUint(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		f.UserID = uid
	}
	f.From = c.QueryParam("from")
	f.To = c.QueryParam("to")
	return c.JSON(http.StatusOK, h.s.List(c.Request().Context(), f))
}

func (h *reportCtrl) Get(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.s.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *reportCtrl) Create(c echo.Context) error {
	actor, _ := session.Get(c)
	var in service.ReportInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	p, err := h.s.Create(c.Request().Context(), actor, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *reportCtrl) Update(c echo.Context) error {
	actor, _ := session.Get(c)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in service.ReportInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	p, err := h.s.Update(c.Request().Context(), actor, id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *reportCtrl) Delete(c echo.Context) error {
	actor, _ := session.Get(c)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.s.Delete(c.Request().Context(), actor, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *reportCtrl) UploadImage(c echo.Context) error {
	actor, _ := session.Get(c)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fh.Size > maxImageBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "image too large"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	img, err := h.s.AddImage(c.Request().Context(), actor, id, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, img)
}

func (h *reportCtrl) ListImages(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return c.JSON(http.StatusOK, h.s.ListImages(c.Request().Context(), id))
}

func (h *reportCtrl) DeleteImage(c echo.Context) error {
	actor, _ := session.Get(c)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.s.DeleteImage(c.Request().Context(), actor, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNoAuthor):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDateRequired), errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrNotImage):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

func parseUint(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	return uint(n), err
}
