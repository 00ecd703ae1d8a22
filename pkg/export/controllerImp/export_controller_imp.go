package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nippo/entities"
	"nippo/pkg/export"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
	planrepo "nippo/pkg/plan/repository"
	plansvc "nippo/pkg/plan/service"
	reportrepo "nippo/pkg/report/repository"
	reportsvc "nippo/pkg/report/service"
)

type ExportCtrl struct {
	reports reportsvc.ReportService
	plans   plansvc.PlanService
	now     func() time.Time
}

func New(reports reportsvc.ReportService, plans plansvc.PlanService) *ExportCtrl {
	return &ExportCtrl{reports: reports, plans: plans, now: time.Now}
}

func (h *ExportCtrl) Register(admin *echo.Group) {
	admin.GET("/exports/reports", h.Reports)
	admin.GET("/exports/plans", h.Plans)
	admin.GET("/exports/store-visits", h.StoreVisits)
	admin.GET("/exports/monthly", h.Monthly)
}

type query struct {
	UserID uint
	From   string
	To     string
}

func parseQuery(c echo.Context) (query, error) {
	q := query{From: c.QueryParam("from"), To: c.QueryParam("to")}
	if v := c.QueryParam("user_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return q, errors.New("invalid user_id")
		}
		q.UserID = uint(n)
	}
	return q, nil
}

func (h *ExportCtrl) posts(c echo.Context) ([]entities.Post, error) {
	q, err := parseQuery(c)
	if err != nil {
		return nil, err
	}
	return h.reports.List(c.Request().Context(), reportrepo.Filter{UserID: q.UserID, From: q.From, To: q.To}), nil
}

func (h *ExportCtrl) Reports(c echo.Context) error {
	posts, err := h.posts(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return h.send(c, "reports", export.DailyReports(posts))
}

func (h *ExportCtrl) StoreVisits(c echo.Context) error {
	posts, err := h.posts(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return h.send(c, "store_visits", export.StoreVisits(posts))
}

func (h *ExportCtrl) Monthly(c echo.Context) error {
	posts, err := h.posts(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return h.send(c, "monthly", export.MonthlyStats(posts))
}

func (h *ExportCtrl) Plans(c echo.Context) error {
	q, err := parseQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	plans := h.plans.List(c.Request().Context(), planrepo.Filter{UserID: q.UserID, From: q.From, To: q.To})
	return h.send(c, "plans", export.WeeklyPlans(plans))
}

// send renders the book as xlsx (default) or csv. With download=1 the raw
// file is returned; otherwise a JSON download directive with a data URI.
func (h *ExportCtrl) send(c echo.Context, kind string, book export.Book) error {
	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = "xlsx"
	}
	name := book.FileName + "_" + h.now().Format("20060102")

	var (
		art *export.Artifact
		err error
	)
	switch format {
	case "xlsx":
		book.FileName = name
		art, err = export.Render(book)
	case "csv":
		art, err = export.RenderCSV(book.Sheets[0], name)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "format must be xlsx or csv"})
	}
	if err != nil {
		logger.L.Error("export.render_failed", zap.String("kind", kind), zap.String("format", format), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	metrics.Exports.WithLabelValues(kind, format).Inc()
	logger.L.Info("export.render", zap.String("kind", kind), zap.String("format", format), zap.Int("bytes", len(art.Data)))

	if c.QueryParam("download") == "1" {
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", art.FileName, url.PathEscape(art.FileName)))
		return c.Blob(http.StatusOK, art.MIMEType, art.Data)
	}
	return c.JSON(http.StatusOK, art.Download())
}
