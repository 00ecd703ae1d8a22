package controllerImp

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"nippo/entities"
)

var appStart = time.Now()

type HealthCtrl struct {
	db     *gorm.DB
	dbPath string
}

func NewHealthCtrl(db *gorm.DB, dbPath string) *HealthCtrl {
	return &HealthCtrl{db: db, dbPath: dbPath}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbCheck := h.pingDB(ctx)

	var posts int64
	if dbCheck.OK {
		if err := h.db.WithContext(ctx).Model(&entities.Post{}).Count(&posts).Error; err != nil {
			dbCheck = check{Err: "count posts: " + err.Error()}
		}
	}

	file := check{OK: true}
	var size int64
	if st, err := os.Stat(h.dbPath); err != nil {
		file = check{Err: err.Error()}
	} else {
		size = st.Size()
	}

	status := http.StatusOK
	if !dbCheck.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": dbCheck.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": dbCheck,
			"db_file":  file,
		},
		"posts":         posts,
		"db_size_bytes": size,
		"time":          time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}
