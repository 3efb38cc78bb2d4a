package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/kv"
)

var appStart = time.Now()

type HealthCtrl struct {
	db    *gorm.DB
	cache kv.Store
}

func NewHealthCtrl(db *gorm.DB, cache kv.Store) *HealthCtrl { return &HealthCtrl{db: db, cache: cache} }

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) checkDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}

func (h *HealthCtrl) checkCache(ctx context.Context) sub {
	if h.cache == nil {
		return sub{Err: "cache is nil"}
	}
	if err := h.cache.Ping(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}

// Health fails (503) only when the database is down. The cache is reported
// but is not required to serve requests.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.checkDB(ctx)
	cache := h.checkCache(ctx)

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	resp := map[string]any{
		"status":     map[string]any{"ok": db.OK, "degraded": db.OK && !cache.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": db,
			"cache":    cache,
		},
		"time": time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}
