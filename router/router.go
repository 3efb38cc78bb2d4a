package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
)

type Handlers struct {
	Field interface {
		Create(echo.Context) error
		Get(echo.Context) error
		List(echo.Context) error
	}
	Measure interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
	}
	Maintenance interface {
		ListForField(echo.Context) error
		List(echo.Context) error
		Create(echo.Context) error
		Patch(echo.Context) error
	}
	Insight interface {
		FieldInsight(echo.Context) error
		Dashboard(echo.Context) error
	}
	Report interface {
		Download(echo.Context) error
		Email(echo.Context) error
	}
	Standards interface {
		List(echo.Context) error
		Get(echo.Context) error
	}
	Evaluate interface{ Evaluate(echo.Context) error }
	Org      interface {
		List(echo.Context) error
		Create(echo.Context) error
	}
	Auth interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	}
	Health interface{ Health(echo.Context) error }
	// Metrics serves the Prometheus exposition; nil disables /metrics.
	Metrics http.Handler
}

// New registers every route. auth identifies the caller (DevLogin or JWT)
// and guards everything except /health, /metrics, /devlogin and the
// standards reference endpoints.
func New(e *echo.Echo, auth echo.MiddlewareFunc, devLogin bool, h Handlers) *echo.Echo {
	e.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}
	if devLogin {
		e.GET("/devlogin", h.Auth.DevLogin)
	}

	e.GET("/standards", h.Standards.List)
	e.GET("/standards/:type", h.Standards.Get)
	e.POST("/evaluate", h.Evaluate.Evaluate)

	api := e.Group("", auth)
	api.GET("/whoami", h.Auth.WhoAmI)

	api.POST("/fields", h.Field.Create)
	api.GET("/fields", h.Field.List)
	api.GET("/fields/:id", h.Field.Get)

	api.POST("/fields/:id/tests", h.Measure.Create)
	api.GET("/fields/:id/tests", h.Measure.List)
	api.GET("/tests/:test_id", h.Measure.Get)

	api.GET("/fields/:id/insight", h.Insight.FieldInsight)
	api.GET("/dashboard", h.Insight.Dashboard)

	api.GET("/fields/:id/recommendations", h.Maintenance.ListForField)
	api.POST("/fields/:id/recommendations", h.Maintenance.Create)
	api.GET("/recommendations", h.Maintenance.List)
	api.PATCH("/recommendations/:rec_id", h.Maintenance.Patch)

	api.GET("/fields/:id/report", h.Report.Download)
	api.POST("/fields/:id/report/email", h.Report.Email)

	admin := api.Group("/admin", middleware.RequireRole(middleware.RoleSuperAdmin))
	admin.GET("/organizations", h.Org.List)
	admin.POST("/organizations", h.Org.Create)
	return e
}
