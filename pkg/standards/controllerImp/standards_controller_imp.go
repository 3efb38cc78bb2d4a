package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

type StandardsCtrl struct{ table *standards.Table }

func New(table *standards.Table) *StandardsCtrl {
	if table == nil {
		table = standards.Default()
	}
	return &StandardsCtrl{table}
}

func (h *StandardsCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.table.All())
}

// Get returns 404 for unknown types rather than the MULTI_PURPOSE fallback
// the evaluator would use.
func (h *StandardsCtrl) Get(c echo.Context) error {
	ft := standards.NormalizeType(c.Param("type"))
	if !h.table.Known(ft) {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "unknown field type", "known": h.table.Types()})
	}
	return c.JSON(http.StatusOK, h.table.Get(ft))
}
