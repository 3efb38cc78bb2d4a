package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/insight/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
)

type InsightCtrl struct{ svc service.InsightService }

func New(svc service.InsightService) *InsightCtrl { return &InsightCtrl{svc} }

func (h *InsightCtrl) FieldInsight(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	fid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	out, err := h.svc.FieldInsight(c.Request().Context(), orgID, uint(fid))
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InsightCtrl) Dashboard(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	out, err := h.svc.Dashboard(c.Request().Context(), orgID)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
