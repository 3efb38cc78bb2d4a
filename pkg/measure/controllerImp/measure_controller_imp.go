package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/measure/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
)

type MeasureCtrl struct{ svc service.MeasureService }

func New(svc service.MeasureService) *MeasureCtrl { return &MeasureCtrl{svc} }

func (h *MeasureCtrl) Create(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	fid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	var req service.RecordInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return errs.JSON(c, err)
	}
	out, err := h.svc.Record(c.Request().Context(), orgID, uint(fid), req)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// List returns newest first. ?limit=N caps the count (default 50, 0 = all).
func (h *MeasureCtrl) List(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	fid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = n
	}
	out, err := h.svc.List(orgID, uint(fid), limit)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MeasureCtrl) Get(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	tid, err := strconv.ParseUint(c.Param("test_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid test id"})
	}
	out, err := h.svc.Get(orgID, uint(tid))
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
