package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/report/service"
)

type ReportCtrl struct{ svc service.ReportService }

func New(svc service.ReportService) *ReportCtrl { return &ReportCtrl{svc} }

func (h *ReportCtrl) Download(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	fid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	rep, err := h.svc.Generate(c.Request().Context(), orgID, uint(fid))
	if err != nil {
		return errs.JSON(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rep.FileName))
	c.Response().Header().Set("X-Report-ID", rep.ReportID)
	return c.Blob(http.StatusOK, service.ContentTypeXLSX, rep.Data)
}

func (h *ReportCtrl) Email(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	fid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	var req service.EmailInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return errs.JSON(c, err)
	}
	rep, err := h.svc.Email(c.Request().Context(), orgID, uint(fid), req)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusAccepted, rep)
}
