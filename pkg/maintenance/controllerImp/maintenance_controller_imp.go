package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
)

type MaintenanceCtrl struct{ svc service.MaintenanceService }

func New(svc service.MaintenanceService) *MaintenanceCtrl { return &MaintenanceCtrl{svc} }

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}

// ListForField serves GET /fields/:id/recommendations?status=
func (h *MaintenanceCtrl) ListForField(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	fid, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	out, err := h.svc.List(orgID, repository.Filter{FieldID: fid, Status: c.QueryParam("status")})
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// List serves GET /recommendations?status= across the organisation.
func (h *MaintenanceCtrl) List(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	out, err := h.svc.List(orgID, repository.Filter{Status: c.QueryParam("status")})
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MaintenanceCtrl) Create(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	fid, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	var req service.CreateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return errs.JSON(c, err)
	}
	out, err := h.svc.Create(orgID, fid, req)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MaintenanceCtrl) Patch(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	rid, err := parseUint(c.Param("rec_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid recommendation id"})
	}
	var req service.Patch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return errs.JSON(c, err)
	}
	out, err := h.svc.Update(orgID, rid, req)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
