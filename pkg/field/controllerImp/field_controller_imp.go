package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/field/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) *FieldCtrl { return &FieldCtrl{svc} }

func (h *FieldCtrl) Create(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	var req service.CreateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return errs.JSON(c, err)
	}
	f, err := h.svc.CreateField(orgID, req)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid field id"})
	}
	f, err := h.svc.GetFieldByID(uint(id), orgID)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) List(c echo.Context) error {
	orgID, err := middleware.OrgID(c)
	if err != nil {
		return errs.JSON(c, err)
	}
	out, err := h.svc.ListFields(orgID)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
