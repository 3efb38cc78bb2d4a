package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/organization/service"
)

// OrganizationCtrl backs the super-admin back office.
type OrganizationCtrl struct{ svc service.OrganizationService }

func New(svc service.OrganizationService) *OrganizationCtrl { return &OrganizationCtrl{svc} }

func (h *OrganizationCtrl) List(c echo.Context) error {
	out, err := h.svc.List()
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrganizationCtrl) Create(c echo.Context) error {
	var req service.CreateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return errs.JSON(c, err)
	}
	o, err := h.svc.Create(req)
	if err != nil {
		return errs.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}
