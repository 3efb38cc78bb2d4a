package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
)

const (
	ctxOrgID   = "org_id"
	ctxRole    = "role"
	ctxSubject = "sub"

	RoleSuperAdmin = "super_admin"
	RoleOrgAdmin   = "org_admin"
	RoleViewer     = "viewer"
)

// Principal is who the request acts as.
type Principal struct {
	OrgID   uint   `json:"org_id"`
	Role    string `json:"role"`
	Subject string `json:"sub"`
}

func setPrincipal(c echo.Context, p Principal) {
	c.Set(ctxOrgID, p.OrgID)
	c.Set(ctxRole, p.Role)
	c.Set(ctxSubject, p.Subject)
}

func PrincipalFrom(c echo.Context) (Principal, bool) {
	org, ok := c.Get(ctxOrgID).(uint)
	if !ok || org == 0 {
		return Principal{}, false
	}
	role, _ := c.Get(ctxRole).(string)
	sub, _ := c.Get(ctxSubject).(string)
	return Principal{OrgID: org, Role: role, Subject: sub}, true
}

// OrgID returns the organisation every query of this request is scoped to.
func OrgID(c echo.Context) (uint, error) {
	p, ok := PrincipalFrom(c)
	if !ok {
		return 0, errs.ErrUnauthorized
	}
	return p.OrgID, nil
}
