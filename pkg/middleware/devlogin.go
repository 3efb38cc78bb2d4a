package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	devOrgCookie  = "FH_ORG"
	devRoleCookie = "FH_ROLE"
)

// DevLogin trusts the org/role cookies (or ?org=&role= on first visit) and
// defaults to org 1 as org_admin. Development only.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			org := ""
			if ck, err := c.Cookie(devOrgCookie); err == nil {
				org = ck.Value
			}
			if q := c.QueryParam("org"); q != "" {
				org = q
				c.SetCookie(&http.Cookie{Name: devOrgCookie, Value: q, Path: "/"})
			}
			role := RoleOrgAdmin
			if ck, err := c.Cookie(devRoleCookie); err == nil && ck.Value != "" {
				role = ck.Value
			}
			if q := c.QueryParam("role"); q != "" {
				role = q
				c.SetCookie(&http.Cookie{Name: devRoleCookie, Value: q, Path: "/"})
			}
			id, err := strconv.ParseUint(org, 10, 64)
			if err != nil || id == 0 {
				id = 1
			}
			setPrincipal(c, Principal{OrgID: uint(id), Role: role, Subject: "dev"})
			return next(c)
		}
	}
}
