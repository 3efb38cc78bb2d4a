package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/auth/controller"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
)

type authCtrl struct {
	jwtSecret string
}

// NewAuthController: when jwtSecret is set, DevLogin also hands out a
// short-lived bearer token for the chosen org and role.
func NewAuthController(jwtSecret string) controller.AuthController {
	return &authCtrl{jwtSecret: jwtSecret}
}

func (h *authCtrl) DevLogin(c echo.Context) error {
	org := c.QueryParam("org")
	if org == "" {
		org = "1"
	}
	id, err := strconv.ParseUint(org, 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid org"})
	}
	role := c.QueryParam("role")
	if role == "" {
		role = middleware.RoleOrgAdmin
	}
	c.SetCookie(&http.Cookie{Name: "FH_ORG", Value: org, Path: "/"})
	c.SetCookie(&http.Cookie{Name: "FH_ROLE", Value: role, Path: "/"})
	out := map[string]any{"org_id": id, "role": role}
	if h.jwtSecret != "" {
		tok, err := middleware.IssueToken(h.jwtSecret, uint(id), role, "dev", 12*time.Hour)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		out["token"] = tok
	}
	return c.JSON(http.StatusOK, out)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, p)
}
