package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SMBeePay/field-health-systems-sub001/database"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/ai"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/kv"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/metrics"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/notify"
	reportSvc "github.com/SMBeePay/field-health-systems-sub001/pkg/report/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"

	authCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/auth/controllerImp"
	evalCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator/controllerImp"
	fieldCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/field/controllerImp"
	fieldRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/field/repositoryImp"
	fieldSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/field/serviceImp"
	healthCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/health/controllerImp"
	insightCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/insight/controllerImp"
	insightSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/insight/serviceImp"
	maintCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/controllerImp"
	maintRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repositoryImp"
	maintSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/serviceImp"
	measCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/controllerImp"
	measRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/repositoryImp"
	measSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/serviceImp"
	orgCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/organization/controllerImp"
	orgRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/organization/repositoryImp"
	orgSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/organization/serviceImp"
	reportCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/report/controllerImp"
	reportSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/report/serviceImp"
	stdCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/standards/controllerImp"
)

const secret = "test-secret"

type app struct {
	e      *echo.Echo
	mailer *notify.LogMailer
}

func newApp(t *testing.T, devLogin bool) app {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	lg := zap.NewNop()
	table := standards.Default()
	eval := evaluator.New(table, evaluator.DefaultConfig())
	cache := kv.NewMemory()
	m := metrics.New()
	mailer := notify.NewLog(lg)

	fRepo := fieldRepoImp.New(db)
	tRepo := measRepoImp.New(db)
	mRepo := maintRepoImp.New(db)
	ins := insightSvcImp.NewInsightService(insightSvcImp.Deps{
		Fields: fRepo, Tests: tRepo, Maintenance: mRepo, Evaluator: eval,
		Cache: cache, TTL: time.Minute, Metrics: m, Log: lg,
	})
	meas := measSvcImp.NewMeasureService(tRepo, fRepo, eval, ins, m, lg, measSvcImp.Options{AutoSuggest: true})
	rep := reportSvcImp.NewReportService(reportSvcImp.Deps{
		Insights: ins, Tests: tRepo, Maintenance: mRepo, Narrator: ai.NewMock(), Mailer: mailer, Log: lg,
	})

	e := echo.New()
	e.Validator = middleware.NewValidator()
	e.Use(middleware.RequestLogger(lg))
	e.Use(m.Middleware())

	auth := middleware.JWT(secret)
	if devLogin {
		auth = middleware.DevLogin()
	}
	New(e, auth, devLogin, Handlers{
		Field:       fieldCtrlImp.New(fieldSvcImp.NewFieldService(fRepo, table)),
		Measure:     measCtrlImp.New(meas),
		Maintenance: maintCtrlImp.New(maintSvcImp.NewMaintenanceService(mRepo, fRepo, lg)),
		Insight:     insightCtrlImp.New(ins),
		Report:      reportCtrlImp.New(rep),
		Standards:   stdCtrlImp.New(table),
		Evaluate:    evalCtrlImp.New(eval, m),
		Org:         orgCtrlImp.New(orgSvcImp.NewOrganizationService(orgRepoImp.New(db), lg)),
		Auth:        authCtrlImp.NewAuthController(secret),
		Health:      healthCtrlImp.NewHealthCtrl(db, cache),
		Metrics:     m.Handler(),
	})
	return app{e: e, mailer: mailer}
}

func (a app) do(t *testing.T, method, path, body string, mod ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, f := range mod {
		f(req)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func asOrg(org string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "FH_ORG", Value: org}) }
}

func TestFieldLifecycle(t *testing.T) {
	a := newApp(t, true)

	rec := a.do(t, http.MethodPost, "/fields", `{"name":"Main Stadium","field_type":"football","install_date":"2015-08-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var field struct {
		FieldID   uint   `json:"field_id"`
		FieldType string `json:"field_type"`
	}
	decode(t, rec, &field)
	assert.Equal(t, "FOOTBALL", field.FieldType)
	base := "/fields/" + itoa(field.FieldID)

	// no tests yet
	rec = a.do(t, http.MethodGet, base+"/insight", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(t, http.MethodPost, base+"/tests", `{"gmax_readings":[100],"infill_depth_readings":[1.8]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(t, http.MethodPost, base+"/tests", `{"testing_date":"2025-01-15","temperature_f":70,
		"gmax_readings":[204,206],"shear_readings":[30],"infill_depth_readings":[1.83]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var recorded struct {
		Record struct {
			TestID        uint   `json:"test_id"`
			OverallStatus string `json:"overall_status"`
		} `json:"record"`
		Recommendations []struct {
			RecID    uint   `json:"rec_id"`
			Priority string `json:"priority"`
		} `json:"recommendations"`
	}
	decode(t, rec, &recorded)
	assert.Equal(t, "CRITICAL", recorded.Record.OverallStatus)
	require.NotEmpty(t, recorded.Recommendations)
	assert.Equal(t, "critical", recorded.Recommendations[0].Priority)

	rec = a.do(t, http.MethodGet, base+"/insight", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ins struct {
		TestID  uint `json:"test_id"`
		Insight struct {
			OverallStatus string `json:"overall_status"`
			RiskLevel     string `json:"risk_level"`
		} `json:"insight"`
	}
	decode(t, rec, &ins)
	assert.Equal(t, recorded.Record.TestID, ins.TestID)
	assert.Equal(t, "CRITICAL", ins.Insight.OverallStatus)
	assert.Equal(t, "severe", ins.Insight.RiskLevel)

	rec = a.do(t, http.MethodGet, "/tests/"+itoa(recorded.Record.TestID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(t, http.MethodGet, "/tests/"+itoa(recorded.Record.TestID), "", asOrg("2"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	recID := itoa(recorded.Recommendations[0].RecID)
	rec = a.do(t, http.MethodPatch, "/recommendations/"+recID, `{"status":"completed"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = a.do(t, http.MethodPatch, "/recommendations/"+recID, `{"status":"pending"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = a.do(t, http.MethodPatch, "/recommendations/"+recID, `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodGet, "/recommendations?status=pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var open []map[string]any
	decode(t, rec, &open)
	assert.Len(t, open, len(recorded.Recommendations)-1)

	rec = a.do(t, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		TotalFields    int            `json:"total_fields"`
		ByStatus       map[string]int `json:"by_status"`
		NeedsAttention []any          `json:"needs_attention"`
	}
	decode(t, rec, &dash)
	assert.Equal(t, 1, dash.TotalFields)
	assert.Equal(t, 1, dash.ByStatus["CRITICAL"])
	assert.Len(t, dash.NeedsAttention, 1)

	rec = a.do(t, http.MethodGet, base+"/report", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, reportSvc.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "field-health-main-stadium-")
	assert.NotEmpty(t, rec.Header().Get("X-Report-ID"))
	assert.NotZero(t, rec.Body.Len())

	rec = a.do(t, http.MethodPost, base+"/report/email", `{"to":["not-an-email"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(t, http.MethodPost, base+"/report/email", `{"to":["grounds@example.com"]}`)
	assert.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Len(t, a.mailer.Sent, 1)
}

func TestOrgIsolation(t *testing.T) {
	a := newApp(t, true)
	rec := a.do(t, http.MethodPost, "/fields", `{"name":"Private","field_type":"SOCCER"}`, asOrg("3"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = a.do(t, http.MethodGet, "/fields/1", "", asOrg("4"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(t, http.MethodPost, "/fields/1/tests",
		`{"gmax_readings":[1],"shear_readings":[30],"infill_depth_readings":[1.5]}`, asOrg("4"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodGet, "/fields", "", asOrg("4"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestInputErrors(t *testing.T) {
	a := newApp(t, true)
	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/fields", `{"name":"x","field_type":"curling"}`, http.StatusBadRequest},
		{http.MethodPost, "/fields", `{"field_type":"SOCCER"}`, http.StatusBadRequest},
		{http.MethodPost, "/fields", `{not json`, http.StatusBadRequest},
		{http.MethodGet, "/fields/abc", "", http.StatusBadRequest},
		{http.MethodGet, "/fields/42", "", http.StatusNotFound},
		{http.MethodGet, "/fields/1/tests?limit=-1", "", http.StatusBadRequest},
		{http.MethodPatch, "/recommendations/99", `{"status":"completed"}`, http.StatusNotFound},
		{http.MethodPost, "/fields/1/tests", `{"gmax_readings":[100],"shear_readings":[-40,100],"infill_depth_readings":[1.8]}`, http.StatusBadRequest},
		{http.MethodPost, "/evaluate", `{"field_type":"FOOTBALL","gmax_readings":[100],"shear_readings":[-40,100],"infill_depth_readings":[-1.0,5.0]}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		rec := a.do(t, c.method, c.path, c.body)
		assert.Equal(t, c.want, rec.Code, "%s %s: %s", c.method, c.path, rec.Body.String())
	}
}

func TestPublicEndpoints(t *testing.T) {
	a := newApp(t, false)

	rec := a.do(t, http.MethodGet, "/standards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	decode(t, rec, &all)
	assert.Len(t, all, len(standards.Default().Types()))

	rec = a.do(t, http.MethodGet, "/standards/field-hockey", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(t, http.MethodGet, "/standards/polo", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodPost, "/evaluate", `{"field_type":"FOOTBALL","gmax":205,"shear":30,"infill_depth":1.83}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ev struct {
		Insight struct {
			OverallStatus          string `json:"overall_status"`
			NextTestingRecommended int    `json:"next_testing_recommended"`
		} `json:"insight"`
	}
	decode(t, rec, &ev)
	assert.Equal(t, "CRITICAL", ev.Insight.OverallStatus)
	assert.Equal(t, 0, ev.Insight.NextTestingRecommended)

	rec = a.do(t, http.MethodPost, "/evaluate", `{"field_type":"FOOTBALL","gmax":100,"shear":30}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = a.do(t, http.MethodPost, "/evaluate", `{"field_type":"FOOTBALL","gmax":-1,"shear":30,"infill_depth":1.8}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "field_evaluations_total")
	assert.Contains(t, rec.Body.String(), `route="/evaluate"`)

	// unregistered without dev login; the auth group's catch-all may answer first
	rec = a.do(t, http.MethodGet, "/devlogin", "")
	assert.Contains(t, []int{http.StatusNotFound, http.StatusUnauthorized}, rec.Code)
}

func TestJWTAuth(t *testing.T) {
	a := newApp(t, false)

	rec := a.do(t, http.MethodGet, "/fields", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := middleware.IssueToken(secret, 5, middleware.RoleOrgAdmin, "grounds@lakeside", time.Hour)
	require.NoError(t, err)
	bearer := func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+tok) }

	rec = a.do(t, http.MethodGet, "/whoami", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"org_id":5`)

	rec = a.do(t, http.MethodGet, "/admin/organizations", "", bearer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := middleware.IssueToken(secret, 1, middleware.RoleSuperAdmin, "root", time.Hour)
	require.NoError(t, err)
	asAdmin := func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+admin) }
	rec = a.do(t, http.MethodPost, "/admin/organizations", `{"name":"Lakeside","slug":"lakeside"}`, asAdmin)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = a.do(t, http.MethodPost, "/admin/organizations", `{"name":"Again","slug":"lakeside"}`, asAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = a.do(t, http.MethodGet, "/admin/organizations", "", asAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }
