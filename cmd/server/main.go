package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/SMBeePay/field-health-systems-sub001/config"
	"github.com/SMBeePay/field-health-systems-sub001/database"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/ai"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/kv"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/logger"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/metrics"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/middleware"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/notify"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
	"github.com/SMBeePay/field-health-systems-sub001/router"

	// Auth
	authCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/auth/controllerImp"

	// Organization
	orgCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/organization/controllerImp"
	orgRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/organization/repositoryImp"
	orgSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/organization/serviceImp"

	// Field
	fieldCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/field/controllerImp"
	fieldRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/field/repositoryImp"
	fieldSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/field/serviceImp"

	// Testing records
	measCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/controllerImp"
	measRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/repositoryImp"
	measSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/serviceImp"

	// Maintenance
	maintCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/controllerImp"
	maintRepoImp "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repositoryImp"
	maintSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/serviceImp"

	// Insight, reports, reference data
	evalCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator/controllerImp"
	insightCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/insight/controllerImp"
	insightSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/insight/serviceImp"
	reportCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/report/controllerImp"
	reportSvcImp "github.com/SMBeePay/field-health-systems-sub001/pkg/report/serviceImp"
	stdCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/standards/controllerImp"

	// Health
	healthCtrlImp "github.com/SMBeePay/field-health-systems-sub001/pkg/health/controllerImp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1) Config + logger
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "field-health")
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer lg.Sync() //nolint:errcheck
	lg.Info("config loaded", zap.Any("config", cfg.Redacted()))

	// 2) Standards table (built-in unless overridden from CSV/XLSX)
	table, err := standards.LoadFromFile(cfg.StandardsFile)
	if err != nil {
		return fmt.Errorf("standards: %w", err)
	}
	lg.Info("standards loaded", zap.Strings("field_types", table.Types()), zap.String("file", cfg.StandardsFile))

	evalCfg := evaluator.DefaultConfig()
	evalCfg.BaselineTempF = cfg.BaselineTempF
	evalCfg.TempCoefficient = cfg.TempCoefficient
	evalCfg.StaleFieldAgeYears = cfg.StaleFieldAgeYears
	eval := evaluator.New(table, evalCfg)

	// 3) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}

	// 4) Insight cache
	var cache kv.Store = kv.NewMemory()
	if cfg.RedisAddr != "" {
		rs := kv.Dial(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rs.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rs.Ping(ctx); err != nil {
			lg.Warn("redis unreachable at startup; cache reads will miss", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
		cache = rs
	}

	// 5) LLM narrator (mock fallback) + mailer
	var narrator ai.Client = ai.NewMock()
	if cfg.LLMEnabled() {
		narrator = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, lg)
	}
	var mailer notify.Mailer = notify.NewLog(lg)
	if cfg.SMTPEnabled() {
		mailer = notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	m := metrics.New()

	// 6) Repos/Services/Controllers
	oRepo := orgRepoImp.New(db)
	fRepo := fieldRepoImp.New(db)
	tRepo := measRepoImp.New(db)
	mRepo := maintRepoImp.New(db)

	insSvc := insightSvcImp.NewInsightService(insightSvcImp.Deps{
		Fields:      fRepo,
		Tests:       tRepo,
		Maintenance: mRepo,
		Evaluator:   eval,
		Cache:       cache,
		TTL:         cfg.InsightTTL,
		Metrics:     m,
		Log:         lg,
	})
	meSvc := measSvcImp.NewMeasureService(tRepo, fRepo, eval, insSvc, m, lg, measSvcImp.Options{AutoSuggest: cfg.AutoSuggest})
	repSvc := reportSvcImp.NewReportService(reportSvcImp.Deps{
		Insights:    insSvc,
		Tests:       tRepo,
		Maintenance: mRepo,
		Narrator:    narrator,
		Mailer:      mailer,
		Log:         lg,
	})

	// 7) Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewValidator()
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(lg))
	e.Use(m.Middleware())

	auth := middleware.DevLogin()
	if !cfg.EnableDevLogin {
		auth = middleware.JWT(cfg.JWTSecret)
	} else {
		lg.Warn("dev login enabled: requests are trusted without a token")
	}

	router.New(e, auth, cfg.EnableDevLogin, router.Handlers{
		Field:       fieldCtrlImp.New(fieldSvcImp.NewFieldService(fRepo, table)),
		Measure:     measCtrlImp.New(meSvc),
		Maintenance: maintCtrlImp.New(maintSvcImp.NewMaintenanceService(mRepo, fRepo, lg)),
		Insight:     insightCtrlImp.New(insSvc),
		Report:      reportCtrlImp.New(repSvc),
		Standards:   stdCtrlImp.New(table),
		Evaluate:    evalCtrlImp.New(eval, m),
		Org:         orgCtrlImp.New(orgSvcImp.NewOrganizationService(oRepo, lg)),
		Auth:        authCtrlImp.NewAuthController(cfg.JWTSecret),
		Health:      healthCtrlImp.NewHealthCtrl(db, cache),
		Metrics:     m.Handler(),
	})

	// 8) Start, then drain on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		lg.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
