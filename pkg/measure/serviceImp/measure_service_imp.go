package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	fieldRepo "github.com/SMBeePay/field-health-systems-sub001/pkg/field/repository"
	repo "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/measure/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/metrics"
)

type Options struct {
	AutoSuggest bool
	Now         func() time.Time
}

type measureSvc struct {
	r       repo.TestingRepository
	fields  fieldRepo.FieldRepository
	eval    *evaluator.Evaluator
	cache   service.Invalidator
	metrics *metrics.Metrics
	log     *zap.Logger
	opts    Options
}

func NewMeasureService(
	r repo.TestingRepository,
	fields fieldRepo.FieldRepository,
	eval *evaluator.Evaluator,
	cache service.Invalidator,
	m *metrics.Metrics,
	log *zap.Logger,
	opts Options,
) service.MeasureService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &measureSvc{r: r, fields: fields, eval: eval, cache: cache, metrics: m, log: log, opts: opts}
}

func parseTestingDate(v string, now time.Time) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: testing_date must be YYYY-MM-DD or RFC3339", errs.ErrInvalidInput)
	}
	return t, nil
}

// Record evaluates and stores one test session. Every metric needs at least
// one reading; nothing is persisted otherwise.
func (s *measureSvc) Record(ctx context.Context, orgID, fieldID uint, in service.RecordInput) (*service.RecordResult, error) {
	f, err := s.fields.FindByID(fieldID, orgID)
	if err != nil {
		return nil, fmt.Errorf("field %d: %w", fieldID, errs.NotFound(err))
	}

	var missing []string
	if len(in.GmaxReadings) == 0 {
		missing = append(missing, "gmax_readings")
	}
	if len(in.ShearReadings) == 0 {
		missing = append(missing, "shear_readings")
	}
	if len(in.InfillDepthReadings) == 0 {
		missing = append(missing, "infill_depth_readings")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", errs.ErrInsufficientData, strings.Join(missing, ", "))
	}

	now := s.opts.Now()
	date, err := parseTestingDate(in.TestingDate, now)
	if err != nil {
		return nil, err
	}
	if date.After(now.Add(24 * time.Hour)) {
		return nil, fmt.Errorf("%w: testing_date is in the future", errs.ErrInvalidInput)
	}

	ev, err := s.eval.EvaluateReadings(evaluator.Readings{
		Gmax:        in.GmaxReadings,
		Shear:       in.ShearReadings,
		InfillDepth: in.InfillDepthReadings,
	}, f.FieldType, evaluator.Context{TemperatureF: in.TemperatureF, FieldAgeYears: f.AgeYears(date)})
	if err != nil {
		return nil, err
	}
	ins := ev.Insight
	status := func(m evaluator.Metric) evaluator.Severity {
		r, _ := ins.Result(m)
		return r.Status
	}

	rec := &entities.TestingRecord{
		OrgID:               orgID,
		FieldID:             fieldID,
		TestingDate:         date,
		Technician:          strings.TrimSpace(in.Technician),
		WeatherConditions:   strings.TrimSpace(in.WeatherConditions),
		TemperatureF:        in.TemperatureF,
		GmaxReadings:        in.GmaxReadings,
		ShearReadings:       in.ShearReadings,
		InfillDepthReadings: in.InfillDepthReadings,
		GmaxAverage:         ev.Averages.Gmax,
		ShearAverage:        ev.Averages.Shear,
		InfillDepthAverage:  ev.Averages.InfillDepth,
		GmaxStatus:          status(evaluator.MetricGmax),
		ShearStatus:         status(evaluator.MetricShear),
		InfillDepthStatus:   status(evaluator.MetricInfillDepth),
		OverallStatus:       ins.OverallStatus,
	}

	var recs []entities.MaintenanceRecommendation
	if s.opts.AutoSuggest {
		recs = Suggested(orgID, fieldID, date, ins.Recommendations)
	}
	if err := s.r.Create(rec, recs); err != nil {
		return nil, fmt.Errorf("save testing record: %w", err)
	}
	s.metrics.Evaluated(ins.OverallStatus.String())

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, orgID, fieldID); err != nil {
			s.log.Warn("insight cache invalidate failed", zap.Uint("field_id", fieldID), zap.Error(err))
		}
	}
	s.log.Info("testing record saved",
		zap.Uint("org_id", orgID),
		zap.Uint("field_id", fieldID),
		zap.Uint("test_id", rec.TestID),
		zap.String("overall_status", ins.OverallStatus.String()),
		zap.String("risk_level", string(ins.RiskLevel)),
		zap.Int("suggestions", len(recs)),
	)
	if recs == nil {
		recs = []entities.MaintenanceRecommendation{}
	}
	return &service.RecordResult{Record: rec, Insight: ins, Recommendations: recs}, nil
}

// Suggested turns evaluator suggestions into pending recommendation rows due
// relative to the testing date.
func Suggested(orgID, fieldID uint, testingDate time.Time, in []evaluator.Recommendation) []entities.MaintenanceRecommendation {
	out := make([]entities.MaintenanceRecommendation, 0, len(in))
	for _, r := range in {
		due := testingDate.AddDate(0, 0, r.DueInDays)
		out = append(out, entities.MaintenanceRecommendation{
			OrgID:             orgID,
			FieldID:           fieldID,
			Metric:            string(r.Metric),
			Priority:          string(r.Priority),
			Category:          r.Category,
			Title:             r.Title,
			Description:       r.Description,
			EstimatedCost:     r.EstimatedCost,
			EstimatedDuration: r.EstimatedDuration,
			DueDate:           &due,
			Status:            entities.RecPending,
			Source:            entities.SourceSuggested,
		})
	}
	return out
}

func (s *measureSvc) List(orgID, fieldID uint, limit int) ([]entities.TestingRecord, error) {
	if _, err := s.fields.FindByID(fieldID, orgID); err != nil {
		return nil, fmt.Errorf("field %d: %w", fieldID, errs.NotFound(err))
	}
	return s.r.ListByField(fieldID, orgID, limit)
}

func (s *measureSvc) Get(orgID, testID uint) (*entities.TestingRecord, error) {
	rec, err := s.r.FindByID(testID, orgID)
	if err != nil {
		return nil, fmt.Errorf("test %d: %w", testID, errs.NotFound(err))
	}
	return rec, nil
}
