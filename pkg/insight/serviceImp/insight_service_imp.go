package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	fieldRepo "github.com/SMBeePay/field-health-systems-sub001/pkg/field/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/insight/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/kv"
	maintRepo "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repository"
	measureRepo "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/metrics"
)

type Deps struct {
	Fields      fieldRepo.FieldRepository
	Tests       measureRepo.TestingRepository
	Maintenance maintRepo.MaintenanceRepository
	Evaluator   *evaluator.Evaluator
	Cache       kv.Store
	TTL         time.Duration
	Metrics     *metrics.Metrics
	Log         *zap.Logger
	Now         func() time.Time
}

type insightSvc struct{ d Deps }

func NewInsightService(d Deps) service.InsightService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Cache == nil {
		d.Cache = kv.NewMemory()
	}
	return &insightSvc{d: d}
}

func cacheKey(orgID, fieldID uint) string {
	return fmt.Sprintf("insight:%d:%d", orgID, fieldID)
}

func (s *insightSvc) Invalidate(ctx context.Context, orgID, fieldID uint) error {
	return s.d.Cache.Del(ctx, cacheKey(orgID, fieldID))
}

func (s *insightSvc) fromCache(ctx context.Context, key string) (*service.FieldInsight, bool) {
	raw, err := s.d.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrCacheMiss) {
			s.d.Log.Warn("insight cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var out service.FieldInsight
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.d.Log.Warn("insight cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &out, true
}

// FieldInsight evaluates the latest test of a field. A cached result is only
// served while it was built from that same test; the TTL bounds everything
// else (field edits, age drift).
func (s *insightSvc) FieldInsight(ctx context.Context, orgID, fieldID uint) (*service.FieldInsight, error) {
	key := cacheKey(orgID, fieldID)
	now := s.d.Now()

	latest, err := s.d.Tests.Latest(fieldID, orgID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if _, ferr := s.d.Fields.FindByID(fieldID, orgID); ferr != nil {
			return nil, fmt.Errorf("field %d: %w", fieldID, errs.NotFound(ferr))
		}
		return nil, fmt.Errorf("field %d has no test records: %w", fieldID, errs.ErrInsufficientData)
	}

	if hit, ok := s.fromCache(ctx, key); ok && hit.TestID == latest.TestID {
		s.d.Metrics.CacheHit()
		hit.Cached = true
		hit.TestOverdue = now.After(hit.NextTestDue)
		return hit, nil
	}
	s.d.Metrics.CacheMiss()

	f, err := s.d.Fields.FindByID(fieldID, orgID)
	if err != nil {
		return nil, fmt.Errorf("field %d: %w", fieldID, errs.NotFound(err))
	}

	ev, err := s.d.Evaluator.EvaluateReadings(latest.Readings(), f.FieldType, evaluator.Context{
		TemperatureF:  latest.TemperatureF,
		FieldAgeYears: f.AgeYears(now),
	})
	if err != nil {
		if errors.Is(err, evaluator.ErrEmptyInput) {
			return nil, fmt.Errorf("test %d: %w", latest.TestID, errs.ErrInsufficientData)
		}
		return nil, err
	}

	due := latest.TestingDate.AddDate(0, 0, ev.Insight.NextTestingRecommended)
	out := &service.FieldInsight{
		Field:       *f,
		TestID:      latest.TestID,
		TestingDate: latest.TestingDate,
		Averages:    ev.Averages,
		Standards:   s.d.Evaluator.Standards(f.FieldType),
		Insight:     ev.Insight,
		NextTestDue: due,
		TestOverdue: now.After(due),
		GeneratedAt: now,
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := s.d.Cache.Set(ctx, key, string(raw), s.d.TTL); err != nil {
			s.d.Log.Warn("insight cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

func needsAttention(in evaluator.FieldHealthInsight) bool {
	return in.OverallStatus >= evaluator.Monitor || in.RiskLevel.Rank() >= evaluator.RiskHigh.Rank()
}

// Dashboard summarises every field of an organisation. Fields are evaluated
// one at a time.
func (s *insightSvc) Dashboard(ctx context.Context, orgID uint) (*service.Dashboard, error) {
	fields, err := s.d.Fields.ListByOrg(orgID)
	if err != nil {
		return nil, err
	}
	now := s.d.Now()
	d := &service.Dashboard{
		OrgID:          orgID,
		TotalFields:    len(fields),
		ByStatus:       map[string]int{},
		ByRisk:         map[string]int{},
		NeedsAttention: []service.FieldSummary{},
		NeverTested:    []service.FieldRef{},
		GeneratedAt:    now,
	}
	for _, sev := range []evaluator.Severity{evaluator.Excellent, evaluator.Good, evaluator.Monitor, evaluator.Critical} {
		d.ByStatus[sev.String()] = 0
	}
	for _, r := range []evaluator.RiskLevel{evaluator.RiskLow, evaluator.RiskModerate, evaluator.RiskHigh, evaluator.RiskSevere} {
		d.ByRisk[string(r)] = 0
	}

	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fi, err := s.FieldInsight(ctx, orgID, f.FieldID)
		if errors.Is(err, errs.ErrInsufficientData) {
			d.NeverTested = append(d.NeverTested, service.FieldRef{FieldID: f.FieldID, Name: f.Name, FieldType: f.FieldType})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", f.FieldID, err)
		}
		in := fi.Insight
		d.TestedFields++
		d.ByStatus[in.OverallStatus.String()]++
		d.ByRisk[string(in.RiskLevel)]++
		if fi.TestOverdue {
			d.TestsOverdue++
		}
		if needsAttention(in) {
			d.NeedsAttention = append(d.NeedsAttention, service.FieldSummary{
				FieldID:         f.FieldID,
				Name:            f.Name,
				FieldType:       f.FieldType,
				OverallStatus:   in.OverallStatus,
				RiskLevel:       in.RiskLevel,
				LastTested:      fi.TestingDate,
				NextTestDue:     fi.NextTestDue,
				TestOverdue:     fi.TestOverdue,
				PrimaryConcerns: in.PrimaryConcerns,
			})
		}
	}
	sort.SliceStable(d.NeedsAttention, func(i, j int) bool {
		a, b := d.NeedsAttention[i], d.NeedsAttention[j]
		if a.OverallStatus != b.OverallStatus {
			return a.OverallStatus > b.OverallStatus
		}
		if a.RiskLevel.Rank() != b.RiskLevel.Rank() {
			return a.RiskLevel.Rank() > b.RiskLevel.Rank()
		}
		return a.Name < b.Name
	})

	if s.d.Maintenance != nil {
		recs, err := s.d.Maintenance.List(orgID, maintRepo.Filter{})
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			if r.Status == entities.RecCompleted {
				continue
			}
			d.OpenRecommendations++
			if r.DueDate != nil && now.After(*r.DueDate) {
				d.OverdueRecommendations++
			}
		}
	}
	return d, nil
}
