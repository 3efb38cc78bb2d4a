package serviceImp

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	fieldRepo "github.com/SMBeePay/field-health-systems-sub001/pkg/field/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/service"
)

var Categories = map[string]bool{
	"shock_absorption": true,
	"grooming":         true,
	"decompaction":     true,
	"infill":           true,
	"lifecycle":        true,
	"inspection":       true,
	"repair":           true,
	"other":            true,
}

// transitions lists the statuses reachable from each status. completed is
// terminal.
var transitions = map[string][]string{
	entities.RecPending:   {entities.RecScheduled, entities.RecCompleted},
	entities.RecScheduled: {entities.RecCompleted, entities.RecPending},
	entities.RecCompleted: nil,
}

func CanTransition(from, to string) bool {
	if from == to {
		return from != entities.RecCompleted
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type maintSvc struct {
	r      repository.MaintenanceRepository
	fields fieldRepo.FieldRepository
	log    *zap.Logger
	now    func() time.Time
}

func NewMaintenanceService(r repository.MaintenanceRepository, fields fieldRepo.FieldRepository, log *zap.Logger) service.MaintenanceService {
	return &maintSvc{r: r, fields: fields, log: log, now: time.Now}
}

func parseDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date must be YYYY-MM-DD", errs.ErrInvalidInput)
	}
	return &t, nil
}

func (s *maintSvc) Create(orgID, fieldID uint, in service.CreateInput) (*entities.MaintenanceRecommendation, error) {
	if _, err := s.fields.FindByID(fieldID, orgID); err != nil {
		return nil, fmt.Errorf("field %d: %w", fieldID, errs.NotFound(err))
	}
	p := evaluator.Priority(strings.ToLower(strings.TrimSpace(in.Priority)))
	if !p.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", errs.ErrInvalidInput, in.Priority)
	}
	cat := strings.ToLower(strings.TrimSpace(in.Category))
	if !Categories[cat] {
		return nil, fmt.Errorf("%w: unknown category %q", errs.ErrInvalidInput, in.Category)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	due, err := parseDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	m := &entities.MaintenanceRecommendation{
		OrgID:             orgID,
		FieldID:           fieldID,
		Priority:          string(p),
		Category:          cat,
		Title:             strings.TrimSpace(in.Title),
		Description:       strings.TrimSpace(in.Description),
		EstimatedCost:     in.EstimatedCost,
		EstimatedDuration: in.EstimatedDuration,
		DueDate:           due,
		Status:            entities.RecPending,
		Source:            entities.SourceManual,
	}
	if err := s.r.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *maintSvc) List(orgID uint, f repository.Filter) ([]entities.MaintenanceRecommendation, error) {
	if f.Status != "" {
		if _, ok := transitions[f.Status]; !ok {
			return nil, fmt.Errorf("%w: unknown status %q", errs.ErrInvalidInput, f.Status)
		}
	}
	if f.FieldID != 0 {
		if _, err := s.fields.FindByID(f.FieldID, orgID); err != nil {
			return nil, fmt.Errorf("field %d: %w", f.FieldID, errs.NotFound(err))
		}
	}
	return s.r.List(orgID, f)
}

func (s *maintSvc) Update(orgID, recID uint, p service.Patch) (*entities.MaintenanceRecommendation, error) {
	cur, err := s.r.FindByID(recID, orgID)
	if err != nil {
		return nil, fmt.Errorf("recommendation %d: %w", recID, errs.NotFound(err))
	}
	if cur.Status == entities.RecCompleted {
		return nil, fmt.Errorf("%w: recommendation %d is completed", errs.ErrInvalidTransition, recID)
	}
	if p.Status != nil {
		to := strings.ToLower(strings.TrimSpace(*p.Status))
		if _, ok := transitions[to]; !ok {
			return nil, fmt.Errorf("%w: unknown status %q", errs.ErrInvalidInput, *p.Status)
		}
		if !CanTransition(cur.Status, to) {
			return nil, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, cur.Status, to)
		}
		if to == entities.RecCompleted && cur.Status != to {
			now := s.now()
			cur.CompletedAt = &now
		}
		cur.Status = to
	}
	if p.DueDate != nil {
		due, err := parseDate(*p.DueDate)
		if err != nil {
			return nil, err
		}
		cur.DueDate = due
	}
	if p.Notes != nil {
		cur.Notes = *p.Notes
	}
	if err := s.r.Update(cur); err != nil {
		return nil, err
	}
	s.log.Info("recommendation updated", zap.Uint("rec_id", recID), zap.String("status", cur.Status))
	return cur, nil
}
