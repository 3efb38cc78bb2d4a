package serviceImp

import (
	"fmt"
	"strings"
	"time"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	repo "github.com/SMBeePay/field-health-systems-sub001/pkg/field/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/field/service"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

type fieldSvc struct {
	r     repo.FieldRepository
	table *standards.Table
	now   func() time.Time
}

func NewFieldService(r repo.FieldRepository, table *standards.Table) service.FieldService {
	if table == nil {
		table = standards.Default()
	}
	return &fieldSvc{r: r, table: table, now: time.Now}
}

// CreateField only accepts field types present in the standards table.
func (s *fieldSvc) CreateField(orgID uint, in service.CreateInput) (*entities.Field, error) {
	ft := standards.NormalizeType(in.FieldType)
	if !s.table.Known(ft) {
		return nil, fmt.Errorf("%w: unknown field type %q (known: %s)", errs.ErrInvalidInput, in.FieldType, strings.Join(s.table.Types(), ", "))
	}
	f := &entities.Field{
		OrgID:       orgID,
		Name:        strings.TrimSpace(in.Name),
		FieldType:   ft,
		SurfaceType: strings.TrimSpace(in.SurfaceType),
		Location:    strings.TrimSpace(in.Location),
	}
	if f.Name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	if in.InstallDate != "" {
		d, err := time.Parse("2006-01-02", in.InstallDate)
		if err != nil {
			return nil, fmt.Errorf("%w: install_date must be YYYY-MM-DD", errs.ErrInvalidInput)
		}
		if d.After(s.now()) {
			return nil, fmt.Errorf("%w: install_date is in the future", errs.ErrInvalidInput)
		}
		f.InstallDate = &d
	}
	if err := s.r.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) GetFieldByID(id, orgID uint) (*entities.Field, error) {
	f, err := s.r.FindByID(id, orgID)
	if err != nil {
		return nil, fmt.Errorf("field %d: %w", id, errs.NotFound(err))
	}
	return f, nil
}

func (s *fieldSvc) ListFields(orgID uint) ([]entities.Field, error) {
	return s.r.ListByOrg(orgID)
}
