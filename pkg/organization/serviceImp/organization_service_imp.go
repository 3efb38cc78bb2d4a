package serviceImp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	repo "github.com/SMBeePay/field-health-systems-sub001/pkg/organization/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/organization/service"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type orgSvc struct {
	r   repo.OrganizationRepository
	log *zap.Logger
}

func NewOrganizationService(r repo.OrganizationRepository, log *zap.Logger) service.OrganizationService {
	return &orgSvc{r: r, log: log}
}

func (s *orgSvc) Create(in service.CreateInput) (*entities.Organization, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	if !slugRe.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug %q must be lowercase letters, digits and dashes", errs.ErrInvalidInput, in.Slug)
	}
	switch _, err := s.r.FindBySlug(slug); {
	case err == nil:
		return nil, fmt.Errorf("%w: slug %q already taken", errs.ErrConflict, slug)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	o := &entities.Organization{Name: name, Slug: slug, ContactEmail: strings.TrimSpace(in.ContactEmail)}
	if err := s.r.Create(o); err != nil {
		return nil, err
	}
	s.log.Info("organization created", zap.Uint("org_id", o.OrgID), zap.String("slug", o.Slug))
	return o, nil
}

func (s *orgSvc) List() ([]service.Summary, error) {
	orgs, err := s.r.List()
	if err != nil {
		return nil, err
	}
	out := make([]service.Summary, 0, len(orgs))
	for _, o := range orgs {
		n, err := s.r.CountFields(o.OrgID)
		if err != nil {
			return nil, err
		}
		out = append(out, service.Summary{Organization: o, FieldCount: n})
	}
	return out, nil
}

func (s *orgSvc) Get(id uint) (*entities.Organization, error) {
	o, err := s.r.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("organization %d: %w", id, errs.NotFound(err))
	}
	return o, nil
}
