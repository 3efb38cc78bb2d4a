package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SMBeePay/field-health-systems-sub001/database"
	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/organization/repositoryImp"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/organization/service"
)

func TestOrganizationService(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	svc := NewOrganizationService(repositoryImp.New(db), zap.NewNop())

	o, err := svc.Create(service.CreateInput{Name: " Lakeside Schools ", Slug: "Lakeside-ISD", ContactEmail: "ops@lakeside.example"})
	require.NoError(t, err)
	assert.Equal(t, "Lakeside Schools", o.Name)
	assert.Equal(t, "lakeside-isd", o.Slug)

	_, err = svc.Create(service.CreateInput{Name: "Other", Slug: "lakeside-isd"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	for _, bad := range []string{"has space", "trailing-", "-lead", "a--b", "ünï"} {
		_, err = svc.Create(service.CreateInput{Name: "x", Slug: bad})
		assert.ErrorIs(t, err, errs.ErrInvalidInput, bad)
	}

	require.NoError(t, db.Create(&entities.Field{OrgID: o.OrgID, Name: "A", FieldType: "SOCCER"}).Error)
	require.NoError(t, db.Create(&entities.Field{OrgID: o.OrgID, Name: "B", FieldType: "SOCCER"}).Error)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].FieldCount)

	got, err := svc.Get(o.OrgID)
	require.NoError(t, err)
	assert.Equal(t, "lakeside-isd", got.Slug)
	_, err = svc.Get(999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
