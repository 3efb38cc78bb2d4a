package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMBeePay/field-health-systems-sub001/database"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/field/repositoryImp"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/field/service"
)

func newSvc(t *testing.T) service.FieldService {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	svc := NewFieldService(repositoryImp.New(db), nil)
	svc.(*fieldSvc).now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateField(t *testing.T) {
	svc := newSvc(t)

	f, err := svc.CreateField(1, service.CreateInput{Name: " East ", FieldType: "field hockey", InstallDate: "2018-08-15"})
	require.NoError(t, err)
	assert.Equal(t, "East", f.Name)
	assert.Equal(t, "FIELD_HOCKEY", f.FieldType)
	require.NotNil(t, f.InstallDate)
	assert.Equal(t, 2018, f.InstallDate.Year())

	got, err := svc.GetFieldByID(f.FieldID, 1)
	require.NoError(t, err)
	assert.Equal(t, f.Name, got.Name)

	_, err = svc.GetFieldByID(f.FieldID, 2)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateField_Rejects(t *testing.T) {
	svc := newSvc(t)
	cases := []service.CreateInput{
		{Name: "x", FieldType: "quidditch"},
		{Name: "   ", FieldType: "SOCCER"},
		{Name: "x", FieldType: "SOCCER", InstallDate: "15/08/2018"},
		{Name: "x", FieldType: "SOCCER", InstallDate: "2027-01-01"},
	}
	for _, in := range cases {
		_, err := svc.CreateField(1, in)
		assert.ErrorIs(t, err, errs.ErrInvalidInput, "%+v", in)
	}
	list, err := svc.ListFields(1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListFields_ScopedToOrg(t *testing.T) {
	svc := newSvc(t)
	for _, org := range []uint{1, 1, 2} {
		_, err := svc.CreateField(org, service.CreateInput{Name: "f", FieldType: "BASEBALL"})
		require.NoError(t, err)
	}
	list, err := svc.ListFields(1)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
