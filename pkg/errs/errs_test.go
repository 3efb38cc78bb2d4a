package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("field 3: %w", ErrNotFound), http.StatusNotFound},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{ErrInsufficientData, http.StatusUnprocessableEntity},
		{fmt.Errorf("gmax readings: %w", evaluator.ErrEmptyInput), http.StatusUnprocessableEntity},
		{evaluator.ErrInvalidInput, http.StatusBadRequest},
		{ErrInvalidTransition, http.StatusConflict},
		{ErrForbidden, http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, Status(c.err), c.err.Error())
	}
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, NotFound(gorm.ErrRecordNotFound), ErrNotFound)
	other := errors.New("x")
	assert.Equal(t, other, NotFound(other))
	assert.NoError(t, NotFound(nil))
}

func TestJSON_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, JSON(c, errors.New("sql: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["error"])
}
