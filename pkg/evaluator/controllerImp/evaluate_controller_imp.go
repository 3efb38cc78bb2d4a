package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/metrics"
)

// EvaluateRequest takes, per metric, either raw readings or an average.
// Readings win when both are present.
type EvaluateRequest struct {
	FieldType           string    `json:"field_type" validate:"required"`
	Gmax                *float64  `json:"gmax"`
	Shear               *float64  `json:"shear"`
	InfillDepth         *float64  `json:"infill_depth"`
	GmaxReadings        []float64 `json:"gmax_readings" validate:"max=200,dive,gte=0"`
	ShearReadings       []float64 `json:"shear_readings" validate:"max=200,dive,gte=0"`
	InfillDepthReadings []float64 `json:"infill_depth_readings" validate:"max=200,dive,gte=0"`
	TemperatureF        *float64  `json:"temperature_f" validate:"omitempty,gte=-60,lte=160"`
	FieldAgeYears       *float64  `json:"field_age_years" validate:"omitempty,gte=0"`
}

type EvaluateCtrl struct {
	eval    *evaluator.Evaluator
	metrics *metrics.Metrics
}

func New(eval *evaluator.Evaluator, m *metrics.Metrics) *EvaluateCtrl {
	return &EvaluateCtrl{eval: eval, metrics: m}
}

func resolve(name string, readings []float64, avg *float64) (float64, error) {
	if len(readings) > 0 {
		v, err := evaluator.Average(readings)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}
	if avg != nil {
		return *avg, nil
	}
	return 0, fmt.Errorf("%s: %w", name, errs.ErrInsufficientData)
}

// Evaluate is stateless: nothing is stored.
func (h *EvaluateCtrl) Evaluate(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := c.Validate(&req); err != nil {
		return errs.JSON(c, err)
	}
	var avg evaluator.Averages
	var missing []string
	var err error
	for _, m := range []struct {
		name     string
		readings []float64
		avg      *float64
		out      *float64
	}{
		{"gmax", req.GmaxReadings, req.Gmax, &avg.Gmax},
		{"shear", req.ShearReadings, req.Shear, &avg.Shear},
		{"infill_depth", req.InfillDepthReadings, req.InfillDepth, &avg.InfillDepth},
	} {
		if *m.out, err = resolve(m.name, m.readings, m.avg); err != nil {
			if !errors.Is(err, errs.ErrInsufficientData) {
				return errs.JSON(c, err)
			}
			missing = append(missing, m.name)
		}
	}
	if len(missing) > 0 {
		return errs.JSON(c, fmt.Errorf("%w: %s required", errs.ErrInsufficientData, strings.Join(missing, ", ")))
	}

	in, err := h.eval.EvaluateField(avg.Gmax, avg.Shear, avg.InfillDepth, req.FieldType, evaluator.Context{
		TemperatureF:  req.TemperatureF,
		FieldAgeYears: req.FieldAgeYears,
	})
	if err != nil {
		return errs.JSON(c, err)
	}
	h.metrics.Evaluated(in.OverallStatus.String())
	return c.JSON(http.StatusOK, evaluator.Evaluation{Averages: avg, Insight: in})
}
