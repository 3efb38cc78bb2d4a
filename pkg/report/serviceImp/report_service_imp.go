package serviceImp

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/ai"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/errs"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	insight "github.com/SMBeePay/field-health-systems-sub001/pkg/insight/service"
	maintRepo "github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repository"
	measureRepo "github.com/SMBeePay/field-health-systems-sub001/pkg/measure/repository"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/notify"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/report/service"
)

const (
	SheetSummary         = "Summary"
	SheetTests           = "Tests"
	SheetRecommendations = "Recommendations"
)

var statusFill = map[evaluator.Severity]string{
	evaluator.Excellent: "#C6EFCE",
	evaluator.Good:      "#DDEBF7",
	evaluator.Monitor:   "#FFEB9C",
	evaluator.Critical:  "#FFC7CE",
}

type Deps struct {
	Insights    insight.InsightService
	Tests       measureRepo.TestingRepository
	Maintenance maintRepo.MaintenanceRepository
	Narrator    ai.Client
	Mailer      notify.Mailer
	Log         *zap.Logger
	Now         func() time.Time
}

type reportSvc struct{ d Deps }

func NewReportService(d Deps) service.ReportService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Narrator == nil {
		d.Narrator = ai.NewMock()
	}
	return &reportSvc{d: d}
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func fileName(f entities.Field, at time.Time) string {
	slug := strings.Trim(strings.ToLower(unsafeName.ReplaceAllString(f.Name, "-")), "-")
	if slug == "" {
		slug = fmt.Sprintf("field-%d", f.FieldID)
	}
	return fmt.Sprintf("field-health-%s-%s.xlsx", slug, at.Format("20060102"))
}

// Generate builds the compliance workbook for a field's latest evaluation.
func (s *reportSvc) Generate(ctx context.Context, orgID, fieldID uint) (*service.Report, error) {
	fi, err := s.d.Insights.FieldInsight(ctx, orgID, fieldID)
	if err != nil {
		return nil, err
	}
	tests, err := s.d.Tests.ListByField(fieldID, orgID, 0)
	if err != nil {
		return nil, err
	}
	recs, err := s.d.Maintenance.List(orgID, maintRepo.Filter{FieldID: fieldID})
	if err != nil {
		return nil, err
	}
	now := s.d.Now()
	rep := &service.Report{
		ReportID:      uuid.NewString(),
		FieldID:       fieldID,
		FileName:      fileName(fi.Field, now),
		GeneratedAt:   now,
		OverallStatus: fi.Insight.OverallStatus,
		Narrative:     s.d.Narrator.Narrate(ctx, &fi.Field, fi.Insight),
	}

	data, err := buildWorkbook(rep, fi, tests, recs)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	rep.Data = data
	s.d.Log.Info("report generated",
		zap.String("report_id", rep.ReportID),
		zap.Uint("field_id", fieldID),
		zap.Int("tests", len(tests)),
		zap.Int("bytes", len(data)),
	)
	return rep, nil
}

func (s *reportSvc) Email(ctx context.Context, orgID, fieldID uint, in service.EmailInput) (*service.Report, error) {
	if len(in.To) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient is required", errs.ErrInvalidInput)
	}
	rep, err := s.Generate(ctx, orgID, fieldID)
	if err != nil {
		return nil, err
	}
	msg := notify.Message{
		To:          in.To,
		Subject:     fmt.Sprintf("Field health report: %s (%s)", strings.TrimSuffix(rep.FileName, ".xlsx"), rep.OverallStatus),
		HTMLBody:    "<p>" + html.EscapeString(rep.Narrative) + "</p><p>The full compliance report is attached.</p>",
		Attachments: []notify.Attachment{{Name: rep.FileName, Data: rep.Data}},
	}
	if err := s.d.Mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send report: %w", err)
	}
	s.d.Log.Info("report emailed", zap.String("report_id", rep.ReportID), zap.Strings("to", in.To))
	return rep, nil
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

func buildWorkbook(rep *service.Report, fi *insight.FieldInsight, tests []entities.TestingRecord, recs []entities.MaintenanceRecommendation) ([]byte, error) {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetTests, SheetRecommendations} {
		if _, err := x.NewSheet(name); err != nil {
			return nil, err
		}
	}
	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	fills := map[evaluator.Severity]int{}
	for sev, color := range statusFill {
		id, err := x.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}})
		if err != nil {
			return nil, err
		}
		fills[sev] = id
	}

	w := &sheetWriter{x: x}
	if err := writeSummary(w, bold, fills, rep, fi); err != nil {
		return nil, err
	}
	if err := writeTests(w, bold, fills, tests); err != nil {
		return nil, err
	}
	if err := writeRecommendations(w, bold, recs); err != nil {
		return nil, err
	}
	x.SetActiveSheet(0)

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so row writes can be chained.
type sheetWriter struct {
	x   *excelize.File
	err error
}

func (w *sheetWriter) row(sheet string, r int, vals ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.x.SetSheetRow(sheet, cell, &vals)
}

func (w *sheetWriter) style(sheet string, col, r, styleID int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, r)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.x.SetCellStyle(sheet, cell, cell, styleID)
}

func (w *sheetWriter) boldRow(sheet string, r, cols, styleID int) {
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(1, r)
	to, _ := excelize.CoordinatesToCellName(cols, r)
	w.err = w.x.SetCellStyle(sheet, from, to, styleID)
}

func writeSummary(w *sheetWriter, bold int, fills map[evaluator.Severity]int, rep *service.Report, fi *insight.FieldInsight) error {
	const sh = SheetSummary
	in := fi.Insight
	f := fi.Field
	age := "-"
	if in.FieldAgeYears != nil {
		age = fmt.Sprintf("%.1f years", *in.FieldAgeYears)
	}
	next := fi.NextTestDue.Format("2006-01-02")
	if in.NextTestingRecommended == evaluator.ContinuousMonitoring {
		next = "before next use"
	}

	w.row(sh, 1, "Field Health Compliance Report")
	w.style(sh, 1, 1, bold)
	r := 3
	for _, kv := range [][2]any{
		{"Report ID", rep.ReportID},
		{"Generated", rep.GeneratedAt.Format(time.RFC3339)},
		{"Field", f.Name},
		{"Field type", in.FieldType},
		{"Surface", f.SurfaceType},
		{"Location", f.Location},
		{"Install date", dateOrDash(f.InstallDate)},
		{"Field age", age},
		{"Last tested", fi.TestingDate.Format("2006-01-02")},
		{"Overall status", in.OverallStatus.String()},
		{"Risk level", string(in.RiskLevel)},
		{"Next test due", next},
		{"Summary", rep.Narrative},
	} {
		w.row(sh, r, kv[0], kv[1])
		w.style(sh, 1, r, bold)
		if kv[0] == "Overall status" {
			w.style(sh, 2, r, fills[in.OverallStatus])
		}
		r++
	}

	r++
	w.row(sh, r, "Metric", "Average", "Status", "Optimal", "Acceptable")
	w.boldRow(sh, r, 5, bold)
	r++
	std := fi.Standards
	for _, m := range in.Metrics {
		var optimal, acceptable string
		switch m.Metric {
		case evaluator.MetricGmax:
			optimal = fmt.Sprintf("%.0f-%.0f g", std.Gmax.Optimal.Min, std.Gmax.Optimal.Max)
			acceptable = fmt.Sprintf("<= %.0f g", std.Gmax.SafetyLimit)
		case evaluator.MetricShear:
			optimal = fmt.Sprintf("%.1f-%.1f", std.Shear.Optimal.Min, std.Shear.Optimal.Max)
			acceptable = fmt.Sprintf("%.1f-%.1f", std.Shear.Range.Min, std.Shear.Range.Max)
		case evaluator.MetricInfillDepth:
			optimal = fmt.Sprintf("%.2f-%.2f in", std.InfillDepth.Optimal.Min, std.InfillDepth.Optimal.Max)
			acceptable = fmt.Sprintf("%.2f-%.2f in", std.InfillDepth.Range.Min, std.InfillDepth.Range.Max)
		}
		w.row(sh, r, string(m.Metric), m.Value, m.Status.String(), optimal, acceptable)
		w.style(sh, 3, r, fills[m.Status])
		r++
	}
	if in.Heat.Applied {
		w.row(sh, r, "gmax (heat adjusted)", in.Heat.AdjustedGmax, in.Heat.AdjustedStatus.String(),
			fmt.Sprintf("at %.0f°F", *in.Heat.TemperatureF), "informational")
		r++
	}

	r++
	w.row(sh, r, "Primary concerns")
	w.style(sh, 1, r, bold)
	r++
	if len(in.PrimaryConcerns) == 0 {
		w.row(sh, r, "None")
	}
	for _, c := range in.PrimaryConcerns {
		w.row(sh, r, c)
		r++
	}
	if w.err != nil {
		return w.err
	}
	return w.x.SetColWidth(sh, "A", "A", 22)
}

func writeTests(w *sheetWriter, bold int, fills map[evaluator.Severity]int, tests []entities.TestingRecord) error {
	const sh = SheetTests
	w.row(sh, 1, "Test ID", "Date", "Technician", "Weather", "Temperature F",
		"GMAX avg", "GMAX status", "Shear avg", "Shear status", "Infill avg (in)", "Infill status", "Overall", "Readings")
	w.boldRow(sh, 1, 13, bold)
	for i, t := range tests {
		r := i + 2
		temp := any("")
		if t.TemperatureF != nil {
			temp = *t.TemperatureF
		}
		w.row(sh, r, t.TestID, t.TestingDate.Format("2006-01-02"), t.Technician, t.WeatherConditions, temp,
			t.GmaxAverage, t.GmaxStatus.String(),
			t.ShearAverage, t.ShearStatus.String(),
			t.InfillDepthAverage, t.InfillDepthStatus.String(),
			t.OverallStatus.String(),
			len(t.GmaxReadings)+len(t.ShearReadings)+len(t.InfillDepthReadings))
		w.style(sh, 7, r, fills[t.GmaxStatus])
		w.style(sh, 9, r, fills[t.ShearStatus])
		w.style(sh, 11, r, fills[t.InfillDepthStatus])
		w.style(sh, 12, r, fills[t.OverallStatus])
	}
	return w.err
}

func writeRecommendations(w *sheetWriter, bold int, recs []entities.MaintenanceRecommendation) error {
	const sh = SheetRecommendations
	w.row(sh, 1, "ID", "Priority", "Category", "Title", "Description", "Estimated cost", "Duration", "Due", "Status", "Source")
	w.boldRow(sh, 1, 10, bold)
	for i, m := range recs {
		w.row(sh, i+2, m.RecID, m.Priority, m.Category, m.Title, m.Description, m.EstimatedCost, m.EstimatedDuration,
			dateOrDash(m.DueDate), m.Status, m.Source)
	}
	return w.err
}
