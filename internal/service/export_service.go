package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/metrics"
)

// ── Export errors ──

var (
	ErrExportFormat       = errors.New("unsupported export format")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// Export formats
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatICS  = "ics"
)

// ExportFile a generated download
type ExportFile struct {
	Content     *bytes.Buffer
	Filename    string
	ContentType string
}

// ExportService renders a map as a spreadsheet or a calendar.
// Content is returned as a buffer; the handler sets the download headers.
type ExportService interface {
	Export(ctx context.Context, mapID, format, callerID string) (*ExportFile, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) Export(ctx context.Context, mapID, format, callerID string) (*ExportFile, error) {
	if format != ExportFormatXLSX && format != ExportFormatICS {
		return nil, ErrExportFormat
	}
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}

	m, err := s.repo.Map.GetDetail(ctx, mapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMapNotFound
		}
		s.logger.Error("failed to load map detail", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}
	sortSemesters(m.Semesters)

	var file *ExportFile
	switch format {
	case ExportFormatXLSX:
		file, err = renderPlanXLSX(m)
	case ExportFormatICS:
		file, err = renderPlanICS(m, time.Now().UTC())
	}
	if err != nil {
		s.logger.Error("failed to render export", zap.String("map_id", mapID), zap.String("format", format), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	metrics.Exports.WithLabelValues(format).Inc()
	return file, nil
}

// ═══════════════════════════════════════════════════════════
// xlsx
// ═══════════════════════════════════════════════════════════
//
// Sheet "Plan":
//   - row 1: map name, degree, university (merged)
//   - row 2: Semester | Code | Name | Credits | Status | Grade | Tags
//   - one row per class, grouped by semester, then a credit subtotal row
//
// Sheet "Requirements": Name | Tag | Type | Category | Current | Goal | Percent

func renderPlanXLSX(m *model.Map) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	const plan, reqSheet = "Plan", "Requirements"
	idx, err := f.NewSheet(plan)
	if err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(reqSheet); err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	subtotalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Italic: true},
	})

	// ── Plan ──
	widths := []float64{14, 12, 36, 9, 13, 8, 28}
	for i, w := range widths {
		_ = f.SetColWidth(plan, colName(i), colName(i), w)
	}

	title := m.Name
	for _, part := range []string{m.Degree, m.University} {
		if part != "" {
			title += " | " + part
		}
	}
	_ = f.SetCellValue(plan, "A1", title)
	_ = f.MergeCell(plan, "A1", cell(colName(len(widths)-1), 1))
	_ = f.SetCellStyle(plan, "A1", "A1", headerStyle)

	headers := []string{"Semester", "Code", "Name", "Credits", "Status", "Grade", "Tags"}
	for i, h := range headers {
		_ = f.SetCellValue(plan, cell(colName(i), 2), h)
	}
	_ = f.SetCellStyle(plan, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	row := 3
	total := 0
	for _, sem := range m.Semesters {
		label := fmt.Sprintf("%s %d", sem.Term, sem.Year)
		classes := sortClasses(sem.Classes)
		subtotal := 0
		for _, c := range classes {
			grade := ""
			if c.Grade != nil {
				grade = *c.Grade
			}
			values := []interface{}{label, c.Code(), c.Name, c.Credits, c.Status, grade, strings.Join(c.Tags, ", ")}
			for i, v := range values {
				_ = f.SetCellValue(plan, cell(colName(i), row), v)
			}
			subtotal += c.Credits
			row++
		}
		_ = f.SetCellValue(plan, cell("A", row), label)
		_ = f.SetCellValue(plan, cell("C", row), "Semester credits")
		_ = f.SetCellValue(plan, cell("D", row), subtotal)
		_ = f.SetCellStyle(plan, cell("A", row), cell("D", row), subtotalStyle)
		total += subtotal
		row++
	}
	_ = f.SetCellValue(plan, cell("C", row), "Total credits")
	_ = f.SetCellValue(plan, cell("D", row), total)
	_ = f.SetCellStyle(plan, cell("A", row), cell("D", row), subtotalStyle)

	// ── Requirements ──
	reqHeaders := []string{"Name", "Tag", "Type", "Category", "Current", "Goal", "Percent"}
	for i, h := range reqHeaders {
		_ = f.SetColWidth(reqSheet, colName(i), colName(i), 16)
		_ = f.SetCellValue(reqSheet, cell(colName(i), 1), h)
	}
	_ = f.SetCellStyle(reqSheet, "A1", cell(colName(len(reqHeaders)-1), 1), headerStyle)

	for i, r := range m.Requirements {
		_, percent, _ := progressFigures(r.Current, r.Goal)
		values := []interface{}{r.Name, r.Tag, r.Type, r.Category, r.Current, r.Goal, percent}
		for j, v := range values {
			_ = f.SetCellValue(reqSheet, cell(colName(j), i+2), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}

	return &ExportFile{
		Content:     buf,
		Filename:    exportFilename(m.Name, ExportFormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

// ═══════════════════════════════════════════════════════════
// ics
// ═══════════════════════════════════════════════════════════
//
// One all-day VEVENT per semester over the term's conventional dates; the
// description lists the semester's classes.

func renderPlanICS(m *model.Map, stamp time.Time) (*ExportFile, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//MapMyMajor//EN")
	cal.SetXWRCalName(m.Name)

	for _, sem := range m.Semesters {
		start, end := termDates(sem.Term, sem.Year)

		event := cal.AddEvent(fmt.Sprintf("%s@mapmymajor", sem.SemesterID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end)
		event.SetSummary(fmt.Sprintf("%s %d: %s", sem.Term, sem.Year, m.Name))

		classes := sortClasses(sem.Classes)
		lines := make([]string, 0, len(classes))
		credits := 0
		for _, c := range classes {
			lines = append(lines, fmt.Sprintf("%s %s (%d)", c.Code(), c.Name, c.Credits))
			credits += c.Credits
		}
		if len(lines) == 0 {
			lines = append(lines, "No classes planned")
		} else {
			lines = append(lines, fmt.Sprintf("Total: %d credits", credits))
		}
		event.SetDescription(strings.Join(lines, "\n"))
	}

	return &ExportFile{
		Content:     bytes.NewBufferString(cal.Serialize()),
		Filename:    exportFilename(m.Name, ExportFormatICS),
		ContentType: "text/calendar; charset=utf-8",
	}, nil
}

// ── helpers ──

func exportFilename(name, ext string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "map"
	}
	return clean + "." + ext
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
