package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/metrics"
)

const maxImportRows = 5000

var (
	ErrImportNoData      = errors.New("spreadsheet has no data rows (row 1 is the header)")
	ErrImportTooManyRows = fmt.Errorf("spreadsheet exceeds %d data rows", maxImportRows)
	ErrImportBadHeader   = errors.New("header must contain Subject, Number and Name columns")
)

// ImportCourseRow one parsed spreadsheet row; Row is the 1-based sheet row
type ImportCourseRow struct {
	Row           int
	Subject       string
	Number        string
	Name          string
	Credits       string
	Tags          []string
	Prerequisites []string
	Corequisites  []string
	Description   string
}

// ────────────────────── ParseImportFile ──────────────────────

// ParseImportFile reads the first sheet of an .xlsx course list.
// Columns are located by header name, so their order is free.
func (s *courseService) ParseImportFile(reader io.Reader) ([]ImportCourseRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read spreadsheet: %w", err)
	}
	defer f.Close()

	sheetRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet: %w", err)
	}
	if len(sheetRows) < 2 {
		return nil, ErrImportNoData
	}

	col := parseCourseHeader(sheetRows[0])
	if col["subject"] < 0 || col["number"] < 0 || col["name"] < 0 {
		return nil, ErrImportBadHeader
	}

	get := func(row []string, key string) string {
		if i := col[key]; i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var rows []ImportCourseRow
	for i := 1; i < len(sheetRows); i++ {
		r := sheetRows[i]
		item := ImportCourseRow{
			Row:           i + 1,
			Subject:       get(r, "subject"),
			Number:        get(r, "number"),
			Name:          get(r, "name"),
			Credits:       get(r, "credits"),
			Tags:          splitList(get(r, "tags")),
			Prerequisites: splitList(get(r, "prerequisites")),
			Corequisites:  splitList(get(r, "corequisites")),
			Description:   get(r, "description"),
		}
		if item.Subject == "" && item.Number == "" && item.Name == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

func parseCourseHeader(header []string) map[string]int {
	idx := map[string]int{
		"subject": -1, "number": -1, "name": -1, "credits": -1,
		"tags": -1, "prerequisites": -1, "corequisites": -1, "description": -1,
	}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch key {
		case "prereqs":
			key = "prerequisites"
		case "coreqs":
			key = "corequisites"
		case "title":
			key = "name"
		}
		if _, ok := idx[key]; ok && idx[key] < 0 {
			idx[key] = i
		}
	}
	return idx
}

// splitList splits a cell on commas or semicolons
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.FieldsFunc(cell, func(r rune) bool { return r == ',' || r == ';' })
}

// ────────────────────── ImportCourses ──────────────────────

// ImportCourses upserts rows by course code. Invalid rows are reported and
// skipped; the rest are still written.
func (s *courseService) ImportCourses(ctx context.Context, rows []ImportCourseRow, callerID string) (*dto.ImportResponse, error) {
	resp := &dto.ImportResponse{Total: len(rows)}
	fail := func(row int, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportError{Row: row, Reason: reason})
	}

	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		switch {
		case row.Subject == "":
			fail(row.Row, "subject is empty")
			continue
		case row.Number == "":
			fail(row.Row, "number is empty")
			continue
		case row.Name == "":
			fail(row.Row, "name is empty")
			continue
		case len(row.Subject) > 10 || len(row.Number) > 10:
			fail(row.Row, "subject and number are limited to 10 characters")
			continue
		}

		credits := 0
		if row.Credits != "" {
			n, err := strconv.Atoi(row.Credits)
			if err != nil || n < 0 || n > 30 {
				fail(row.Row, fmt.Sprintf("invalid credits %q", row.Credits))
				continue
			}
			credits = n
		}

		code := model.CourseCode(row.Subject, row.Number)
		if first, dup := seen[code]; dup {
			fail(row.Row, fmt.Sprintf("duplicate of row %d (%s)", first, code))
			continue
		}
		seen[code] = row.Row

		course := &model.Course{
			Subject:       strings.ToUpper(row.Subject),
			Number:        strings.ToUpper(row.Number),
			Code:          code,
			Name:          row.Name,
			Credits:       credits,
			Description:   row.Description,
			Prerequisites: model.NewStringArray(row.Prerequisites),
			Corequisites:  model.NewStringArray(row.Corequisites),
			Tags:          normalizeTags(row.Tags),
		}
		// command-line imports run without a caller
		if callerID != "" {
			course.CreatedBy = &callerID
			course.UpdatedBy = &callerID
		}

		if err := s.repo.Course.Upsert(ctx, course); err != nil {
			s.logger.Error("failed to upsert course", zap.Int("row", row.Row), zap.String("code", code), zap.Error(err))
			fail(row.Row, "could not be saved")
			continue
		}
		resp.Success++
	}

	metrics.CoursesImported.Add(float64(resp.Success))
	s.logger.Info("course import finished",
		zap.Int("total", resp.Total),
		zap.Int("success", resp.Success),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}
