// Package importer drives the bulk spreadsheet workflow: template generation,
// multi-sheet import with per-sheet counting, and the full data export.
package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v3"
)

// sheetByName matches a sheet name case-insensitively. Missing sheets are
// treated as empty by the caller, never as an error.
func sheetByName(f *xlsx.File, name string) *xlsx.Sheet {
	for _, sh := range f.Sheets {
		if strings.EqualFold(sh.Name, name) {
			return sh
		}
	}
	return nil
}

// sheetRow is one data row keyed by its lowercased header, with the 1-based
// Excel row number kept for the skip report.
type sheetRow struct {
	num  int
	vals map[string]string
}

func (r sheetRow) get(col string) string { return r.vals[col] }

func cellText(sh *xlsx.Sheet, row, col int) string {
	cell, err := sh.Cell(row, col)
	if err != nil {
		return ""
	}
	if cell.IsTime() {
		if t, err := cell.GetTime(false); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return strings.TrimSpace(cell.Value)
}

// sheetRows reads every data row of a sheet into string maps. The first row
// is the header; rows whose cells are all blank are dropped before any
// processing, so they appear in neither the success nor the skip tally.
func sheetRows(sh *xlsx.Sheet) []sheetRow {
	if sh == nil || sh.MaxRow < 2 {
		return nil
	}

	headers := make([]string, sh.MaxCol)
	for c := 0; c < sh.MaxCol; c++ {
		headers[c] = strings.ToLower(cellText(sh, 0, c))
	}

	var rows []sheetRow
	for r := 1; r < sh.MaxRow; r++ {
		vals := make(map[string]string, len(headers))
		blank := true
		for c, h := range headers {
			if h == "" {
				continue
			}
			v := cellText(sh, r, c)
			vals[h] = v
			if v != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, sheetRow{num: r + 1, vals: vals})
	}
	return rows
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate parses permissively; anything unparseable becomes nil rather than
// failing the row.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseInt accepts plain integers and integral floats ("2020.0" from
// spreadsheet number cells).
func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return nil
	}
	n := int(f)
	return &n
}

// parseBool accepts a fixed truthy set, case-insensitively; everything else
// is false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "ya", "y":
		return true
	}
	return false
}

func strOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
