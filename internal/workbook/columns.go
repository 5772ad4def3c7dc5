// Package workbook is the I/O collaborator of the countsheet pipeline:
// it loads the site registry and field-log workbooks into domain records
// and persists the reconciled rows as the countsheet template workbook.
// All decision logic lives upstream; this package only moves cells.
package workbook

import (
	"strings"

	"github.com/otterlog/countsheet/pkg/errors"
)

// Canonical column names of the site registry table.
var registryColumns = []string{
	"SUBSITE", "SUBSITE_ID", "PARENTSITE", "PARENTSITE_ID", "MML_ID",
	"REGION", "REGNO", "RCA", "ROOK", "LAT", "LON",
}

// Canonical column names of the per-year log summary table.
var logColumns = []string{
	"DATE", "MML_ID", "SUBSITE", "PARENTSITE", "TIME", "COUNT", "PASS",
	"PASS DESCRIPTION", "ADD", "DISTURBANCE", "PRIORITY",
	"REGION", "REGNO", "RCA", "ROOK",
}

// OutputColumns is the fixed 35-column schema of the countsheet
// template, in output order. The thirteen blank columns between ADD and
// DISTURBANCE (plus BRANDS and COUNTER) are reserved for manual entry by
// the field counters.
var OutputColumns = []string{
	"FLAGS", "SUBSITE", "SUBSITE_ID", "PARENTSITE", "PARENTSITE_ID",
	"MML_ID", "REGION", "REGNO", "RCA", "ROOK", "LAT", "LON",
	"PRIORITY", "DATE", "SURVEY", "COUNTTYPE", "TIME", "PHOTO",
	"LOG_COUNT", "ADD",
	"FRAME", "BULL", "SAM", "FEM", "JUV", "PUP", "PUP_DEAD", "NP_DEAD",
	"NP_TOTAL", "ALL_COUNT", "COUNTER_NOTES",
	"DISTURBANCE", "BRANDS", "COUNTER", "SURVEY NOTES",
}

// FlaggedColumns is the schema of the flagged-sites side report.
var FlaggedColumns = []string{
	"FLAGS", "SUBSITE", "SITES_MML_ID", "LOG_MML_ID", "REASON",
}

// ColumnCount is the expected width of the countsheet template.
const ColumnCount = 35

// header maps canonical column names to their zero-based cell index.
type header map[string]int

// canonicalizeHeader normalizes a raw header cell for lookup: trimmed,
// upper-cased, inner whitespace collapsed to single spaces. Year-to-year
// variants like "Date" or "Pass  Description" all land on the canonical
// spelling.
func canonicalizeHeader(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// buildHeader resolves a header row against the alias table. The first
// occurrence of a canonical name wins.
func buildHeader(row []string, aliases Aliases) header {
	h := make(header, len(row))
	for i, cell := range row {
		name := aliases.canonical(canonicalizeHeader(cell))
		if name == "" {
			continue
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	return h
}

// require verifies every required column resolved, reporting all missing
// names at once.
func (h header) require(table string, required []string) error {
	var missing []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewColumnError(table, missing)
	}
	return nil
}

// cell returns the named cell of a data row, or "" when the row is short
// or the column unknown.
func (h header) cell(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
