package workbook

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/otterlog/countsheet/pkg/errors"
	"github.com/otterlog/countsheet/pkg/survey"
)

// dateLayouts are tried in order when interpreting a date cell. excelize
// returns formatted strings, so the layout varies with how the workbook
// formatted the column. Unparseable dates degrade to absent.
var dateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"01-02-06",
	"2006-01-02",
	"1/2/06 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Loader reads the input workbooks into domain records. The first sheet
// of each workbook is the table; row one is the header.
type Loader struct {
	aliases Aliases
	logger  *zerolog.Logger
}

// NewLoader creates a Loader with the given alias table.
func NewLoader(aliases Aliases, logger *zerolog.Logger) *Loader {
	if logger == nil {
		logger = &zerolog.Logger{}
	}
	return &Loader{aliases: aliases, logger: logger}
}

// Sites loads the site registry. A missing file or missing required
// column is a structural error; the run must not start without them.
func (l *Loader) Sites(path string) ([]survey.SiteRecord, error) {
	h, rows, err := l.open(path, "site registry", registryColumns)
	if err != nil {
		return nil, err
	}

	sites := make([]survey.SiteRecord, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		raw := h.cell(row, "SUBSITE")
		sites = append(sites, survey.SiteRecord{
			SubsiteKey:   survey.NormalizeKey(raw),
			Subsite:      raw,
			SubsiteID:    h.cell(row, "SUBSITE_ID"),
			ParentSite:   h.cell(row, "PARENTSITE"),
			ParentSiteID: h.cell(row, "PARENTSITE_ID"),
			MMLID:        h.cell(row, "MML_ID"),
			Region:       h.cell(row, "REGION"),
			RegNo:        h.cell(row, "REGNO"),
			RCA:          h.cell(row, "RCA"),
			Rook:         h.cell(row, "ROOK"),
			Lat:          h.cell(row, "LAT"),
			Lon:          h.cell(row, "LON"),
		})
	}
	l.logger.Info().Str("path", path).Int("rows", len(sites)).Msg("Loaded site registry")
	return sites, nil
}

// Log loads one year's field-log summary.
func (l *Loader) Log(path string) ([]survey.LogEntry, error) {
	h, rows, err := l.open(path, "log summary", logColumns)
	if err != nil {
		return nil, err
	}

	entries := make([]survey.LogEntry, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		raw := h.cell(row, "SUBSITE")
		entries = append(entries, survey.LogEntry{
			SubsiteKey:      survey.NormalizeKey(raw),
			Subsite:         raw,
			Date:            parseDate(h.cell(row, "DATE")),
			Time:            h.cell(row, "TIME"),
			Count:           h.cell(row, "COUNT"),
			Pass:            h.cell(row, "PASS"),
			PassDescription: h.cell(row, "PASS DESCRIPTION"),
			Add:             h.cell(row, "ADD"),
			Disturbance:     h.cell(row, "DISTURBANCE"),
			Priority:        h.cell(row, "PRIORITY"),
			MMLID:           h.cell(row, "MML_ID"),
			Region:          h.cell(row, "REGION"),
			RegNo:           h.cell(row, "REGNO"),
			RCA:             h.cell(row, "RCA"),
			Rook:            h.cell(row, "ROOK"),
		})
	}
	l.logger.Info().Str("path", path).Int("rows", len(entries)).Msg("Loaded log summary")
	return entries, nil
}

// open reads the first sheet of a workbook, validates its header, and
// returns the resolved header with the data rows.
func (l *Loader) open(path, label string, required []string) (header, [][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, errors.NewFileNotFoundError(label, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.WrapParse("xlsx", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.NewColumnError(label, required)
	}

	h := buildHeader(rows[0], l.aliases)
	if err := h.require(label, required); err != nil {
		return nil, nil, err
	}
	return h, rows[1:], nil
}

// parseDate interprets a date cell, trying each known layout. A blank or
// unparseable cell means the pass has no date.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
