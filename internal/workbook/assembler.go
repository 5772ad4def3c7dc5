package workbook

import (
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/otterlog/countsheet/pkg/errors"
	"github.com/otterlog/countsheet/pkg/survey"
)

const (
	sheetName        = "COUNTSHEET"
	flaggedSheetName = "Flagged Sites"

	// maxColWidth caps the auto-sized column width.
	maxColWidth = 40

	dateNumFmt = "m/dd"
)

// Assembler persists the ordered row set as the countsheet template
// workbook. Rows carrying any flag additionally land on a side sheet so
// reviewers see them in one place.
type Assembler struct {
	logger *zerolog.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(logger *zerolog.Logger) *Assembler {
	if logger == nil {
		logger = &zerolog.Logger{}
	}
	return &Assembler{logger: logger}
}

// Write builds the workbook at path: the 35-column countsheet sheet with
// header styling, frozen top row, highlighted flagged rows and auto-sized
// columns, plus the flagged-sites sheet when any row carries a flag.
func (a *Assembler) Write(path string, rows, flagged []survey.ReconciledRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := a.writeCountsheet(f, rows); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if len(flagged) > 0 {
		if err := a.writeFlagged(f, flagged); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}

	a.logger.Info().
		Str("path", path).
		Int("rows", len(rows)).
		Int("flagged", len(flagged)).
		Msg("Assembled countsheet workbook")
	return nil
}

func (a *Assembler) writeCountsheet(f *excelize.File, rows []survey.ReconciledRow) error {
	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	headerCells := make([]any, len(OutputColumns))
	widths := make([]int, len(OutputColumns))
	for i, name := range OutputColumns {
		headerCells[i] = name
		widths[i] = len(name)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return err
	}

	dateCol := columnIndex("DATE") + 1
	for n, row := range rows {
		cells := rowCells(row)
		anchor, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, anchor, &cells); err != nil {
			return err
		}

		flaggedRow := row.Flag != survey.FlagNone
		if flaggedRow {
			last, err := excelize.CoordinatesToCellName(len(cells), n+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetName, anchor, last, styles.flagged); err != nil {
				return err
			}
		}
		dateCell, err := excelize.CoordinatesToCellName(dateCol, n+2)
		if err != nil {
			return err
		}
		dateStyle := styles.date
		if flaggedRow {
			dateStyle = styles.flaggedDate
		}
		if err := f.SetCellStyle(sheetName, dateCell, dateCell, dateStyle); err != nil {
			return err
		}

		for i, c := range cells {
			if s, ok := c.(string); ok && len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(OutputColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, styles.header); err != nil {
		return err
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if w+2 > maxColWidth {
			w = maxColWidth - 2
		}
		if err := f.SetColWidth(sheetName, name, name, float64(w+2)); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) writeFlagged(f *excelize.File, flagged []survey.ReconciledRow) error {
	if _, err := f.NewSheet(flaggedSheetName); err != nil {
		return err
	}

	headerCells := make([]any, len(FlaggedColumns))
	for i, name := range FlaggedColumns {
		headerCells[i] = name
	}
	if err := f.SetSheetRow(flaggedSheetName, "A1", &headerCells); err != nil {
		return err
	}

	for n, row := range flagged {
		anchor, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		cells := []any{
			row.Flag.String(),
			row.Subsite,
			row.SiteMMLID,
			row.LogMMLID,
			row.FlagReason,
		}
		if err := f.SetSheetRow(flaggedSheetName, anchor, &cells); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(FlaggedColumns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(flaggedSheetName, "A1", last, bold)
}

// rowCells renders one reconciled row in OutputColumns order. The
// thirteen manual-entry columns stay blank for the field counters.
func rowCells(row survey.ReconciledRow) []any {
	var date any = ""
	if row.Date != nil {
		date = *row.Date
	}
	var countType any = ""
	if row.CountType != survey.CountTypeNone {
		countType = int(row.CountType)
	}
	return []any{
		row.Flag.String(),
		row.Subsite,
		row.SubsiteID,
		row.ParentSite,
		row.ParentSiteID,
		row.MMLID,
		row.Region,
		row.RegNo,
		row.RCA,
		row.Rook,
		row.Lat,
		row.Lon,
		row.Priority,
		date,
		row.Survey.String(),
		countType,
		row.Time,
		row.Photo,
		row.LogCount,
		row.Add,
		"", "", "", "", "", "", "", "", "", "", "", // manual-entry block
		row.Disturbance,
		"", // BRANDS
		"", // COUNTER
		row.SurveyNotes,
	}
}

// columnIndex returns the zero-based position of a canonical output
// column.
func columnIndex(name string) int {
	for i, c := range OutputColumns {
		if c == name {
			return i
		}
	}
	return -1
}

type sheetStyles struct {
	header      int
	date        int
	flagged     int
	flaggedDate int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	numFmt := dateNumFmt
	yellow := excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return sheetStyles{}, err
	}
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return sheetStyles{}, err
	}
	flagged, err := f.NewStyle(&excelize.Style{Fill: yellow})
	if err != nil {
		return sheetStyles{}, err
	}
	flaggedDate, err := f.NewStyle(&excelize.Style{Fill: yellow, CustomNumFmt: &numFmt})
	if err != nil {
		return sheetStyles{}, err
	}
	return sheetStyles{header: header, date: date, flagged: flagged, flaggedDate: flaggedDate}, nil
}
