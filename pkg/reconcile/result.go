package reconcile

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/otterlog/countsheet/pkg/survey"
)

// Result is the outcome of one countsheet run: the ordered rows plus the
// tallies surfaced in the textual run summary.
type Result struct {
	Rows []survey.ReconciledRow

	Year        int
	OutputFile  string
	ColumnCount int

	StatusCounts map[survey.Status]int
	FlagCounts   map[survey.Flag]int

	// Warnings carry non-fatal anomalies, e.g. duplicate subsites in the
	// final row set.
	Warnings []string

	StartTime time.Time
	Duration  time.Duration
}

// statusNotes explain each classification in the summary text.
var statusNotes = map[survey.Status]string{
	survey.StatusOtter:   "surveyed",
	survey.StatusMissed:  "planned but not surveyed",
	survey.StatusSubsite: "counted within a sibling site",
	survey.StatusOutside: "not planned",
}

// NewResult creates a result for one survey year.
func NewResult(year int) *Result {
	return &Result{
		Year:         year,
		StatusCounts: make(map[survey.Status]int),
		FlagCounts:   make(map[survey.Flag]int),
		StartTime:    time.Now(),
	}
}

// Collect stores the final row set and tallies statuses and flags.
func (r *Result) Collect(rows []survey.ReconciledRow) {
	r.Rows = rows
	for _, row := range rows {
		r.StatusCounts[row.Survey]++
		if row.Flag != survey.FlagNone {
			r.FlagCounts[row.Flag]++
		}
	}
}

// Flagged returns the rows carrying any flag, for the side report.
func (r *Result) Flagged() []survey.ReconciledRow {
	var flagged []survey.ReconciledRow
	for _, row := range r.Rows {
		if row.Flag != survey.FlagNone {
			flagged = append(flagged, row)
		}
	}
	return flagged
}

// Finalize records the run duration.
func (r *Result) Finalize() {
	r.Duration = time.Since(r.StartTime)
}

// Summary renders the human-readable run report printed after assembly.
func (r *Result) Summary() string {
	title := cases.Title(language.English)
	var b strings.Builder

	heading := fmt.Sprintf("Countsheet Generation Summary for %d", r.Year)
	b.WriteString(heading + "\n")
	b.WriteString(strings.Repeat("=", len(heading)) + "\n")
	fmt.Fprintf(&b, "Total sites in template: %d\n", len(r.Rows))
	for _, status := range []survey.Status{survey.StatusOtter, survey.StatusMissed, survey.StatusSubsite, survey.StatusOutside} {
		fmt.Fprintf(&b, "  - %s (%s): %d\n",
			title.String(strings.ToLower(status.String())), statusNotes[status], r.StatusCounts[status])
	}

	b.WriteString("\nFlags raised:\n")
	for _, flag := range []survey.Flag{survey.FlagNewSite, survey.FlagNeedsReview} {
		label := strings.ReplaceAll(strings.ToLower(flag.String()), "_", " ")
		fmt.Fprintf(&b, "  - %s: %d sites\n", title.String(label), r.FlagCounts[flag])
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	fmt.Fprintf(&b, "\nColumn count: %d\n", r.ColumnCount)
	fmt.Fprintf(&b, "Output file: %s\n", r.OutputFile)
	return b.String()
}
