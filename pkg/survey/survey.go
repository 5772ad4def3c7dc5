// Package survey defines the value types that flow through the countsheet
// pipeline: registry sites, raw field-log entries, aggregated observations,
// and the reconciled output rows. All types are plain values constructed
// once per run and handed forward; no stage mutates a record it did not
// build itself.
package survey

import (
	"strconv"
	"strings"
	"time"
)

// SiteRecord is one physical survey location from the site registry.
// SubsiteKey is the normalized join key; Subsite preserves the raw text
// for output. Lat/Lon pass through untouched, so they stay strings.
type SiteRecord struct {
	SubsiteKey   string
	Subsite      string
	SubsiteID    string
	ParentSite   string
	ParentSiteID string
	MMLID        string
	Region       string
	RegNo        string
	RCA          string
	Rook         string
	Lat          string
	Lon          string
}

// LogEntry is one raw observation pass from the per-year log summary.
// A nil Date means the pass was planned but never executed. Count and
// Time keep their raw cell text; numeric interpretation goes through
// CountValue and TimeValue so malformed cells degrade to absent instead
// of failing the run.
type LogEntry struct {
	SubsiteKey      string
	Subsite         string
	Date            *time.Time
	Time            string
	Count           string
	Pass            string
	PassDescription string
	Add             string
	Disturbance     string
	Priority        string
	MMLID           string
	Region          string
	RegNo           string
	RCA             string
	Rook            string
}

// HasDate reports whether the pass was actually executed.
func (e LogEntry) HasDate() bool { return e.Date != nil }

// HasCount reports whether the entry carries a numeric count.
func (e LogEntry) HasCount() bool {
	_, ok := e.CountValue()
	return ok
}

// HasPass reports whether a photographic pass was taken.
func (e LogEntry) HasPass() bool { return strings.TrimSpace(e.Pass) != "" }

// CountValue parses the raw count cell as a number.
func (e LogEntry) CountValue() (float64, bool) {
	return parseNumeric(e.Count)
}

// TimeValue parses the raw time cell as a number for pass ordering.
func (e LogEntry) TimeValue() (float64, bool) {
	return parseNumeric(e.Time)
}

// AggregatedLogEntry is the single logical observation for one subsite
// after all of its passes are collapsed. Passes records how many log
// entries were folded in; a singleton aggregate is its entry verbatim.
type AggregatedLogEntry struct {
	LogEntry
	Passes int
}

// ReconciledRow is one output row of the countsheet template. Exactly one
// exists per registry site, plus one synthetic row per log subsite missing
// from the registry. SiteMMLID and LogMMLID keep both raw identifiers so
// the flagged-sites report can show them side by side.
type ReconciledRow struct {
	Flag       Flag
	FlagReason string

	SubsiteKey   string
	Subsite      string
	SubsiteID    string
	ParentSite   string
	ParentSiteID string
	MMLID        string
	Region       string
	RegNo        string
	RCA          string
	Rook         string
	Lat          string
	Lon          string
	Priority     string

	Date      *time.Time
	Survey    Status
	CountType CountType
	Time      string
	Photo     string
	LogCount  string
	Add       string

	Disturbance string
	SurveyNotes string

	SiteMMLID string
	LogMMLID  string
}

// HasDate reports whether the row carries a survey date.
func (r ReconciledRow) HasDate() bool { return r.Date != nil }

func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
