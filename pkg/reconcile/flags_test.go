package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otterlog/countsheet/pkg/survey"
)

func TestCheckMMLID(t *testing.T) {
	tests := []struct {
		name       string
		siteID     string
		logID      string
		flag       survey.Flag
		wantReason bool
	}{
		{name: "matching ids", siteID: "200", logID: "200", flag: survey.FlagNone},
		{name: "same prefix different suffix", siteID: "200A", logID: "200B", flag: survey.FlagNone},
		{name: "different prefixes", siteID: "200A", logID: "201B", flag: survey.FlagNeedsReview, wantReason: true},
		{name: "marked new", siteID: "200", logID: "NEW", flag: survey.FlagNewSite, wantReason: true},
		{name: "marked new lower case", siteID: "200", logID: "new", flag: survey.FlagNewSite, wantReason: true},
		{name: "blank site id", siteID: "", logID: "200", flag: survey.FlagNone},
		{name: "blank log id", siteID: "200", logID: "", flag: survey.FlagNone},
		{name: "non numeric ids compare whole", siteID: "ROCKS", logID: "ROCKS", flag: survey.FlagNone},
		{name: "non numeric ids differ", siteID: "ROCKS", logID: "REEF", flag: survey.FlagNeedsReview, wantReason: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := survey.SiteRecord{MMLID: tt.siteID}
			agg := survey.AggregatedLogEntry{LogEntry: survey.LogEntry{MMLID: tt.logID}}

			flag, reason := checkMMLID(s, agg)
			assert.Equal(t, tt.flag, flag)
			if tt.wantReason {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func TestCheckMMLIDMismatchReasonCarriesBothIDs(t *testing.T) {
	s := survey.SiteRecord{MMLID: "200A"}
	agg := survey.AggregatedLogEntry{LogEntry: survey.LogEntry{MMLID: "201B"}}

	flag, reason := checkMMLID(s, agg)
	assert.Equal(t, survey.FlagNeedsReview, flag)
	assert.Contains(t, reason, "200A")
	assert.Contains(t, reason, "201B")
}

func TestCheckMMLIDNewWinsOverMismatch(t *testing.T) {
	// The NEW marker check runs first, so a NEW id never double-flags as
	// a prefix mismatch.
	s := survey.SiteRecord{MMLID: "200"}
	agg := survey.AggregatedLogEntry{LogEntry: survey.LogEntry{MMLID: "NEW"}}

	flag, reason := checkMMLID(s, agg)
	assert.Equal(t, survey.FlagNewSite, flag)
	assert.Equal(t, "MML_ID marked as NEW", reason)
}

func TestReconcileFlagsMismatch(t *testing.T) {
	entry := survey.LogEntry{
		SubsiteKey: "D4", Subsite: "D4",
		Date: date(2024, time.June, 10), MMLID: "201B",
	}
	rows := Reconcile([]survey.SiteRecord{site("D4", "200A")}, aggOf(entry), nil)
	require.Len(t, rows, 1)

	assert.Equal(t, survey.FlagNeedsReview, rows[0].Flag)
	assert.Equal(t, "200A", rows[0].SiteMMLID)
	assert.Equal(t, "201B", rows[0].LogMMLID)
}

func TestReconcileNoFlagForSuffixOnlyDifference(t *testing.T) {
	entry := survey.LogEntry{
		SubsiteKey: "D4", Subsite: "D4",
		Date: date(2024, time.June, 10), MMLID: "200B",
	}
	rows := Reconcile([]survey.SiteRecord{site("D4", "200A")}, aggOf(entry), nil)
	require.Len(t, rows, 1)
	assert.Equal(t, survey.FlagNone, rows[0].Flag)
}
