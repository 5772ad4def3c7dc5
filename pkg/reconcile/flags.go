package reconcile

import (
	"fmt"
	"strings"

	"github.com/otterlog/countsheet/pkg/survey"
)

// newMarker is the literal the field crew writes into MML_ID when a
// subsite is new and has no assigned number yet.
const newMarker = "NEW"

// checkMMLID compares the registry and log identifiers for a site that
// has a log observation. The checks are mutually exclusive and evaluated
// in order; the first match wins, so a row carries at most one reason.
func checkMMLID(site survey.SiteRecord, agg survey.AggregatedLogEntry) (survey.Flag, string) {
	logID := strings.TrimSpace(agg.MMLID)
	if strings.EqualFold(logID, newMarker) {
		return survey.FlagNewSite, "MML_ID marked as NEW"
	}

	siteID := strings.TrimSpace(site.MMLID)
	if siteID == "" || logID == "" {
		return survey.FlagNone, ""
	}
	// Identifiers differing only in alphabetic suffix describe sub-units
	// of the same physical site, so only the numeric prefixes compare.
	if survey.MMLIDPrefix(siteID) != survey.MMLIDPrefix(logID) {
		return survey.FlagNeedsReview,
			fmt.Sprintf("MML_ID mismatch: sites %q vs log %q", siteID, logID)
	}
	return survey.FlagNone, ""
}
