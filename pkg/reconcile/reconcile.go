// Package reconcile joins the site registry against the aggregated field
// log and classifies every site's survey outcome. It owns construction of
// the output rows: exactly one per registry site, plus synthetic rows for
// log subsites the registry does not know about. Data-quality flags are
// attached while each row is built; ordering and final sanity checks live
// here as well.
package reconcile

import (
	"sort"

	"github.com/otterlog/countsheet/pkg/aggregate"
	"github.com/otterlog/countsheet/pkg/survey"
)

// placeholderKey shows up when a spreadsheet null is stringified; such
// keys never become synthetic rows.
const placeholderKey = "NAN"

// Reconcile produces one output row per registry site, classified against
// the aggregated log, followed by synthetic NEW SITE rows for log keys
// missing from the registry. Registry input order is preserved; synthetic
// rows are appended in key order so repeated runs are deterministic.
func Reconcile(sites []survey.SiteRecord, aggregates map[string]survey.AggregatedLogEntry, consumed aggregate.ConsumedIDs) []survey.ReconciledRow {
	rows := make([]survey.ReconciledRow, 0, len(sites))
	known := make(map[string]struct{}, len(sites))
	for _, site := range sites {
		known[site.SubsiteKey] = struct{}{}
		agg, ok := aggregates[site.SubsiteKey]
		rows = append(rows, siteRow(site, agg, ok, consumed))
	}

	for _, key := range newSiteKeys(aggregates, known) {
		rows = append(rows, newSiteRow(aggregates[key]))
	}
	return rows
}

// siteRow builds the row for one registry site. The log is authoritative
// for an actually-attempted survey, so the region family follows the
// aggregate for OTTER and MISSED rows; an unsurveyed site keeps its
// registry attributes. The log MML_ID is only trusted on a surveyed row.
func siteRow(site survey.SiteRecord, agg survey.AggregatedLogEntry, hasLog bool, consumed aggregate.ConsumedIDs) survey.ReconciledRow {
	status := classify(site, agg, hasLog, consumed)

	row := survey.ReconciledRow{
		SubsiteKey:   site.SubsiteKey,
		Subsite:      site.Subsite,
		SubsiteID:    site.SubsiteID,
		ParentSite:   site.ParentSite,
		ParentSiteID: site.ParentSiteID,
		MMLID:        site.MMLID,
		Region:       site.Region,
		RegNo:        site.RegNo,
		RCA:          site.RCA,
		Rook:         site.Rook,
		Lat:          site.Lat,
		Lon:          site.Lon,
		Survey:       status,
		SiteMMLID:    site.MMLID,
	}

	if hasLog {
		row.Subsite = agg.Subsite
		row.Priority = agg.Priority
		row.Date = agg.Date
		row.Time = agg.Time
		row.LogCount = agg.Count
		row.Add = agg.Add
		row.Disturbance = agg.Disturbance
		row.SurveyNotes = agg.PassDescription
		row.LogMMLID = agg.MMLID
	}

	if status == survey.StatusOtter || status == survey.StatusMissed {
		row.Region = agg.Region
		row.RegNo = agg.RegNo
		row.RCA = agg.RCA
		row.Rook = agg.Rook
	}
	if status == survey.StatusOtter {
		row.MMLID = agg.MMLID
		row.CountType = countType(agg)
		if agg.HasPass() {
			row.Photo = "Y"
		} else {
			row.Photo = "N"
		}
	}

	if hasLog {
		row.Flag, row.FlagReason = checkMMLID(site, agg)
	}
	return row
}

// classify decides the survey status for a registry site.
func classify(site survey.SiteRecord, agg survey.AggregatedLogEntry, hasLog bool, consumed aggregate.ConsumedIDs) survey.Status {
	switch {
	case hasLog && agg.HasDate():
		return survey.StatusOtter
	case hasLog:
		return survey.StatusMissed
	case consumed.Contains(site.MMLID):
		return survey.StatusSubsite
	default:
		return survey.StatusOutside
	}
}

// countType applies only to surveyed rows: 4 when any count value exists,
// else 3 when a photographic pass was taken.
func countType(agg survey.AggregatedLogEntry) survey.CountType {
	switch {
	case agg.Count != "":
		return survey.CountTypeCount
	case agg.HasPass():
		return survey.CountTypePhoto
	default:
		return survey.CountTypeNone
	}
}

// newSiteRow builds a synthetic row for a log subsite the registry does
// not know. Registry-only attributes stay blank; the row is pre-flagged.
func newSiteRow(agg survey.AggregatedLogEntry) survey.ReconciledRow {
	status := survey.StatusMissed
	if agg.HasDate() {
		status = survey.StatusOtter
	}

	row := survey.ReconciledRow{
		Flag:        survey.FlagNewSite,
		FlagReason:  "subsite missing from site registry",
		SubsiteKey:  agg.SubsiteKey,
		Subsite:     agg.Subsite,
		MMLID:       agg.MMLID,
		Region:      agg.Region,
		RegNo:       agg.RegNo,
		RCA:         agg.RCA,
		Rook:        agg.Rook,
		Priority:    agg.Priority,
		Date:        agg.Date,
		Survey:      status,
		Time:        agg.Time,
		LogCount:    agg.Count,
		Add:         agg.Add,
		Disturbance: agg.Disturbance,
		SurveyNotes: agg.PassDescription,
		LogMMLID:    agg.MMLID,
	}
	if status == survey.StatusOtter {
		row.CountType = countType(agg)
		if agg.HasPass() {
			row.Photo = "Y"
		} else {
			row.Photo = "N"
		}
	}
	return row
}

// newSiteKeys returns the aggregate keys absent from the registry, with
// blank and placeholder keys dropped, in sorted order.
func newSiteKeys(aggregates map[string]survey.AggregatedLogEntry, known map[string]struct{}) []string {
	var keys []string
	for key := range aggregates {
		if key == "" || key == placeholderKey {
			continue
		}
		if _, ok := known[key]; ok {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
