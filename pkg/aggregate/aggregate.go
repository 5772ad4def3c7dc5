// Package aggregate collapses the raw field-log entries for one survey
// year into at most one logical observation per subsite. A subsite may be
// visited several times in a season (photographic passes, boat counts, or
// both); downstream reconciliation wants a single line per site, so the
// passes are merged here: counts are joined, addenda and disturbance notes
// concatenated, and split MML identifiers combined.
//
// Besides the aggregate map, Aggregate reports which individual MML
// identifiers were consumed into a combined line. The reconciler uses that
// set to classify registry sites whose numbers were folded into a sibling.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/otterlog/countsheet/pkg/survey"
)

// doNotUseMarker flags log rows the field crew voided. Matched
// case-insensitively against the raw subsite text.
const doNotUseMarker = "DO NOT USE"

// disturbedPrefix is stripped from repeated disturbance notes so the
// merged text reads "Disturbed by boat + eagle" rather than
// "Disturbed by boat + Disturbed by eagle".
const disturbedPrefix = "Disturbed "

// ConsumedIDs is the set of individual MML identifiers that were folded
// into a combined aggregate line, keyed by normalized identifier.
type ConsumedIDs map[string]struct{}

// Contains reports whether id was consumed into a combined line.
func (c ConsumedIDs) Contains(id string) bool {
	_, ok := c[survey.NormalizeKey(id)]
	return ok
}

func (c ConsumedIDs) add(id string) {
	if key := survey.NormalizeKey(id); key != "" {
		c[key] = struct{}{}
	}
}

// DropDoNotUse removes log rows whose subsite text carries the
// do-not-use marker. Voided rows never reach aggregation.
func DropDoNotUse(entries []survey.LogEntry) []survey.LogEntry {
	kept := make([]survey.LogEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToUpper(e.Subsite), doNotUseMarker) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Aggregate collapses cleansed log entries into one observation per
// subsite key. Input order is preserved within each group until the
// passes are ordered by time. Malformed numeric cells degrade to absent;
// aggregation never fails.
func Aggregate(entries []survey.LogEntry) (map[string]survey.AggregatedLogEntry, ConsumedIDs) {
	groups := make(map[string][]survey.LogEntry)
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, seen := groups[e.SubsiteKey]; !seen {
			order = append(order, e.SubsiteKey)
		}
		groups[e.SubsiteKey] = append(groups[e.SubsiteKey], e)
	}

	aggregates := make(map[string]survey.AggregatedLogEntry, len(groups))
	consumed := make(ConsumedIDs)
	for _, key := range order {
		aggregates[key] = collapse(groups[key], consumed)
	}
	return aggregates, consumed
}

// collapse merges one subsite's passes into a single observation.
func collapse(group []survey.LogEntry, consumed ConsumedIDs) survey.AggregatedLogEntry {
	sortPasses(group)

	if len(group) == 1 {
		return survey.AggregatedLogEntry{LogEntry: group[0], Passes: 1}
	}

	hasPhoto := false
	hasCount := false
	for _, e := range group {
		hasPhoto = hasPhoto || e.HasPass()
		hasCount = hasCount || e.HasCount()
	}

	var base survey.LogEntry
	var add string
	switch {
	case hasPhoto && hasCount:
		// Mixed season: the photo pass is the record of note, the boat
		// counts ride along as COUNT tokens in the addendum.
		base = earliestPhoto(group)
		add = joinAdds(group, countTokens(group))
	case hasCount:
		base = group[0]
		base.Count = joinCounts(group)
		add = joinAdds(group, nil)
	default:
		base = group[0]
		add = joinAdds(group, nil)
	}

	agg := survey.AggregatedLogEntry{LogEntry: base, Passes: len(group)}
	agg.Add = add
	agg.Disturbance = joinDisturbances(group)
	agg.PassDescription = joinDescriptions(group)
	agg.MMLID = combineMMLIDs(group, consumed)
	return agg
}

// sortPasses orders a group by numeric time ascending. Entries whose time
// does not parse sort after all parseable ones but keep their relative
// order, so the sort must be stable.
func sortPasses(group []survey.LogEntry) {
	sort.SliceStable(group, func(i, j int) bool {
		ti, iok := group[i].TimeValue()
		tj, jok := group[j].TimeValue()
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti < tj
	})
}

func earliestPhoto(group []survey.LogEntry) survey.LogEntry {
	for _, e := range group {
		if e.HasPass() {
			return e
		}
	}
	return group[0]
}

// countTokens renders every count-only pass as a "COUNT n" token.
func countTokens(group []survey.LogEntry) []string {
	var tokens []string
	for _, e := range group {
		if e.HasPass() {
			continue
		}
		if v, ok := e.CountValue(); ok {
			tokens = append(tokens, fmt.Sprintf("COUNT %s", formatCount(v)))
		}
	}
	return tokens
}

// joinCounts joins every numeric count in the group with "+", e.g. "12+7".
func joinCounts(group []survey.LogEntry) string {
	var parts []string
	for _, e := range group {
		if v, ok := e.CountValue(); ok {
			parts = append(parts, formatCount(v))
		}
	}
	return strings.Join(parts, "+")
}

// joinAdds concatenates every non-blank addendum, normalized through
// normalizeAdd, followed by any extra tokens, joined by " + ".
func joinAdds(group []survey.LogEntry, extra []string) string {
	var parts []string
	for _, e := range group {
		if strings.TrimSpace(e.Add) == "" {
			continue
		}
		parts = append(parts, normalizeAdd(e.Add))
	}
	parts = append(parts, extra...)
	return strings.Join(parts, " + ")
}

// normalizeAdd strips the leading non-digit characters from an addendum
// and parses the remainder as an integer, so "ca 12" becomes "12".
// Values with no parseable number pass through trimmed but unchanged.
func normalizeAdd(raw string) string {
	s := strings.TrimSpace(raw)
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return s
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[i:]))
	if err != nil {
		return s
	}
	return strconv.Itoa(n)
}

// joinDisturbances concatenates non-blank disturbance notes with " + ",
// dropping the repeated "Disturbed " prefix from every note but the first.
func joinDisturbances(group []survey.LogEntry) string {
	var parts []string
	for _, e := range group {
		d := strings.TrimSpace(e.Disturbance)
		if d == "" {
			continue
		}
		if len(parts) > 0 {
			d = strings.TrimPrefix(d, disturbedPrefix)
		}
		parts = append(parts, d)
	}
	return strings.Join(parts, " + ")
}

func joinDescriptions(group []survey.LogEntry) string {
	var parts []string
	for _, e := range group {
		if d := strings.TrimSpace(e.PassDescription); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, "; ")
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
