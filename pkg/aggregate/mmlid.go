package aggregate

import (
	"strings"

	"github.com/otterlog/countsheet/pkg/survey"
)

// combineMMLIDs reconciles the MML identifiers carried by one subsite's
// passes. When every distinct identifier shares the same numeric prefix,
// the suffixes collapse onto it ("183A" + "183B" -> "183A-B") and each
// individual identifier is recorded as consumed so the reconciler can
// mark the sibling registry sites whose numbers were folded in. When the
// prefixes disagree the first distinct value wins.
func combineMMLIDs(group []survey.LogEntry, consumed ConsumedIDs) string {
	distinct := distinctMMLIDs(group)
	if len(distinct) == 0 {
		return ""
	}
	if len(distinct) == 1 {
		return distinct[0]
	}

	prefix, _ := survey.SplitMMLID(distinct[0])
	if prefix == "" {
		return distinct[0]
	}
	var suffixes []string
	for _, id := range distinct {
		p, s := survey.SplitMMLID(id)
		if p != prefix {
			return distinct[0]
		}
		if s != "" {
			suffixes = append(suffixes, s)
		}
	}

	for _, id := range distinct {
		consumed.add(id)
	}
	return prefix + strings.Join(suffixes, "-")
}

// distinctMMLIDs returns the non-blank identifiers of a group in first
// appearance order, without duplicates.
func distinctMMLIDs(group []survey.LogEntry) []string {
	seen := make(map[string]struct{}, len(group))
	var distinct []string
	for _, e := range group {
		id := strings.TrimSpace(e.MMLID)
		if id == "" {
			continue
		}
		key := survey.NormalizeKey(id)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}
