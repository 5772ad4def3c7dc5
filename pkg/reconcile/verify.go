package reconcile

import (
	"fmt"
	"sort"

	"github.com/otterlog/countsheet/pkg/errors"
	"github.com/otterlog/countsheet/pkg/survey"
)

// Verify runs the post-assembly sanity assertions. A status or count type
// outside its closed domain means the engine itself is broken, so those
// return an error and the run aborts before a corrupt report is written.
// Duplicate subsite keys in the final row set come back as warnings: the
// reconciler emits one row per registry record, so duplicates can only be
// inherited from a defective registry, which is an input problem rather
// than an engine one.
func Verify(rows []survey.ReconciledRow) ([]string, error) {
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		if !row.Survey.Valid() {
			return nil, errors.NewValidationError("survey", row.Survey,
				fmt.Sprintf("invalid survey status on subsite %q", row.Subsite))
		}
		if !row.CountType.Valid() {
			return nil, errors.NewValidationError("counttype", row.CountType,
				fmt.Sprintf("invalid count type on subsite %q", row.Subsite))
		}
		if key := survey.NormalizeKey(row.Subsite); key != "" {
			seen[key]++
		}
	}

	var dups []string
	for key, n := range seen {
		if n > 1 {
			dups = append(dups, key)
		}
	}
	sort.Strings(dups)

	var warnings []string
	for _, key := range dups {
		warnings = append(warnings, fmt.Sprintf("subsite %q appears %d times in the final row set", key, seen[key]))
	}
	return warnings, nil
}
