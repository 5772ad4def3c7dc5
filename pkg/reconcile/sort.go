package reconcile

import (
	"sort"
	"strings"

	"github.com/otterlog/countsheet/pkg/survey"
)

// Sort orders the final row set: survey status rank first, then date
// ascending with undated rows last, then upper-cased subsite. The sort is
// stable, so rows equal on all three keys keep registry input order and
// repeated runs produce identical output.
func Sort(rows []survey.ReconciledRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Survey.Rank() != b.Survey.Rank() {
			return a.Survey.Rank() < b.Survey.Rank()
		}
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		if a.HasDate() && !a.Date.Equal(*b.Date) {
			return a.Date.Before(*b.Date)
		}
		return strings.ToUpper(a.Subsite) < strings.ToUpper(b.Subsite)
	})
}
