package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/otterlog/countsheet/pkg/survey"
)

func row(subsite string, status survey.Status, d *time.Time) survey.ReconciledRow {
	return survey.ReconciledRow{
		Subsite:    subsite,
		SubsiteKey: survey.NormalizeKey(subsite),
		Survey:     status,
		Date:       d,
	}
}

func subsites(rows []survey.ReconciledRow) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Subsite
	}
	return names
}

func TestSortByStatusRank(t *testing.T) {
	rows := []survey.ReconciledRow{
		row("D", survey.StatusOutside, nil),
		row("C", survey.StatusSubsite, nil),
		row("A", survey.StatusOtter, date(2024, time.June, 1)),
		row("B", survey.StatusMissed, nil),
	}

	Sort(rows)
	assert.Equal(t, []string{"A", "B", "C", "D"}, subsites(rows))
}

func TestSortByDateWithinStatus(t *testing.T) {
	rows := []survey.ReconciledRow{
		row("LATE", survey.StatusOtter, date(2024, time.August, 9)),
		row("UNDATED", survey.StatusOtter, nil),
		row("EARLY", survey.StatusOtter, date(2024, time.May, 2)),
	}

	Sort(rows)
	// Undated rows sort after every dated one.
	assert.Equal(t, []string{"EARLY", "LATE", "UNDATED"}, subsites(rows))
}

func TestSortBySubsiteWithinDate(t *testing.T) {
	d := date(2024, time.June, 15)
	rows := []survey.ReconciledRow{
		row("zeta", survey.StatusOtter, d),
		row("ALPHA", survey.StatusOtter, d),
		row("Mid", survey.StatusOtter, d),
	}

	Sort(rows)
	assert.Equal(t, []string{"ALPHA", "Mid", "zeta"}, subsites(rows))
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	d := date(2024, time.June, 15)
	rows := []survey.ReconciledRow{
		{Subsite: "SAME", SubsiteID: "first", Survey: survey.StatusOtter, Date: d},
		{Subsite: "SAME", SubsiteID: "second", Survey: survey.StatusOtter, Date: d},
	}

	Sort(rows)
	// Equal keys keep input order.
	assert.Equal(t, "first", rows[0].SubsiteID)
	assert.Equal(t, "second", rows[1].SubsiteID)

	before := make([]survey.ReconciledRow, len(rows))
	copy(before, rows)
	Sort(rows)
	assert.Equal(t, before, rows)
}
