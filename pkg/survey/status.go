package survey

// Status classifies how a site relates to one year's survey effort.
type Status int

// Survey statuses in output rank order.
const (
	// StatusOtter means the site was surveyed: a log observation with a
	// date exists.
	StatusOtter Status = iota

	// StatusMissed means a pass was logged but never dated, i.e. planned
	// but not executed.
	StatusMissed

	// StatusSubsite means the site itself has no observation but its
	// MML_ID was consumed into a sibling's combined line.
	StatusSubsite

	// StatusOutside means the site was not part of this year's plan.
	StatusOutside
)

// String returns the cell text written to the SURVEY column.
func (s Status) String() string {
	switch s {
	case StatusOtter:
		return "OTTER"
	case StatusMissed:
		return "MISSED"
	case StatusSubsite:
		return "SUBSITE"
	case StatusOutside:
		return "OUTSIDE"
	default:
		return "UNKNOWN"
	}
}

// Rank returns the sort rank of the status. Lower sorts first.
func (s Status) Rank() int { return int(s) }

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool { return s >= StatusOtter && s <= StatusOutside }

// CountType records how a surveyed site was counted.
type CountType int

// Count types. The zero value renders as a blank cell.
const (
	CountTypeNone  CountType = 0
	CountTypePhoto CountType = 3
	CountTypeCount CountType = 4
)

// Cell returns the cell text written to the COUNTTYPE column.
func (c CountType) Cell() string {
	switch c {
	case CountTypePhoto:
		return "3"
	case CountTypeCount:
		return "4"
	default:
		return ""
	}
}

// Valid reports whether c is blank, 3, or 4.
func (c CountType) Valid() bool {
	return c == CountTypeNone || c == CountTypePhoto || c == CountTypeCount
}

// Flag is a data-quality annotation attached to an output row.
type Flag int

// Flags. The zero value means the row is clean.
const (
	FlagNone Flag = iota

	// FlagNewSite marks a subsite present in the log but absent from the
	// registry, or explicitly marked NEW by the field crew.
	FlagNewSite

	// FlagNeedsReview marks a row whose registry and log identifiers
	// disagree and needs a human look.
	FlagNeedsReview
)

// String returns the cell text written to the FLAGS column.
func (f Flag) String() string {
	switch f {
	case FlagNewSite:
		return "NEW SITE"
	case FlagNeedsReview:
		return "NEEDS_REVIEW"
	default:
		return ""
	}
}
