package survey

// SplitMMLID splits a mark-recapture identifier into its leading numeric
// prefix and the remaining alphabetic suffix, e.g. "183A" -> ("183", "A").
// An identifier with no leading digits has an empty prefix and the whole
// text as suffix.
func SplitMMLID(id string) (prefix, suffix string) {
	i := 0
	for i < len(id) && id[i] >= '0' && id[i] <= '9' {
		i++
	}
	return id[:i], id[i:]
}

// MMLIDPrefix returns the comparable form of an identifier: the leading
// numeric prefix when one exists, otherwise the whole string. "248A" and
// "248B" compare equal; "NEW" compares as "NEW".
func MMLIDPrefix(id string) string {
	prefix, _ := SplitMMLID(id)
	if prefix == "" {
		return id
	}
	return prefix
}
