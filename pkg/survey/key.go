package survey

import "strings"

// NormalizeKey canonicalizes a raw subsite identifier for joining:
// surrounding whitespace is trimmed and the text upper-cased. Registry and
// log values go through the same normalization, so two records describe
// the same site exactly when their keys are equal. A missing value yields
// the empty key, which never matches a real site.
func NormalizeKey(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
