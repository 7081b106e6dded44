package translate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey collapses whitespace and applies NFC, so "Lakers" typed with
// decomposed accents or double spaces shares one cache entry.
func NormalizeKey(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}
