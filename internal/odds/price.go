package odds

import (
	"strings"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// NormalizePrice converts fractional odds ("5/2") to decimal ("3.50").
// Decimal text is trimmed and kept as written; anything else is returned
// unchanged.
func NormalizePrice(text string) string {
	s := strings.TrimSpace(text)
	num, den, found := strings.Cut(s, "/")
	if !found {
		return s
	}
	n, err := decimal.NewFromString(strings.TrimSpace(num))
	if err != nil {
		return s
	}
	d, err := decimal.NewFromString(strings.TrimSpace(den))
	if err != nil || d.IsZero() {
		return s
	}
	return n.Div(d).Add(one).StringFixed(2)
}
