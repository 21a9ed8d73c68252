package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts an upstream amount string into a decimal.
// Bank feeds deliver amounts in mixed shapes: "1,250.00", "₦1,250.00",
// "NGN 1,250.00", "(40.00)" for debits on some statements, or garbage.
// A row with an unparseable amount contributes zero rather than failing
// the page, so Parse never returns an error.
func Parse(s string) decimal.Decimal {
	d, _ := ParseStrict(s)
	return d
}

// ParseStrict behaves like Parse but reports whether the input was a
// well-formed amount.
func ParseStrict(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	// Strip currency markers and digit grouping
	for _, prefix := range []string{"NGN", "USD", "GBP", "EUR"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimLeft(s, "₦$£€ ")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// Format renders a decimal as a display amount with two decimal places
// and comma digit grouping, e.g. 1250 -> "1,250.00".
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
