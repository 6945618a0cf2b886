package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a monetary value with thousands separators and
// exactly two decimal places. The stored value keeps full precision; only
// the display is fixed to two decimals.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(fracPart)

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
