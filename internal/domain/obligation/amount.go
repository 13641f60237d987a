package obligation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a currency amount such as "150", "150.5", "150,50" or
// "1.234,56". Anything unparsable is 0 so sums stay defined.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && comma > dot:
		// Brazilian notation: dots group thousands, comma separates cents.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
