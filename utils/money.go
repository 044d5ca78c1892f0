// utils/money.go
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount like "KES 12,345.67" for error messages and
// reminder texts. Negative amounts keep the sign before the digits.
func FormatMoney(currency string, amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return currency + " " + sign + b.String() + "." + parts[1]
}
