package shared

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount the way the storefront shows prices:
// currency symbol, thousands separators and two decimals ($1,234.50).
func FormatMoney(currency string, value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
	}
	s := groupThousands(value.Abs().StringFixed(2))

	code := strings.ToUpper(strings.TrimSpace(currency))
	switch code {
	case "":
		return sign + s
	case "USD", "EUR", "GBP", "TRY":
		return sign + currencySymbol(code) + s
	default:
		return sign + s + " " + code
	}
}

func currencySymbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "TRY":
		return "₺"
	default:
		return ""
	}
}

func groupThousands(fixed string) string {
	intPart, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i:]
	}
	if len(intPart) <= 3 {
		return intPart + frac
	}

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
	b.WriteString(frac)
	return b.String()
}
