package stock

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	quarter       = decimal.RequireFromString("0.25")
	half          = decimal.RequireFromString("0.5")
	threeQuarters = decimal.RequireFromString("0.75")
	one           = decimal.NewFromInt(1)
)

// FormatFraction representa una cantidad como fracción legible (solo para mostrar).
//
//	0.25 → "1/4", 0.5 → "1/2", 0.75 → "3/4", 1 → "1"
//	otros valores < 1 → "1/n" con n = round(1/v)
//	valores ≥ 1 → número con hasta dos decimales, sin ceros finales
func FormatFraction(v decimal.Decimal) string {
	switch {
	case v.IsZero():
		return "0"
	case v.IsNegative():
		return "-" + FormatFraction(v.Neg())
	case v.Equal(quarter):
		return "1/4"
	case v.Equal(half):
		return "1/2"
	case v.Equal(threeQuarters):
		return "3/4"
	case v.Equal(one):
		return "1"
	case v.LessThan(one):
		return "1/" + one.Div(v).Round(0).String()
	}
	return v.Round(2).String()
}

// ParseFraction interpreta "n/m" o un número decimal.
func ParseFraction(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := decimal.NewFromString(strings.TrimSpace(num))
		if err != nil {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(den))
		if err != nil || d.IsZero() {
			return decimal.Zero, false
		}
		return n.Div(d), true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatQuantity texto de un saldo para el kardex: en dosis fraccionadas las cantidades
// menores a una pastilla se muestran como fracción, el resto como número.
func FormatQuantity(v decimal.Decimal, dose Dose) string {
	if dose.Type == DoseFraction && v.Abs().LessThan(one) {
		return FormatFraction(v)
	}
	return v.Round(2).String()
}
