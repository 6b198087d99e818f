package stock

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numberPattern    = regexp.MustCompile(`\d+(\.\d+)?|\.\d+`)
	leadingPattern   = regexp.MustCompile(`^\+?(\d+\.?\d*|\.\d+)`)
	canonicalPattern = regexp.MustCompile(`^\d+(\.\d+)?(-\d+(\.\d+)?){3}$`)
)

// ParseDosagePattern convierte un patrón de dosis en el número de tomas diarias.
//
// Formato canónico: números separados por guion, uno por franja horaria ("1-0-1-0").
// Texto libre ("1 cada 8 horas") se tolera sumando todos los números embebidos.
// El segundo valor es false cuando no se encontró ningún número: el consumo es
// desconocido, no cero.
func ParseDosagePattern(pattern string) (decimal.Decimal, bool) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return decimal.Zero, false
	}

	if strings.Contains(pattern, "-") {
		total := decimal.Zero
		parsed := false
		for _, segment := range strings.Split(pattern, "-") {
			d, ok := leadingNumber(segment)
			if !ok {
				continue
			}
			parsed = true
			total = total.Add(d)
		}
		return total, parsed
	}

	matches := numberPattern.FindAllString(pattern, -1)
	if len(matches) == 0 {
		return decimal.Zero, false
	}
	total := decimal.Zero
	for _, m := range matches {
		if strings.HasPrefix(m, ".") {
			m = "0" + m
		}
		total = total.Add(decimal.RequireFromString(m))
	}
	return total, true
}

// leadingNumber imita parseFloat: toma el prefijo numérico del segmento ("1.5 tab" → 1.5).
// Un segmento sin prefijo numérico cuenta como 0 y no marca el patrón como interpretado.
func leadingNumber(segment string) (decimal.Decimal, bool) {
	m := leadingPattern.FindStringSubmatch(strings.TrimSpace(segment))
	if m == nil {
		return decimal.Zero, false
	}
	// "1." y ".5" son válidos para parseFloat.
	num := strings.TrimSuffix(m[1], ".")
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	}
	v, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// IsCanonicalPattern indica si el patrón sigue el formato de cuatro franjas (mañana-mediodía-tarde-noche).
func IsCanonicalPattern(pattern string) bool {
	return canonicalPattern.MatchString(strings.TrimSpace(pattern))
}
