package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/stock"
)

// Filter filtro del inventario global.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterOK       Filter = "ok"
	FilterLow      Filter = "low"
	FilterCritical Filter = "critical"
	FilterReview   Filter = "review"
)

// ParseFilter valida el filtro recibido por query string; vacío equivale a "all".
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterOK, FilterLow, FilterCritical, FilterReview:
		return f, nil
	default:
		return "", domain.ErrInvalidFilter
	}
}

// Matches indica si la evaluación pasa el filtro.
func (f Filter) Matches(a stock.Assessment) bool {
	switch f {
	case FilterOK:
		return a.Status == stock.StatusOK
	case FilterLow:
		return a.Status == stock.StatusLow
	case FilterCritical:
		return a.Status == stock.StatusCritical
	case FilterReview:
		return a.NeedsReview
	default:
		return true
	}
}

// fold normaliza texto para búsqueda: sin acentos y sin distinción de mayúsculas
// ("Ácido Fólico" y "acido folico" coinciden).
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	// Caser no es seguro entre goroutines; se crea uno por llamada.
	return cases.Fold().String(strings.TrimSpace(out))
}

// matchesQuery busca q en cualquiera de los campos (nombre del medicamento, residente, patrón).
func matchesQuery(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(fold(f), q) {
			return true
		}
	}
	return false
}
