package inventory

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/stock"
)

// Settings umbrales compartidos por los casos de uso de inventario.
type Settings struct {
	LowStockDays      int
	ExpiryWarningDays int
	CoverageDays      int
}

// DefaultSettings valores usados por las pantallas originales.
func DefaultSettings() Settings {
	return Settings{
		LowStockDays:      stock.DefaultLowStockDays,
		ExpiryWarningDays: 7,
		CoverageDays:      stock.DefaultCoverageDays,
	}
}

func (s Settings) policy() stock.Policy {
	return stock.Policy{LowStockDays: int64(s.LowStockDays)}
}

// ReferenceDate interpreta la fecha de referencia recibida en la petición.
// Vacía → fecha calendario de now (ya expresado en la zona del centro).
func ReferenceDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, ok := stock.ParseDate(raw)
	if !ok {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}
