package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// Projection proyecciones independientes sobre el stock de un medicamento.
type Projection struct {
	// SimpleDaysRemaining cuánto dura el stock ignorando el fin del tratamiento.
	SimpleDaysRemaining int64
	// DaysPassed días desde el inicio del tratamiento (nil si la ventana no es válida).
	DaysPassed *int
	// PillsNeeded unidades necesarias hasta el fin del tratamiento.
	PillsNeeded decimal.NullDecimal
	// TreatmentBalance stock − necesario: positivo sobra, negativo falta.
	TreatmentBalance decimal.NullDecimal
	// WindowState estado de la ventana usada para la proyección.
	WindowState WindowState
}

// SimpleDaysRemaining floor(stock / consumo diario); 0 si el consumo es 0.
func SimpleDaysRemaining(current, usage decimal.Decimal) int64 {
	if !usage.IsPositive() || !current.IsPositive() {
		return 0
	}
	return current.Div(usage).Floor().IntPart()
}

// PillsNeeded unidades necesarias desde today hasta el fin de la ventana.
//
//	daysPassed < 0          → Days × usage (debe cubrirse el tratamiento completo)
//	daysPassed < Days       → (Days − daysPassed) × usage
//	en otro caso            → 0 (tratamiento terminado)
func PillsNeeded(usage decimal.Decimal, w Window, today time.Time) (decimal.Decimal, int, bool) {
	daysPassed, ok := w.DaysPassed(today)
	if !ok {
		return decimal.Zero, 0, false
	}
	var remaining int
	switch {
	case daysPassed < 0:
		remaining = w.Days
	case daysPassed < w.Days:
		remaining = w.Days - daysPassed
	default:
		remaining = 0
	}
	return usage.Mul(decimal.NewFromInt(int64(remaining))), daysPassed, true
}

// Project calcula ambas proyecciones. La del tratamiento solo existe con ventana válida.
func Project(current, usage decimal.Decimal, w Window, today time.Time) Projection {
	current = NormalizeStock(current)
	p := Projection{
		SimpleDaysRemaining: SimpleDaysRemaining(current, usage),
		WindowState:         w.State,
	}
	needed, daysPassed, ok := PillsNeeded(usage, w, today)
	if !ok {
		return p
	}
	p.DaysPassed = &daysPassed
	p.PillsNeeded = decimal.NewNullDecimal(needed)
	p.TreatmentBalance = decimal.NewNullDecimal(current.Sub(needed))
	return p
}

// NormalizeStock lleva a 0 cualquier stock negativo.
func NormalizeStock(current decimal.Decimal) decimal.Decimal {
	if current.IsNegative() {
		return decimal.Zero
	}
	return current
}
