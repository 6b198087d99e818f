package stock

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Medication datos de un medicamento ya validados en el borde, listos para evaluar.
type Medication struct {
	DosagePattern string
	Dose          Dose
	CurrentStock  decimal.Decimal
	Window        Window
}

// Assessment resultado derivado de evaluar un medicamento en una fecha. No se persiste.
type Assessment struct {
	DailyDoses          decimal.Decimal
	DailyUsage          decimal.Decimal
	UsageKnown          bool
	CurrentStock        decimal.Decimal
	SimpleDaysRemaining int64
	DaysPassed          *int
	PillsNeeded         decimal.NullDecimal
	TreatmentBalance    decimal.NullDecimal
	Status              Status
	IsLowStock          bool
	IsCritical          bool
	NeedsReview         bool
	Reasons             []Reason
}

// Assess evalúa un medicamento con la política por defecto.
// today es la fecha de referencia explícita; el núcleo nunca consulta el reloj del sistema.
func Assess(m Medication, today time.Time) Assessment {
	return DefaultPolicy().Assess(m, today)
}

// Assess ejecuta parser → consumo → proyección → clasificación.
func (pol Policy) Assess(m Medication, today time.Time) Assessment {
	current := NormalizeStock(m.CurrentStock)

	doses, parsed := ParseDosagePattern(m.DosagePattern)
	usage := DailyUsage(doses, m.Dose)
	known := parsed && usage.IsPositive()

	proj := Project(current, usage, m.Window, today)
	class := pol.Classify(current, known, proj)

	return Assessment{
		DailyDoses:          doses,
		DailyUsage:          usage,
		UsageKnown:          known,
		CurrentStock:        current,
		SimpleDaysRemaining: proj.SimpleDaysRemaining,
		DaysPassed:          proj.DaysPassed,
		PillsNeeded:         proj.PillsNeeded,
		TreatmentBalance:    proj.TreatmentBalance,
		Status:              class.Status,
		IsLowStock:          class.Status == StatusLow,
		IsCritical:          class.Status == StatusCritical,
		NeedsReview:         class.NeedsReview,
		Reasons:             class.Reasons,
	}
}

// StockFromFloat normaliza un stock recibido como float: NaN, ±Inf y negativos → 0.
func StockFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// HasReason indica si la evaluación incluye el motivo dado.
func (a Assessment) HasReason(r Reason) bool {
	for _, x := range a.Reasons {
		if x == r {
			return true
		}
	}
	return false
}
