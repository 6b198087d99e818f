package stock

import "github.com/shopspring/decimal"

// Status clasificación de stock usada por todas las pantallas para alertar.
type Status string

const (
	StatusOK       Status = "ok"
	StatusLow      Status = "low"
	StatusCritical Status = "critical"
)

// Reason motivo que disparó una alerta o una revisión.
type Reason string

const (
	ReasonUsageUnknown     Reason = "USAGE_UNKNOWN"
	ReasonOutOfStock       Reason = "OUT_OF_STOCK"
	ReasonRunsOutSoon      Reason = "RUNS_OUT_SOON"
	ReasonTreatmentDeficit Reason = "TREATMENT_DEFICIT"
	ReasonInvalidWindow    Reason = "INVALID_WINDOW"
)

// DefaultLowStockDays umbral (inclusive) de días restantes para considerar stock bajo.
const DefaultLowStockDays = 5

// Policy parámetros de clasificación.
type Policy struct {
	LowStockDays int64
}

// DefaultPolicy política por defecto: bajo si quedan 5 días o menos.
func DefaultPolicy() Policy {
	return Policy{LowStockDays: DefaultLowStockDays}
}

// Classification resultado del clasificador.
type Classification struct {
	Status      Status
	NeedsReview bool
	Reasons     []Reason
}

// Classify combina las señales en un estado ok/low/critical.
//
// Ante cualquier ambigüedad se alerta: consumo desconocido es crítico y requiere revisión,
// una ventana de tratamiento inutilizable cuenta como stock bajo y requiere revisión.
// Las señales simple y de tratamiento se combinan con OR.
func (pol Policy) Classify(current decimal.Decimal, usageKnown bool, p Projection) Classification {
	current = NormalizeStock(current)

	if !usageKnown {
		c := Classification{Status: StatusCritical, NeedsReview: true, Reasons: []Reason{ReasonUsageUnknown}}
		if current.IsZero() {
			c.Reasons = append(c.Reasons, ReasonOutOfStock)
		}
		return c
	}
	if current.IsZero() {
		c := Classification{Status: StatusCritical, Reasons: []Reason{ReasonOutOfStock}}
		if p.WindowState == WindowInvalid {
			c.NeedsReview = true
			c.Reasons = append(c.Reasons, ReasonInvalidWindow)
		}
		return c
	}

	c := Classification{Status: StatusOK}
	if p.SimpleDaysRemaining <= pol.LowStockDays {
		c.Reasons = append(c.Reasons, ReasonRunsOutSoon)
	}
	if p.TreatmentBalance.Valid && p.TreatmentBalance.Decimal.IsNegative() {
		c.Reasons = append(c.Reasons, ReasonTreatmentDeficit)
	}
	if p.WindowState == WindowInvalid {
		c.NeedsReview = true
		c.Reasons = append(c.Reasons, ReasonInvalidWindow)
	}
	if len(c.Reasons) > 0 {
		c.Status = StatusLow
	}
	return c
}

// Classify clasifica con la política por defecto.
func Classify(current decimal.Decimal, usageKnown bool, p Projection) Classification {
	return DefaultPolicy().Classify(current, usageKnown, p)
}
