package stock

import "github.com/shopspring/decimal"

// DefaultCoverageDays días de cobertura estándar del reporte de requerimientos.
const DefaultCoverageDays = 30

// Requirement necesidad de stock para cubrir un período fijo.
type Requirement struct {
	CoverageDays int
	Needed       decimal.Decimal // ceil(consumo diario × días)
	Deficit      decimal.Decimal // unidades enteras que faltan (0 si alcanza)
}

// Missing indica si el stock no cubre el período.
func (r Requirement) Missing() bool {
	return r.Deficit.IsPositive()
}

// CoverageRequirement calcula cuántas unidades hacen falta para cubrir coverageDays.
// coverageDays no positivo usa DefaultCoverageDays.
func CoverageRequirement(usage, current decimal.Decimal, coverageDays int) Requirement {
	if coverageDays <= 0 {
		coverageDays = DefaultCoverageDays
	}
	needed := usage.Mul(decimal.NewFromInt(int64(coverageDays))).Ceil()
	deficit := needed.Sub(NormalizeStock(current)).Ceil()
	if deficit.IsNegative() {
		deficit = decimal.Zero
	}
	return Requirement{CoverageDays: coverageDays, Needed: needed, Deficit: deficit}
}

// Band franja de urgencia por días restantes, usada en la insignia del kardex.
type Band string

const (
	BandDanger  Band = "danger"
	BandWarning Band = "warning"
	BandGood    Band = "good"
)

// SupplyBand ≤5 días peligro, ≤10 advertencia, en otro caso bien.
func SupplyBand(daysRemaining int64) Band {
	switch {
	case daysRemaining <= 5:
		return BandDanger
	case daysRemaining <= 10:
		return BandWarning
	default:
		return BandGood
	}
}
