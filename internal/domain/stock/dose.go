package stock

import "github.com/shopspring/decimal"

// DoseType indica cómo se expresa la cantidad de cada toma.
type DoseType string

const (
	// DoseFraction: cada toma es una fracción de pastilla (PillFraction).
	DoseFraction DoseType = "fraction"
	// DoseDosage: cada toma es una cantidad en mg; para stock equivale a una unidad por toma.
	DoseDosage DoseType = "dosage"
)

// Dose describe la cantidad por toma. Solo el campo correspondiente a Type es relevante.
type Dose struct {
	Type         DoseType
	PillFraction decimal.NullDecimal
	AmountMg     decimal.NullDecimal
}

// FractionDose construye una dosis expresada como fracción de pastilla.
func FractionDose(fraction decimal.Decimal) Dose {
	return Dose{Type: DoseFraction, PillFraction: decimal.NewNullDecimal(fraction)}
}

// DosageDose construye una dosis expresada en mg.
func DosageDose(mg decimal.Decimal) Dose {
	return Dose{Type: DoseDosage, AmountMg: decimal.NewNullDecimal(mg)}
}

// Multiplier devuelve las unidades de stock que consume cada toma.
// Fracción ausente o no positiva se toma como pastilla entera; los mg no se descuentan del stock.
func (d Dose) Multiplier() decimal.Decimal {
	if d.Type != DoseFraction {
		return decimal.NewFromInt(1)
	}
	if !d.PillFraction.Valid || !d.PillFraction.Decimal.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return d.PillFraction.Decimal
}

// DailyUsage calcula las unidades de stock consumidas por día.
// dailyUsage = dailyDoses × multiplicador de la dosis.
func DailyUsage(dailyDoses decimal.Decimal, dose Dose) decimal.Decimal {
	if dailyDoses.IsNegative() {
		return decimal.Zero
	}
	return dailyDoses.Mul(dose.Multiplier())
}
