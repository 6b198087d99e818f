package dto

import "github.com/shopspring/decimal"

// RequirementLineDTO medicamento dentro del reporte de requerimientos.
type RequirementLineDTO struct {
	MedicationID  string          `json:"medication_id"`
	Name          string          `json:"name"`
	DosagePattern string          `json:"dosage_pattern"`
	DailyUsage    decimal.Decimal `json:"daily_usage"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	Needed        decimal.Decimal `json:"needed"`  // ceil(consumo × días)
	Deficit       decimal.Decimal `json:"deficit"` // unidades a solicitar
	Status        string          `json:"status"`
}

// ResidentRequirementDTO faltantes y reservas de un residente.
type ResidentRequirementDTO struct {
	Resident    ResidentDTO          `json:"resident"`
	Missing     []RequirementLineDTO `json:"missing"`
	Reserve     []RequirementLineDTO `json:"reserve"`
	NeedsReview []RequirementLineDTO `json:"needs_review"` // consumo desconocido, no se puede calcular
}

// MedicationTotalDTO déficit agregado por nombre de medicamento entre todos los residentes.
type MedicationTotalDTO struct {
	Name      string          `json:"name"`
	Deficit   decimal.Decimal `json:"deficit"`
	Residents int             `json:"residents"`
}

// RequirementReportDTO respuesta de GET /api/reports/requirements.
type RequirementReportDTO struct {
	ReferenceDate string                   `json:"reference_date"`
	CoverageDays  int                      `json:"coverage_days"`
	Residents     []ResidentRequirementDTO `json:"residents"`
	Totals        []MedicationTotalDTO     `json:"totals"` // mayor déficit primero
	ReviewCount   int                      `json:"review_count"`
}
