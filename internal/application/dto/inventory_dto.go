package dto

import "github.com/shopspring/decimal"

// ResidentDTO datos básicos del residente.
type ResidentDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Room   string `json:"room,omitempty"`
	Active bool   `json:"active"`
}

// InventoryItemDTO fila del inventario global o por residente.
type InventoryItemDTO struct {
	ResidentID    string           `json:"resident_id"`
	ResidentName  string           `json:"resident_name,omitempty"`
	MedicationID  string           `json:"medication_id"`
	Name          string           `json:"name"`
	Status        string           `json:"status"` // active | suspended
	DosagePattern string           `json:"dosage_pattern"`
	DoseType      string           `json:"dose_type"`
	PillFraction  string           `json:"pill_fraction,omitempty"` // "1/2"
	DoseAmount    *decimal.Decimal `json:"dose_amount,omitempty"`   // mg
	StartDate     string           `json:"start_date,omitempty"`
	TreatmentDays *int             `json:"treatment_days,omitempty"`
	EndDate       string           `json:"end_date,omitempty"`
	ExpiringSoon  bool             `json:"expiring_soon"`
	Expired       bool             `json:"expired"`
	Assessment    AssessmentDTO    `json:"assessment"`
}

// InventoryListDTO respuesta de GET /api/inventory.
type InventoryListDTO struct {
	ReferenceDate string             `json:"reference_date"`
	Filter        string             `json:"filter"`
	Query         string             `json:"query,omitempty"`
	Total         int                `json:"total"`
	Items         []InventoryItemDTO `json:"items"`
}

// ResidentInventoryDTO respuesta de GET /api/residents/:id/inventory.
type ResidentInventoryDTO struct {
	ReferenceDate string             `json:"reference_date"`
	Resident      ResidentDTO        `json:"resident"`
	Low           int                `json:"low"`
	Critical      int                `json:"critical"`
	NeedsReview   int                `json:"needs_review"`
	Items         []InventoryItemDTO `json:"items"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Contadores de la pantalla principal; todos derivan de la misma evaluación de stock.
type DashboardSummaryDTO struct {
	ReferenceDate     string `json:"reference_date"`
	TotalResidents    int    `json:"total_residents"`
	ActiveResidents   int    `json:"active_residents"`
	ActiveMedications int    `json:"active_medications"`
	LowStock          int    `json:"low_stock"`
	CriticalStock     int    `json:"critical_stock"`
	NeedsReview       int    `json:"needs_review"`
	ExpiringSoon      int    `json:"expiring_soon"` // tratamientos que terminan en los próximos días
}

// KardexRowDTO fila del kardex: saldo de tratamiento con insignia de faltante/sobrante.
type KardexRowDTO struct {
	InventoryItemDTO
	CanonicalPattern bool   `json:"canonical_pattern"`
	Band             string `json:"band"`                  // danger | warning | good
	Supply           string `json:"supply,omitempty"`      // deficit | surplus (vacío sin ventana)
	SupplyText       string `json:"supply_text,omitempty"` // cantidad formateada del faltante/sobrante
}

// KardexDTO respuesta de GET /api/residents/:id/kardex.
type KardexDTO struct {
	ReferenceDate string         `json:"reference_date"`
	Resident      ResidentDTO    `json:"resident"`
	Rows          []KardexRowDTO `json:"rows"`
}
