package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/stock"
)

// Estados de un medicamento prescrito. Solo los activos participan en alertas.
const (
	MedicationActive    = "active"
	MedicationSuspended = "suspended"
)

// Medication medicamento prescrito a un residente, tal como lo guarda el subsistema de kardex.
// PillFraction aplica cuando DoseType es "fraction"; DoseAmount (mg) cuando es "dosage".
type Medication struct {
	ID            string
	ResidentID    string
	Name          string
	DosagePattern string
	DoseType      string
	PillFraction  decimal.NullDecimal
	DoseAmount    decimal.NullDecimal
	StartDate     *time.Time
	RawStartDate  string // texto original cuando la fecha de inicio no se pudo interpretar
	TreatmentDays *int
	CurrentStock  decimal.Decimal
	Status        string
	UpdatedAt     time.Time
}

// IsActive indica si el medicamento debe considerarse en alertas y reportes.
func (m *Medication) IsActive() bool {
	return m.Status == "" || m.Status == MedicationActive
}

// Dose devuelve la dosis tipada para el motor de stock.
func (m *Medication) Dose() stock.Dose {
	return stock.Dose{
		Type:         stock.DoseType(m.DoseType),
		PillFraction: m.PillFraction,
		AmountMg:     m.DoseAmount,
	}
}

// ToStock convierte el registro en la entrada validada del motor de stock.
func (m *Medication) ToStock() stock.Medication {
	return stock.Medication{
		DosagePattern: m.DosagePattern,
		Dose:          m.Dose(),
		CurrentStock:  m.CurrentStock,
		Window:        m.Window(),
	}
}

// Window ventana de tratamiento. Una fecha ilegible produce una ventana inválida (revisión),
// nunca una ventana ausente.
func (m *Medication) Window() stock.Window {
	if m.StartDate == nil && m.RawStartDate != "" {
		return stock.ParseWindow(m.RawStartDate, m.TreatmentDays)
	}
	return stock.NewWindow(m.StartDate, m.TreatmentDays)
}
