package inventory

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/stock"
)

func toAssessmentDTO(a stock.Assessment, dose stock.Dose, today time.Time) dto.AssessmentDTO {
	out := dto.AssessmentDTO{
		ReferenceDate:       today.Format(stock.DateLayout),
		DailyDoses:          a.DailyDoses,
		DailyUsage:          a.DailyUsage,
		UsageKnown:          a.UsageKnown,
		CurrentStock:        a.CurrentStock,
		SimpleDaysRemaining: a.SimpleDaysRemaining,
		DaysPassed:          a.DaysPassed,
		Status:              string(a.Status),
		IsLowStock:          a.IsLowStock,
		IsCritical:          a.IsCritical,
		NeedsReview:         a.NeedsReview,
		Reasons:             make([]string, 0, len(a.Reasons)),
	}
	if a.PillsNeeded.Valid {
		v := a.PillsNeeded.Decimal
		out.PillsNeeded = &v
	}
	if a.TreatmentBalance.Valid {
		v := a.TreatmentBalance.Decimal
		out.TreatmentBalance = &v
		out.BalanceText = stock.FormatQuantity(v, dose)
	}
	for _, r := range a.Reasons {
		out.Reasons = append(out.Reasons, string(r))
	}
	return out
}

func toResidentDTO(r *entity.Resident) dto.ResidentDTO {
	return dto.ResidentDTO{ID: r.ID, Name: r.Name, Room: r.Room, Active: r.Active}
}

// assessed medicamento junto con su evaluación, reutilizado por todas las vistas.
type assessed struct {
	med        *entity.Medication
	resident   *entity.Resident
	window     stock.Window
	assessment stock.Assessment
}

func (s Settings) assess(m *entity.Medication, r *entity.Resident, today time.Time) assessed {
	in := m.ToStock()
	return assessed{
		med:        m,
		resident:   r,
		window:     in.Window,
		assessment: s.policy().Assess(in, today),
	}
}

func (s Settings) toItem(x assessed, today time.Time) dto.InventoryItemDTO {
	m := x.med
	status := m.Status
	if status == "" {
		status = entity.MedicationActive
	}
	item := dto.InventoryItemDTO{
		ResidentID:    m.ResidentID,
		MedicationID:  m.ID,
		Name:          m.Name,
		Status:        status,
		DosagePattern: m.DosagePattern,
		DoseType:      m.DoseType,
		TreatmentDays: m.TreatmentDays,
		Assessment:    toAssessmentDTO(x.assessment, m.Dose(), today),
	}
	item.Assessment.ID = m.ID
	item.Assessment.Name = m.Name
	if x.resident != nil {
		item.ResidentName = x.resident.Name
	}
	if m.DoseType == string(stock.DoseFraction) {
		item.PillFraction = stock.FormatFraction(m.Dose().Multiplier())
	}
	if m.DoseAmount.Valid {
		v := m.DoseAmount.Decimal
		item.DoseAmount = &v
	}
	if m.StartDate != nil {
		item.StartDate = m.StartDate.Format(stock.DateLayout)
	}
	if end, ok := x.window.EndDate(); ok {
		item.EndDate = end.Format(stock.DateLayout)
		item.ExpiringSoon = x.window.ExpiringSoon(today, s.ExpiryWarningDays)
		item.Expired = x.window.Expired(today)
	}
	return item
}
