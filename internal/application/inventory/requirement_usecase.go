package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/internal/domain/stock"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// RequirementUseCase genera el reporte mensual de requerimientos: qué hay que solicitar
// para cubrir N días de tratamiento por residente y el total por medicamento.
type RequirementUseCase struct {
	inventory *InventoryUseCase
	settings  Settings
}

// NewRequirementUseCase construye el caso de uso de requerimientos.
func NewRequirementUseCase(
	residentRepo repository.ResidentRepository,
	medicationRepo repository.MedicationRepository,
	settings Settings,
	log *logger.Logger,
) *RequirementUseCase {
	return &RequirementUseCase{
		inventory: NewInventoryUseCase(residentRepo, medicationRepo, settings, log),
		settings:  settings,
	}
}

// Report separa los medicamentos activos de cada residente en faltantes (el stock no cubre
// coverageDays) y reserva. Los de consumo desconocido van a revisión: no se puede calcular
// cuánto pedir y no deben desaparecer del reporte.
// coverageDays <= 0 usa el valor configurado.
func (uc *RequirementUseCase) Report(ctx context.Context, coverageDays int, today time.Time) (*dto.RequirementReportDTO, error) {
	if coverageDays <= 0 {
		coverageDays = uc.settings.CoverageDays
	}
	residents, rows, err := uc.inventory.loadActive(ctx, today)
	if err != nil {
		return nil, err
	}

	// 1. Agrupar por residente conservando el orden de la lista de residentes
	byResident := make(map[string]*dto.ResidentRequirementDTO, len(residents))
	order := make([]string, 0, len(residents))
	for _, r := range residents {
		byResident[r.ID] = &dto.ResidentRequirementDTO{
			Resident:    toResidentDTO(r),
			Missing:     []dto.RequirementLineDTO{},
			Reserve:     []dto.RequirementLineDTO{},
			NeedsReview: []dto.RequirementLineDTO{},
		}
		order = append(order, r.ID)
	}

	// 2. Calcular requerimiento por medicamento y acumular déficit por nombre
	type total struct {
		name      string
		deficit   decimal.Decimal
		residents map[string]struct{}
	}
	totals := make(map[string]*total)

	report := &dto.RequirementReportDTO{
		ReferenceDate: today.Format(stock.DateLayout),
		CoverageDays:  coverageDays,
	}

	for _, x := range rows {
		group, ok := byResident[x.med.ResidentID]
		if !ok {
			// Medicamento de un residente que no está en la lista: se reporta igual.
			group = &dto.ResidentRequirementDTO{
				Resident:    dto.ResidentDTO{ID: x.med.ResidentID},
				Missing:     []dto.RequirementLineDTO{},
				Reserve:     []dto.RequirementLineDTO{},
				NeedsReview: []dto.RequirementLineDTO{},
			}
			byResident[x.med.ResidentID] = group
			order = append(order, x.med.ResidentID)
		}

		a := x.assessment
		line := requirementLine(x.med, a)
		if !a.UsageKnown {
			group.NeedsReview = append(group.NeedsReview, line)
			report.ReviewCount++
			continue
		}

		req := stock.CoverageRequirement(a.DailyUsage, a.CurrentStock, coverageDays)
		line.Needed = req.Needed
		if !req.Missing() {
			group.Reserve = append(group.Reserve, line)
			continue
		}
		line.Deficit = req.Deficit
		group.Missing = append(group.Missing, line)

		key := fold(x.med.Name)
		t, ok := totals[key]
		if !ok {
			t = &total{name: x.med.Name, residents: map[string]struct{}{}}
			totals[key] = t
		}
		t.deficit = t.deficit.Add(req.Deficit)
		t.residents[x.med.ResidentID] = struct{}{}
	}

	// 3. Armar la respuesta: solo residentes con algún medicamento activo
	report.Residents = make([]dto.ResidentRequirementDTO, 0, len(order))
	for _, id := range order {
		g := byResident[id]
		if len(g.Missing)+len(g.Reserve)+len(g.NeedsReview) == 0 {
			continue
		}
		report.Residents = append(report.Residents, *g)
	}

	report.Totals = make([]dto.MedicationTotalDTO, 0, len(totals))
	for _, t := range totals {
		report.Totals = append(report.Totals, dto.MedicationTotalDTO{
			Name:      t.name,
			Deficit:   t.deficit,
			Residents: len(t.residents),
		})
	}
	// 4. Mayor déficit primero; empate por nombre
	sort.SliceStable(report.Totals, func(i, j int) bool {
		a, b := report.Totals[i], report.Totals[j]
		if !a.Deficit.Equal(b.Deficit) {
			return a.Deficit.GreaterThan(b.Deficit)
		}
		return a.Name < b.Name
	})

	return report, nil
}

func requirementLine(m *entity.Medication, a stock.Assessment) dto.RequirementLineDTO {
	return dto.RequirementLineDTO{
		MedicationID:  m.ID,
		Name:          m.Name,
		DosagePattern: m.DosagePattern,
		DailyUsage:    a.DailyUsage,
		CurrentStock:  a.CurrentStock,
		Status:        string(a.Status),
	}
}
