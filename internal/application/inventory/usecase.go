package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/internal/domain/stock"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// InventoryUseCase alimenta el dashboard, el inventario global, el inventario por residente
// y el kardex. Todas las vistas evalúan cada medicamento con el mismo motor de stock.
type InventoryUseCase struct {
	residentRepo   repository.ResidentRepository
	medicationRepo repository.MedicationRepository
	settings       Settings
	log            *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	residentRepo repository.ResidentRepository,
	medicationRepo repository.MedicationRepository,
	settings Settings,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		residentRepo:   residentRepo,
		medicationRepo: medicationRepo,
		settings:       settings,
		log:            log,
	}
}

// Residents lista los residentes.
func (uc *InventoryUseCase) Residents(ctx context.Context) ([]dto.ResidentDTO, error) {
	list, err := uc.residentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResidentDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toResidentDTO(r))
	}
	return out, nil
}

// Summary contadores del dashboard: stock bajo, sin stock, en revisión y tratamientos por terminar.
func (uc *InventoryUseCase) Summary(ctx context.Context, today time.Time) (*dto.DashboardSummaryDTO, error) {
	residents, rows, err := uc.loadActive(ctx, today)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummaryDTO{
		ReferenceDate:     today.Format(stock.DateLayout),
		TotalResidents:    len(residents),
		ActiveMedications: len(rows),
	}
	for _, r := range residents {
		if r.Active {
			summary.ActiveResidents++
		}
	}
	for _, x := range rows {
		a := x.assessment
		switch {
		case a.IsCritical:
			summary.CriticalStock++
		case a.IsLowStock:
			summary.LowStock++
		}
		if a.NeedsReview {
			summary.NeedsReview++
		}
		if x.window.ExpiringSoon(today, uc.settings.ExpiryWarningDays) {
			summary.ExpiringSoon++
		}
	}
	return summary, nil
}

// GlobalInventory lista los medicamentos activos de todos los residentes con su evaluación,
// filtrados por estado y por texto (sin distinguir acentos ni mayúsculas).
// Orden: críticos primero, luego bajos, luego por menos días restantes.
func (uc *InventoryUseCase) GlobalInventory(ctx context.Context, filter Filter, query string, today time.Time) (*dto.InventoryListDTO, error) {
	_, rows, err := uc.loadActive(ctx, today)
	if err != nil {
		return nil, err
	}

	q := fold(query)
	selected := make([]assessed, 0, len(rows))
	for _, x := range rows {
		if !filter.Matches(x.assessment) {
			continue
		}
		residentName := ""
		if x.resident != nil {
			residentName = x.resident.Name
		}
		if !matchesQuery(q, x.med.Name, residentName) {
			continue
		}
		selected = append(selected, x)
	}
	sortByUrgency(selected)

	out := &dto.InventoryListDTO{
		ReferenceDate: today.Format(stock.DateLayout),
		Filter:        string(filter),
		Query:         query,
		Items:         make([]dto.InventoryItemDTO, 0, len(selected)),
	}
	for _, x := range selected {
		out.Items = append(out.Items, uc.settings.toItem(x, today))
	}
	out.Total = len(out.Items)
	return out, nil
}

// ResidentInventory inventario de un residente, incluidos los medicamentos suspendidos
// (se muestran pero no cuentan para las alertas).
func (uc *InventoryUseCase) ResidentInventory(ctx context.Context, residentID string, today time.Time) (*dto.ResidentInventoryDTO, error) {
	resident, rows, err := uc.loadResident(ctx, residentID, today)
	if err != nil {
		return nil, err
	}

	out := &dto.ResidentInventoryDTO{
		ReferenceDate: today.Format(stock.DateLayout),
		Resident:      toResidentDTO(resident),
		Items:         make([]dto.InventoryItemDTO, 0, len(rows)),
	}
	for _, x := range rows {
		if x.med.IsActive() {
			switch {
			case x.assessment.IsCritical:
				out.Critical++
			case x.assessment.IsLowStock:
				out.Low++
			}
			if x.assessment.NeedsReview {
				out.NeedsReview++
			}
		}
		out.Items = append(out.Items, uc.settings.toItem(x, today))
	}
	return out, nil
}

// Kardex tabla de medicamentos activos del residente con insignia de faltante/sobrante
// al fin del tratamiento y franja de urgencia por días restantes.
func (uc *InventoryUseCase) Kardex(ctx context.Context, residentID string, today time.Time) (*dto.KardexDTO, error) {
	resident, rows, err := uc.loadResident(ctx, residentID, today)
	if err != nil {
		return nil, err
	}

	out := &dto.KardexDTO{
		ReferenceDate: today.Format(stock.DateLayout),
		Resident:      toResidentDTO(resident),
		Rows:          make([]dto.KardexRowDTO, 0, len(rows)),
	}
	for _, x := range rows {
		if !x.med.IsActive() {
			continue
		}
		a := x.assessment
		row := dto.KardexRowDTO{
			InventoryItemDTO: uc.settings.toItem(x, today),
			CanonicalPattern: stock.IsCanonicalPattern(x.med.DosagePattern),
			Band:             string(stock.SupplyBand(a.SimpleDaysRemaining)),
		}
		if !a.UsageKnown {
			row.Band = string(stock.BandDanger)
		}
		if a.TreatmentBalance.Valid {
			balance := a.TreatmentBalance.Decimal
			if balance.IsNegative() {
				row.Supply = "deficit"
			} else {
				row.Supply = "surplus"
			}
			row.SupplyText = stock.FormatQuantity(balance.Abs(), x.med.Dose())
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// loadActive carga residentes y medicamentos activos en paralelo y evalúa cada medicamento.
func (uc *InventoryUseCase) loadActive(ctx context.Context, today time.Time) ([]*entity.Resident, []assessed, error) {
	type residentsResult struct {
		list []*entity.Resident
		err  error
	}
	type medsResult struct {
		list []*entity.Medication
		err  error
	}

	residentsCh := make(chan residentsResult, 1)
	medsCh := make(chan medsResult, 1)

	go func() {
		list, err := uc.residentRepo.List(ctx)
		residentsCh <- residentsResult{list, err}
	}()
	go func() {
		list, err := uc.medicationRepo.ListActive(ctx)
		medsCh <- medsResult{list, err}
	}()

	res := <-residentsCh
	meds := <-medsCh
	if res.err != nil {
		return nil, nil, fmt.Errorf("listar residentes: %w", res.err)
	}
	if meds.err != nil {
		return nil, nil, fmt.Errorf("listar medicamentos activos: %w", meds.err)
	}

	byID := make(map[string]*entity.Resident, len(res.list))
	for _, r := range res.list {
		byID[r.ID] = r
	}

	rows := make([]assessed, 0, len(meds.list))
	for _, m := range meds.list {
		if !m.IsActive() {
			continue
		}
		x := uc.settings.assess(m, byID[m.ResidentID], today)
		uc.logReview(x)
		rows = append(rows, x)
	}
	return res.list, rows, nil
}

func (uc *InventoryUseCase) loadResident(ctx context.Context, residentID string, today time.Time) (*entity.Resident, []assessed, error) {
	resident, err := uc.residentRepo.GetByID(ctx, residentID)
	if err != nil {
		return nil, nil, err
	}
	if resident == nil {
		return nil, nil, domain.ErrNotFound
	}
	meds, err := uc.medicationRepo.ListByResident(ctx, residentID)
	if err != nil {
		return nil, nil, fmt.Errorf("listar medicamentos del residente: %w", err)
	}

	rows := make([]assessed, 0, len(meds))
	for _, m := range meds {
		x := uc.settings.assess(m, resident, today)
		if m.IsActive() {
			uc.logReview(x)
		}
		rows = append(rows, x)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].med.Name < rows[j].med.Name })
	return resident, rows, nil
}

func (uc *InventoryUseCase) logReview(x assessed) {
	if !x.assessment.NeedsReview {
		return
	}
	uc.log.Warn().
		Str("medication_id", x.med.ID).
		Str("resident_id", x.med.ResidentID).
		Str("dosage_pattern", x.med.DosagePattern).
		Strs("reasons", reasonStrings(x.assessment.Reasons)).
		Msg("medicamento requiere revisión")
}

var statusRank = map[stock.Status]int{stock.StatusCritical: 0, stock.StatusLow: 1, stock.StatusOK: 2}

func sortByUrgency(rows []assessed) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].assessment, rows[j].assessment
		if statusRank[a.Status] != statusRank[b.Status] {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		if a.SimpleDaysRemaining != b.SimpleDaysRemaining {
			return a.SimpleDaysRemaining < b.SimpleDaysRemaining
		}
		return rows[i].med.Name < rows[j].med.Name
	})
}
