package inventory

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/stock"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// AssessUseCase evalúa medicamentos recibidos directamente en la petición (sin repositorio).
// Lo usan pantallas y reportes externos que ya tienen los datos materializados.
type AssessUseCase struct {
	settings Settings
	log      *logger.Logger
}

// NewAssessUseCase construye el caso de uso.
func NewAssessUseCase(settings Settings, log *logger.Logger) *AssessUseCase {
	return &AssessUseCase{settings: settings, log: log}
}

// Assess evalúa un medicamento. Si la petición trae reference_date se usa en lugar de now.
// Solo falla si esa fecha de referencia es ilegible; los datos del medicamento nunca producen error.
func (uc *AssessUseCase) Assess(req dto.AssessRequest, now time.Time) (dto.AssessmentDTO, error) {
	today, err := ReferenceDate(req.ReferenceDate, now)
	if err != nil {
		return dto.AssessmentDTO{}, err
	}
	return uc.assessOne(req, today), nil
}

// AssessBatch evalúa una lista de medicamentos con una misma fecha de referencia.
func (uc *AssessUseCase) AssessBatch(req dto.AssessBatchRequest, now time.Time) (dto.AssessBatchResponse, error) {
	today, err := ReferenceDate(req.ReferenceDate, now)
	if err != nil {
		return dto.AssessBatchResponse{}, err
	}
	resp := dto.AssessBatchResponse{
		ReferenceDate: today.Format(stock.DateLayout),
		Items:         make([]dto.AssessmentDTO, 0, len(req.Medications)),
	}
	for _, m := range req.Medications {
		a := uc.assessOne(m, today)
		switch {
		case a.IsCritical:
			resp.Critical++
		case a.IsLowStock:
			resp.Low++
		}
		if a.NeedsReview {
			resp.NeedsReview++
		}
		resp.Items = append(resp.Items, a)
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

func (uc *AssessUseCase) assessOne(req dto.AssessRequest, today time.Time) dto.AssessmentDTO {
	in := RequestToStock(req)
	a := uc.settings.policy().Assess(in, today)
	if a.NeedsReview {
		uc.log.Warn().
			Str("medication_id", req.ID).
			Str("dosage_pattern", req.DosagePattern).
			Strs("reasons", reasonStrings(a.Reasons)).
			Msg("medicamento requiere revisión")
	}
	out := toAssessmentDTO(a, in.Dose, today)
	out.ID = req.ID
	out.Name = req.Name
	return out
}

// RequestToStock valida en el borde los campos sueltos de la petición y arma la entrada del motor.
func RequestToStock(req dto.AssessRequest) stock.Medication {
	// current_stock ausente queda en cero (valor cero de NullDecimal).
	current := req.CurrentStock.Decimal
	return stock.Medication{
		DosagePattern: req.DosagePattern,
		Dose: stock.Dose{
			Type:         stock.DoseType(req.DoseType),
			PillFraction: req.PillFraction,
			AmountMg:     req.DoseAmount,
		},
		CurrentStock: stock.NormalizeStock(current),
		Window:       stock.ParseWindow(req.StartDate, req.TreatmentDays),
	}
}

func reasonStrings(rs []stock.Reason) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
