package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// maxBatchSize límite de medicamentos por evaluación en lote.
const maxBatchSize = 1000

// StockHandler evalúa medicamentos enviados en el cuerpo de la petición.
type StockHandler struct {
	uc    *inventory.AssessUseCase
	clock Clock
	log   *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.AssessUseCase, clock Clock, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, clock: clock, log: log}
}

// Assess godoc
// @Summary      Evaluar stock de un medicamento
// @Description  Consumo diario, días restantes, saldo al fin del tratamiento y estado ok/low/critical.
//
//	reference_date (cuerpo) o date (query) fija la fecha; por defecto hoy en la zona del centro.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssessRequest  true  "dosage_pattern, dose_type, pill_fraction, current_stock, start_date, treatment_days"
// @Param        date  query  string  false  "Fecha de referencia AAAA-MM-DD"
// @Success      200   {object}  dto.AssessmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/assess [post]
func (h *StockHandler) Assess(c *fiber.Ctx) error {
	var in dto.AssessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ReferenceDate == "" {
		in.ReferenceDate = c.Query("date")
	}
	out, err := h.uc.Assess(in, h.clock())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// AssessBatch godoc
// @Summary      Evaluar stock de varios medicamentos
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssessBatchRequest  true  "reference_date opcional y lista de medicamentos"
// @Success      200   {object}  dto.AssessBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/assess/batch [post]
func (h *StockHandler) AssessBatch(c *fiber.Ctx) error {
	var in dto.AssessBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Medications) > maxBatchSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "máximo 1000 medicamentos por lote",
		})
	}
	if in.ReferenceDate == "" {
		in.ReferenceDate = c.Query("date")
	}
	out, err := h.uc.AssessBatch(in, h.clock())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
