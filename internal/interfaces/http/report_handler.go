package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

const maxCoverageDays = 365

// ReportHandler reporte de requerimientos.
type ReportHandler struct {
	uc  *inventory.RequirementUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.RequirementUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Requirements godoc
// @Summary      Reporte de requerimientos
// @Description  Faltantes y reserva por residente para cubrir N días, con totales por medicamento.
// @Tags         reports
// @Produce      json
// @Param        days  query  int     false  "Días de cobertura (1-365). Vacío = valor configurado."
// @Param        date  query  string  false  "Fecha de referencia AAAA-MM-DD"
// @Success      200  {object}  dto.RequirementReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/requirements [get]
func (h *ReportHandler) Requirements(c *fiber.Ctx) error {
	days := 0
	if raw := c.Query("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxCoverageDays {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "days debe ser un entero entre 1 y 365",
			})
		}
		days = v
	}
	out, err := h.uc.Report(c.UserContext(), days, GetReferenceDate(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
