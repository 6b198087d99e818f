package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// InventoryHandler dashboard, inventario global, inventario por residente y kardex.
// Todas las rutas leen la fecha de referencia del middleware ReferenceDate.
type InventoryHandler struct {
	uc  *inventory.InventoryUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Summary godoc
// @Summary      Contadores del dashboard
// @Tags         dashboard
// @Produce      json
// @Param        date  query  string  false  "Fecha de referencia AAAA-MM-DD"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetReferenceDate(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Inventario global de medicamentos activos
// @Description  Ordenado por urgencia. q busca en medicamento y residente sin distinguir tildes.
// @Tags         inventory
// @Produce      json
// @Param        filter  query  string  false  "all | ok | low | critical | review"
// @Param        q       query  string  false  "Texto a buscar"
// @Param        date    query  string  false  "Fecha de referencia AAAA-MM-DD"
// @Success      200  {object}  dto.InventoryListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	filter, err := inventory.ParseFilter(c.Query("filter"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.GlobalInventory(c.UserContext(), filter, c.Query("q"), GetReferenceDate(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Residents godoc
// @Summary      Listar residentes
// @Tags         residents
// @Produce      json
// @Success      200  {array}   dto.ResidentDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/residents [get]
func (h *InventoryHandler) Residents(c *fiber.Ctx) error {
	list, err := h.uc.Residents(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"residents": list,
	})
}

// ResidentInventory godoc
// @Summary      Inventario de un residente
// @Tags         residents
// @Produce      json
// @Param        id    path   string  true   "ID del residente"
// @Param        date  query  string  false  "Fecha de referencia AAAA-MM-DD"
// @Success      200  {object}  dto.ResidentInventoryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/residents/{id}/inventory [get]
func (h *InventoryHandler) ResidentInventory(c *fiber.Ctx) error {
	out, err := h.uc.ResidentInventory(c.UserContext(), c.Params("id"), GetReferenceDate(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Kardex godoc
// @Summary      Kardex de un residente
// @Description  Medicamentos activos con faltante/sobrante al fin del tratamiento y franja de urgencia.
// @Tags         residents
// @Produce      json
// @Param        id    path   string  true   "ID del residente"
// @Param        date  query  string  false  "Fecha de referencia AAAA-MM-DD"
// @Success      200  {object}  dto.KardexDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/residents/{id}/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	out, err := h.uc.Kardex(c.UserContext(), c.Params("id"), GetReferenceDate(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
