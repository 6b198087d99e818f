package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
)

// LocalReferenceDate key en c.Locals con la fecha de referencia de la petición.
const LocalReferenceDate = "reference_date"

// Clock devuelve la hora actual ya expresada en la zona horaria del centro.
type Clock func() time.Time

// ReferenceDate interpreta ?date=AAAA-MM-DD y la deja en c.Locals. Sin parámetro se usa
// la fecha calendario actual de clock; una fecha ilegible responde 400.
func ReferenceDate(clock Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		today, err := inventory.ReferenceDate(c.Query("date"), clock())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "INVALID_DATE",
				Message: "date debe tener formato AAAA-MM-DD",
			})
		}
		c.Locals(LocalReferenceDate, today)
		return c.Next()
	}
}

// GetReferenceDate devuelve la fecha de referencia (después del middleware ReferenceDate).
func GetReferenceDate(c *fiber.Ctx) time.Time {
	v := c.Locals(LocalReferenceDate)
	if v == nil {
		return time.Time{}
	}
	t, _ := v.(time.Time)
	return t
}

// RequireUUIDParam valida que el parámetro de ruta sea un UUID antes de llegar a PostgreSQL.
func RequireUUIDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := uuid.Parse(c.Params(name)); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "INVALID_ID",
				Message: name + " debe ser un UUID",
			})
		}
		return c.Next()
	}
}
