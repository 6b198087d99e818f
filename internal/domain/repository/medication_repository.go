package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// MedicationRepository puerto de lectura de medicamentos prescritos.
// La escritura pertenece al subsistema CRUD; este servicio solo consulta.
type MedicationRepository interface {
	// ListByResident devuelve todos los medicamentos del residente (activos y suspendidos).
	ListByResident(ctx context.Context, residentID string) ([]*entity.Medication, error)
	// ListActive devuelve los medicamentos activos de todos los residentes.
	ListActive(ctx context.Context) ([]*entity.Medication, error)
}
