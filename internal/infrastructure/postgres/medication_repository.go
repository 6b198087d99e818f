package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.MedicationRepository = (*MedicationRepo)(nil)

// MedicationRepo implementación de MedicationRepository sobre PostgreSQL (solo lectura).
type MedicationRepo struct {
	q Querier
}

// NewMedicationRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMedicationRepository(q Querier) *MedicationRepo {
	return &MedicationRepo{q: q}
}

// current_stock NULL se lee como 0 y status NULL como "" (activo);
// pill_fraction/dose_amount quedan NULL si no aplican.
const medicationColumns = `
	id::text, resident_id::text, name, COALESCE(dosage_pattern, ''), COALESCE(dose_type, ''),
	pill_fraction, dose_amount, start_date, treatment_days,
	COALESCE(current_stock, 0), COALESCE(status, ''), COALESCE(updated_at, now())`

// ListByResident medicamentos del residente, activos y suspendidos.
func (r *MedicationRepo) ListByResident(ctx context.Context, residentID string) ([]*entity.Medication, error) {
	query := `SELECT ` + medicationColumns + `
		FROM medications
		WHERE resident_id = $1
		ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, residentID)
	if err != nil {
		return nil, queryError("list medications by resident", err)
	}
	return scanMedications(rows)
}

// ListActive medicamentos activos de todos los residentes.
func (r *MedicationRepo) ListActive(ctx context.Context) ([]*entity.Medication, error) {
	query := `SELECT ` + medicationColumns + `
		FROM medications
		WHERE COALESCE(status, '') IN ($1, '')
		ORDER BY resident_id, name, id`
	rows, err := r.q.Query(ctx, query, entity.MedicationActive)
	if err != nil {
		return nil, queryError("list active medications", err)
	}
	return scanMedications(rows)
}

func scanMedications(rows pgx.Rows) ([]*entity.Medication, error) {
	defer rows.Close()

	var list []*entity.Medication
	for rows.Next() {
		var m entity.Medication
		if err := rows.Scan(
			&m.ID, &m.ResidentID, &m.Name, &m.DosagePattern, &m.DoseType,
			&m.PillFraction, &m.DoseAmount, &m.StartDate, &m.TreatmentDays,
			&m.CurrentStock, &m.Status, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("iterate rows", err)
	}
	return list, nil
}
