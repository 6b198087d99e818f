package inventory_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// ── fixtures ──────────────────────────────────────────────────────────────────
//
// Fecha de referencia 2026-03-10.
//
//	Ana Gómez (r1)
//	  Losartán      1-0-1-0  ½ tableta  stock 20  → 20 días, ok
//	  Ácido fólico  1-0-0-0             stock 3   → 3 días, low
//	  Aspirina      suspendido, stock 0  → no cuenta para alertas
//	  Paracetamol   1-1-1-0  dosage     stock 90  → 30 días, termina el 12/03 (por vencer)
//	Pedro Núñez (r2)
//	  Metformina    "según necesidad"   stock 10  → consumo desconocido, critical + revisión
//	  Omeprazol     1-0-0-0             stock 0   → critical
//	  Enalapril     1-0-1-0  1 tableta  stock 40  → 20 días pero faltan 42 para el tratamiento, low

var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func dateP(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intP(v int) *int { return &v }

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func seedStore() *memory.Store {
	s := memory.NewStore()
	s.PutResident(entity.Resident{ID: "r1", Name: "Ana Gómez", Room: "101", Active: true})
	s.PutResident(entity.Resident{ID: "r2", Name: "Pedro Núñez", Room: "102", Active: true})

	s.PutMedication(entity.Medication{
		ID: "m1", ResidentID: "r1", Name: "Losartán", DosagePattern: "1-0-1-0",
		DoseType: "fraction", PillFraction: nd("0.5"),
		CurrentStock: decimal.NewFromInt(20), Status: entity.MedicationActive,
	})
	s.PutMedication(entity.Medication{
		ID: "m2", ResidentID: "r1", Name: "Ácido fólico", DosagePattern: "1-0-0-0",
		DoseType: "fraction", CurrentStock: decimal.NewFromInt(3), Status: entity.MedicationActive,
	})
	s.PutMedication(entity.Medication{
		ID: "m3", ResidentID: "r1", Name: "Aspirina", DosagePattern: "1-0-0-0",
		DoseType: "fraction", CurrentStock: decimal.Zero, Status: entity.MedicationSuspended,
	})
	s.PutMedication(entity.Medication{
		ID: "m7", ResidentID: "r1", Name: "Paracetamol", DosagePattern: "1-1-1-0",
		DoseType: "dosage", DoseAmount: nd("500"), CurrentStock: decimal.NewFromInt(90),
		StartDate: dateP(2026, 2, 10), TreatmentDays: intP(30), Status: entity.MedicationActive,
	})
	s.PutMedication(entity.Medication{
		ID: "m4", ResidentID: "r2", Name: "Metformina", DosagePattern: "según necesidad",
		DoseType: "fraction", CurrentStock: decimal.NewFromInt(10), Status: entity.MedicationActive,
	})
	s.PutMedication(entity.Medication{
		ID: "m5", ResidentID: "r2", Name: "Omeprazol", DosagePattern: "1-0-0-0",
		DoseType: "fraction", CurrentStock: decimal.Zero, Status: entity.MedicationActive,
	})
	s.PutMedication(entity.Medication{
		ID: "m6", ResidentID: "r2", Name: "Enalapril", DosagePattern: "1-0-1-0",
		DoseType: "fraction", PillFraction: nd("1"), CurrentStock: decimal.NewFromInt(40),
		StartDate: dateP(2026, 3, 1), TreatmentDays: intP(30), Status: entity.MedicationActive,
	})
	return s
}

func newInventory(s *memory.Store) *inventory.InventoryUseCase {
	return inventory.NewInventoryUseCase(s, s, inventory.DefaultSettings(), logger.Nop())
}

// failingRepo simula una base de datos caída.
type failingRepo struct{ err error }

func (f failingRepo) GetByID(context.Context, string) (*entity.Resident, error) {
	return nil, f.err
}

func (f failingRepo) List(context.Context) ([]*entity.Resident, error) {
	return nil, f.err
}

func (f failingRepo) ListByResident(context.Context, string) ([]*entity.Medication, error) {
	return nil, f.err
}

func (f failingRepo) ListActive(context.Context) ([]*entity.Medication, error) {
	return nil, f.err
}

var errDB = errors.New("conexión rechazada")
