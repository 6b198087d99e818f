package inventory_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

func decodeRequest(t *testing.T, body string) dto.AssessRequest {
	t.Helper()
	var req dto.AssessRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestAssess_DeficitDeTratamiento(t *testing.T) {
	uc := inventory.NewAssessUseCase(inventory.DefaultSettings(), logger.Nop())
	req := decodeRequest(t, `{
		"id": "m1",
		"name": "Enalapril",
		"dosage_pattern": "1-0-1-0",
		"dose_type": "fraction",
		"pill_fraction": "0.5",
		"current_stock": 40,
		"start_date": "2026-01-01",
		"treatment_days": 120,
		"reference_date": "2026-01-31"
	}`)

	out, err := uc.Assess(req, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "2026-01-31", out.ReferenceDate)
	assert.Equal(t, "m1", out.ID)
	assert.Equal(t, "1", out.DailyUsage.String())
	assert.Equal(t, int64(40), out.SimpleDaysRemaining)
	require.NotNil(t, out.DaysPassed)
	assert.Equal(t, 30, *out.DaysPassed)
	require.NotNil(t, out.TreatmentBalance)
	assert.Equal(t, "-50", out.TreatmentBalance.String())
	assert.Equal(t, "low", out.Status)
	assert.True(t, out.IsLowStock)
	assert.Contains(t, out.Reasons, "TREATMENT_DEFICIT")
}

func TestAssess_SinFechaUsaNow(t *testing.T) {
	uc := inventory.NewAssessUseCase(inventory.DefaultSettings(), logger.Nop())
	req := decodeRequest(t, `{"dosage_pattern": "1-0-0-0", "current_stock": 10}`)

	now := time.Date(2026, 5, 4, 23, 30, 0, 0, time.FixedZone("COT", -5*3600))
	out, err := uc.Assess(req, now)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-04", out.ReferenceDate, "la fecha civil de now, no la de UTC")
	assert.Equal(t, "ok", out.Status)
	assert.NotNil(t, out.Reasons)
	assert.Empty(t, out.Reasons)
}

func TestAssess_FechaDeReferenciaInvalida(t *testing.T) {
	uc := inventory.NewAssessUseCase(inventory.DefaultSettings(), logger.Nop())
	req := decodeRequest(t, `{"dosage_pattern": "1-0-0-0", "current_stock": 10, "reference_date": "31/01/2026"}`)

	_, err := uc.Assess(req, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

// Los datos del medicamento nunca producen error: solo degradan a revisión.
func TestAssess_DatosIlegiblesNoFallan(t *testing.T) {
	uc := inventory.NewAssessUseCase(inventory.DefaultSettings(), logger.Nop())
	req := decodeRequest(t, `{
		"dosage_pattern": "1-0-1-0",
		"current_stock": 30,
		"start_date": "ayer",
		"treatment_days": 10,
		"reference_date": "2026-01-31"
	}`)

	out, err := uc.Assess(req, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "low", out.Status)
	assert.True(t, out.NeedsReview)
	assert.Contains(t, out.Reasons, "INVALID_WINDOW")
	assert.Nil(t, out.TreatmentBalance)
}

func TestAssess_StockNegativoSeNormaliza(t *testing.T) {
	uc := inventory.NewAssessUseCase(inventory.DefaultSettings(), logger.Nop())
	req := decodeRequest(t, `{"dosage_pattern": "1-0-0-0", "current_stock": -4, "reference_date": "2026-01-31"}`)

	out, err := uc.Assess(req, time.Now())
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.IsZero())
	assert.Equal(t, "critical", out.Status)
}

func TestAssessBatch_Contadores(t *testing.T) {
	uc := inventory.NewAssessUseCase(inventory.DefaultSettings(), logger.Nop())
	var req dto.AssessBatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"reference_date": "2026-01-31",
		"medications": [
			{"id": "a", "dosage_pattern": "1-0-1-0", "current_stock": 40},
			{"id": "b", "dosage_pattern": "1-0-0-0", "current_stock": 3},
			{"id": "c", "dosage_pattern": "PRN", "current_stock": 10},
			{"id": "d", "dosage_pattern": "1-0-0-0", "current_stock": 0}
		]
	}`), &req))

	resp, err := uc.AssessBatch(req, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026-01-31", resp.ReferenceDate)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.Low)
	assert.Equal(t, 2, resp.Critical)
	assert.Equal(t, 1, resp.NeedsReview)
	require.Len(t, resp.Items, 4)
	for i, id := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, id, resp.Items[i].ID, "se conserva el orden de la petición")
		assert.Equal(t, "2026-01-31", resp.Items[i].ReferenceDate)
	}
}

func TestAssessBatch_FechaInvalida(t *testing.T) {
	uc := inventory.NewAssessUseCase(inventory.DefaultSettings(), logger.Nop())

	_, err := uc.AssessBatch(dto.AssessBatchRequest{ReferenceDate: "mañana"}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
