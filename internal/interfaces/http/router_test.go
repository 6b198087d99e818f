package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/kardex-api/internal/interfaces/http"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testResidentID = "6f1c2b7e-3d4a-4e8f-9a1b-2c3d4e5f6a7b"
	testAppName    = "kardex-test"
)

// 2026-03-10 22:00 en Bogotá: en UTC ya es 11 de marzo.
var testNow = time.Date(2026, 3, 10, 22, 0, 0, 0, time.FixedZone("COT", -5*3600))

func seedStore() *memory.Store {
	s := memory.NewStore()
	s.PutResident(entity.Resident{ID: testResidentID, Name: "Ana Gómez", Room: "101", Active: true})

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	days := 30
	s.PutMedication(entity.Medication{
		ID: "m1", ResidentID: testResidentID, Name: "Enalapril", DosagePattern: "1-0-1-0",
		DoseType: "fraction", CurrentStock: decimal.NewFromInt(40),
		StartDate: &start, TreatmentDays: &days, Status: entity.MedicationActive,
	})
	s.PutMedication(entity.Medication{
		ID: "m2", ResidentID: testResidentID, Name: "Metformina", DosagePattern: "PRN",
		DoseType: "fraction", CurrentStock: decimal.NewFromInt(10), Status: entity.MedicationActive,
	})
	s.PutMedication(entity.Medication{
		ID: "m3", ResidentID: testResidentID, Name: "Losartán", DosagePattern: "1-0-0-0",
		DoseType: "fraction", CurrentStock: decimal.NewFromInt(60), Status: entity.MedicationActive,
	})
	return s
}

// buildTestApp construye la aplicación completa sobre un store en memoria y un reloj fijo.
func buildTestApp(requireUUIDs bool) *fiber.App {
	s := seedStore()
	settings := inventory.DefaultSettings()
	log := logger.Nop()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:       testAppName,
		DataSource:    "csv",
		AssessUC:      inventory.NewAssessUseCase(settings, log),
		InventoryUC:   inventory.NewInventoryUseCase(s, s, settings, log),
		RequirementUC: inventory.NewRequirementUseCase(s, s, settings, log),
		Clock:         func() time.Time { return testNow },
		RequireUUIDs:  requireUUIDs,
		Log:           log,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, testAppName, body["service"])
}

func TestAssess_OK(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodPost, "/api/stock/assess", `{
		"dosage_pattern": "1-0-1-0",
		"dose_type": "fraction",
		"pill_fraction": 0.5,
		"current_stock": 40,
		"start_date": "2026-01-01",
		"treatment_days": 120,
		"reference_date": "2026-01-31"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AssessmentDTO
	decode(t, resp, &out)
	assert.Equal(t, "low", out.Status)
	assert.Equal(t, int64(40), out.SimpleDaysRemaining)
	require.NotNil(t, out.TreatmentBalance)
	assert.Equal(t, "-50", out.TreatmentBalance.String())
	assert.Equal(t, "-50", out.BalanceText)
}

// Sin fecha explícita se usa la fecha local del reloj, no la de UTC.
func TestAssess_FechaPorDefectoEnZonaDelCentro(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodPost, "/api/stock/assess",
		`{"dosage_pattern": "1-0-0-0", "current_stock": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AssessmentDTO
	decode(t, resp, &out)
	assert.Equal(t, "2026-03-10", out.ReferenceDate)
}

func TestAssess_FechaEnQuery(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodPost, "/api/stock/assess?date=2026-02-01",
		`{"dosage_pattern": "1-0-0-0", "current_stock": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AssessmentDTO
	decode(t, resp, &out)
	assert.Equal(t, "2026-02-01", out.ReferenceDate)
}

func TestAssess_CuerpoInvalido(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodPost, "/api/stock/assess", `{"dosage_pattern": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INVALID_BODY", e.Code)
}

func TestAssess_FechaInvalida(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodPost, "/api/stock/assess",
		`{"dosage_pattern": "1-0-0-0", "current_stock": 10, "reference_date": "10/03/2026"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INVALID_DATE", e.Code)
}

func TestAssessBatch(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodPost, "/api/stock/assess/batch", `{
		"reference_date": "2026-03-10",
		"medications": [
			{"id": "a", "dosage_pattern": "1-0-0-0", "current_stock": 3},
			{"id": "b", "dosage_pattern": "sin dato", "current_stock": 3}
		]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AssessBatchResponse
	decode(t, resp, &out)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Low)
	assert.Equal(t, 1, out.Critical)
	assert.Equal(t, 1, out.NeedsReview)
}

func TestDashboardSummary(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodGet, "/api/dashboard/summary?date=2026-03-10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.DashboardSummaryDTO
	decode(t, resp, &out)
	assert.Equal(t, 1, out.TotalResidents)
	assert.Equal(t, 3, out.ActiveMedications)
	assert.Equal(t, 1, out.CriticalStock, "Metformina sin patrón legible")
	assert.Equal(t, 1, out.LowStock, "Enalapril no alcanza para el tratamiento")
	assert.Equal(t, 1, out.NeedsReview)
}

func TestDashboardSummary_FechaInvalida(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodGet, "/api/dashboard/summary?date=ayer", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventory_Filtro(t *testing.T) {
	app := buildTestApp(false)

	resp := doRequest(t, app, http.MethodGet, "/api/inventory?filter=review", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.InventoryListDTO
	decode(t, resp, &out)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Metformina", out.Items[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/inventory?q=losartan", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Losartán", out.Items[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/inventory?filter=urgente", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INVALID_FILTER", e.Code)
}

func TestResidents(t *testing.T) {
	resp := doRequest(t, buildTestApp(false), http.MethodGet, "/api/residents", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Total     int               `json:"total"`
		Residents []dto.ResidentDTO `json:"residents"`
	}
	decode(t, resp, &out)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, "Ana Gómez", out.Residents[0].Name)
}

func TestResidentInventory(t *testing.T) {
	resp := doRequest(t, buildTestApp(true), http.MethodGet, "/api/residents/"+testResidentID+"/inventory", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ResidentInventoryDTO
	decode(t, resp, &out)
	assert.Equal(t, testResidentID, out.Resident.ID)
	assert.Len(t, out.Items, 3)
}

func TestResidentInventory_NoExiste(t *testing.T) {
	resp := doRequest(t, buildTestApp(true), http.MethodGet, "/api/residents/00000000-0000-0000-0000-000000000000/inventory", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "NOT_FOUND", e.Code)
}

func TestResidentInventory_IDInvalido(t *testing.T) {
	resp := doRequest(t, buildTestApp(true), http.MethodGet, "/api/residents/abc/inventory", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INVALID_ID", e.Code)

	// Sin validación de UUID el id llega al repositorio y simplemente no existe.
	resp = doRequest(t, buildTestApp(false), http.MethodGet, "/api/residents/abc/inventory", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestKardex(t *testing.T) {
	resp := doRequest(t, buildTestApp(true), http.MethodGet, "/api/residents/"+testResidentID+"/kardex?date=2026-03-10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.KardexDTO
	decode(t, resp, &out)
	assert.Equal(t, "2026-03-10", out.ReferenceDate)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, "Enalapril", out.Rows[0].Name)
	assert.Equal(t, "deficit", out.Rows[0].Supply)
	assert.Equal(t, "2", out.Rows[0].SupplyText)
}

func TestRequirements(t *testing.T) {
	app := buildTestApp(false)

	resp := doRequest(t, app, http.MethodGet, "/api/reports/requirements?days=30&date=2026-03-10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.RequirementReportDTO
	decode(t, resp, &out)
	assert.Equal(t, 30, out.CoverageDays)
	assert.Equal(t, 1, out.ReviewCount)
	require.Len(t, out.Residents, 1)
	assert.Len(t, out.Residents[0].Missing, 1, "Enalapril: 60 necesarios, 40 en stock")
	assert.Len(t, out.Residents[0].Reserve, 1, "Losartán: 30 necesarios, 60 en stock")

	for _, bad := range []string{"0", "400", "treinta"} {
		resp = doRequest(t, app, http.MethodGet, "/api/reports/requirements?days="+bad, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
	}
}
