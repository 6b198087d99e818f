package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSimpleDaysRemaining(t *testing.T) {
	assert.EqualValues(t, 2, stock.SimpleDaysRemaining(dec("4"), dec("2")))
	assert.EqualValues(t, 2, stock.SimpleDaysRemaining(dec("5"), dec("2")), "redondea hacia abajo")
	assert.EqualValues(t, 12, stock.SimpleDaysRemaining(dec("3"), dec("0.25")))
	assert.EqualValues(t, 0, stock.SimpleDaysRemaining(dec("10"), decimal.Zero), "consumo 0 no divide")
	assert.EqualValues(t, 0, stock.SimpleDaysRemaining(decimal.Zero, dec("2")))
}

func TestPillsNeeded_Transiciones(t *testing.T) {
	usage := dec("2")
	w := stock.ParseWindow("2026-02-01", intPtr(30))

	cases := []struct {
		name       string
		today      string
		want       string
		daysPassed int
	}{
		{"aún no empieza", "2026-01-25", "60", -7},
		{"primer día", "2026-02-01", "60", 0},
		{"en curso", "2026-02-09", "44", 8},
		{"último día (daysPassed = días − 1)", "2026-03-02", "2", 29},
		{"terminado (daysPassed = días)", "2026-03-03", "0", 30},
		{"muy posterior", "2026-06-01", "0", 120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			needed, passed, ok := stock.PillsNeeded(usage, w, date(tc.today))
			require.True(t, ok)
			assert.Equal(t, tc.want, needed.String())
			assert.Equal(t, tc.daysPassed, passed)
		})
	}
}

func TestProject_SinVentanaNoCalculaSaldo(t *testing.T) {
	p := stock.Project(dec("4"), dec("2"), stock.ParseWindow("", nil), date("2026-02-09"))
	assert.EqualValues(t, 2, p.SimpleDaysRemaining)
	assert.False(t, p.TreatmentBalance.Valid)
	assert.False(t, p.PillsNeeded.Valid)
	assert.Nil(t, p.DaysPassed)
	assert.Equal(t, stock.WindowAbsent, p.WindowState)
}

func TestProject_SaldoDeTratamiento(t *testing.T) {
	p := stock.Project(dec("50"), dec("2"), stock.ParseWindow("2026-02-01", intPtr(30)), date("2026-02-09"))
	require.True(t, p.TreatmentBalance.Valid)
	assert.Equal(t, "6", p.TreatmentBalance.Decimal.String())
	require.NotNil(t, p.DaysPassed)
	assert.Equal(t, 8, *p.DaysPassed)
}

func TestProject_StockNegativoSeNormaliza(t *testing.T) {
	p := stock.Project(dec("-10"), dec("2"), stock.ParseWindow("2026-02-01", intPtr(30)), date("2026-03-10"))
	assert.EqualValues(t, 0, p.SimpleDaysRemaining)
	require.True(t, p.TreatmentBalance.Valid)
	assert.True(t, p.TreatmentBalance.Decimal.IsZero())
}
