package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5, cfg.Stock.LowStockDays)
	assert.Equal(t, 7, cfg.Stock.ExpiryWarningDays)
	assert.Equal(t, 30, cfg.Stock.CoverageDays)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_CSVRequiereArchivo(t *testing.T) {
	v := viper.New()
	v.Set("DATA_SOURCE", "CSV")
	_, err := fromViper(v)
	require.Error(t, err)

	v.Set("DATA_FILE", "meds.csv")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, SourceCSV, cfg.Data.Source)
}

func TestFromViper_EnteroInvalidoUsaDefecto(t *testing.T) {
	v := viper.New()
	v.Set("STOCK_LOW_DAYS", "cinco")
	v.Set("HTTP_PORT", "9090")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Stock.LowStockDays)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_FuenteDesconocida(t *testing.T) {
	v := viper.New()
	v.Set("DATA_SOURCE", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "kardex", Password: "p@ss/word", DBName: "kardex", SSLMode: "disable"}
	assert.Equal(t, "postgres://kardex:p%40ss%2Fword@db:5432/kardex?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{}.Location())
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Marte/Olimpo"}.Location())
}
