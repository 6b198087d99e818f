// Package csvload carga residentes y medicamentos desde un CSV exportado del kardex
// (una fila por medicamento). Lo usan el CLI y el modo DATA_SOURCE=csv del servidor.
package csvload

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/stock"
)

// Columnas obligatorias; el resto son opcionales y el orden es libre.
var requiredColumns = []string{"resident_name", "name", "dosage_pattern", "current_stock"}

var optionalColumns = []string{
	"resident_id", "room", "medication_id", "dose_type", "pill_fraction", "dose_amount",
	"start_date", "treatment_days", "status",
}

// Result datos cargados y advertencias por fila (valores que se normalizaron).
type Result struct {
	Residents   []entity.Resident
	Medications []entity.Medication
	Warnings    []string
}

// Loader lee archivos CSV de medicamentos.
type Loader struct {
	encoding string
}

// NewLoader crea un loader. encoding: "utf-8" (defecto), "latin1" o "windows-1252"
// para archivos exportados desde hojas de cálculo en Windows.
func NewLoader(encoding string) *Loader {
	return &Loader{encoding: strings.ToLower(strings.TrimSpace(encoding))}
}

// LoadFile abre y carga el archivo.
func (l *Loader) LoadFile(filename string) (*Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo de medicamentos %s: %w", filename, err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load carga desde cualquier reader.
func (l *Loader) Load(r io.Reader) (*Result, error) {
	decoded, err := l.decode(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: el CSV debe tener encabezado", domain.ErrMalformedSource)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: leer CSV: %v", domain.ErrMalformedSource, err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	residents := make(map[string]int)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: leer CSV: %v", domain.ErrMalformedSource, err)
		}
		// Línea física donde empieza el registro; un campo entre comillas puede ocupar varias.
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: fila %d: se esperaban %d columnas, hay %d",
				domain.ErrMalformedSource, line, len(header), len(record))
		}
		row := rowReader{record: record, index: index}

		resident := parseResident(row)
		if resident.Name == "" && resident.ID == "" {
			return nil, fmt.Errorf("%w: fila %d: resident_name vacío", domain.ErrMalformedSource, line)
		}
		if pos, ok := residents[resident.ID]; ok {
			if res.Residents[pos].Room == "" {
				res.Residents[pos].Room = resident.Room
			}
		} else {
			residents[resident.ID] = len(res.Residents)
			res.Residents = append(res.Residents, resident)
		}

		med, warnings := parseMedication(row, resident.ID)
		for _, w := range warnings {
			res.Warnings = append(res.Warnings, fmt.Sprintf("fila %d: %s", line, w))
		}
		res.Medications = append(res.Medications, med)
	}
	return res, nil
}

func (l *Loader) decode(r io.Reader) (io.Reader, error) {
	switch l.encoding {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", l.encoding)
	}
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan columnas %v (opcionales: %v)",
			domain.ErrMalformedSource, missing, optionalColumns)
	}
	return index, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

type rowReader struct {
	record []string
	index  map[string]int
}

func (r rowReader) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func parseResident(row rowReader) entity.Resident {
	name := row.get("resident_name")
	id := row.get("resident_id")
	if id == "" {
		// Mismo nombre → mismo residente entre filas y entre cargas.
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(name))).String()
	}
	return entity.Resident{ID: id, Name: name, Room: row.get("room"), Active: true}
}

// parseMedication nunca falla: los valores ilegibles se normalizan hacia el lado seguro
// y se informan como advertencia.
func parseMedication(row rowReader, residentID string) (entity.Medication, []string) {
	var warnings []string

	m := entity.Medication{
		ID:            row.get("medication_id"),
		ResidentID:    residentID,
		Name:          row.get("name"),
		DosagePattern: row.get("dosage_pattern"),
		DoseType:      strings.ToLower(row.get("dose_type")),
		Status:        strings.ToLower(row.get("status")),
		UpdatedAt:     time.Now().UTC(),
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.DoseType == "" {
		m.DoseType = string(stock.DoseFraction)
	}
	if m.Status == "" {
		m.Status = entity.MedicationActive
	}

	if raw := row.get("pill_fraction"); raw != "" {
		if v, ok := stock.ParseFraction(raw); ok {
			m.PillFraction = decimal.NewNullDecimal(v)
		} else {
			warnings = append(warnings, fmt.Sprintf("pill_fraction %q ilegible, se usa 1", raw))
		}
	}
	if raw := row.get("dose_amount"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			m.DoseAmount = decimal.NewNullDecimal(v)
		} else {
			warnings = append(warnings, fmt.Sprintf("dose_amount %q ilegible", raw))
		}
	}

	raw := row.get("current_stock")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("current_stock %q ilegible, se usa 0", raw))
		f = 0
	}
	m.CurrentStock = stock.StockFromFloat(f)
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		warnings = append(warnings, fmt.Sprintf("current_stock %q normalizado a 0", raw))
	}

	if raw := row.get("start_date"); raw != "" {
		if d, ok := stock.ParseDate(raw); ok {
			m.StartDate = &d
		} else {
			m.RawStartDate = raw
			warnings = append(warnings, fmt.Sprintf("start_date %q ilegible, requiere revisión", raw))
		}
	}
	if raw := row.get("treatment_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			days = 0
			warnings = append(warnings, fmt.Sprintf("treatment_days %q ilegible, requiere revisión", raw))
		}
		m.TreatmentDays = &days
	}
	return m, warnings
}
