package stock

import (
	"strings"
	"time"
)

// WindowState distingue una ventana de tratamiento ausente de una inutilizable.
type WindowState int

const (
	WindowAbsent WindowState = iota
	WindowValid
	WindowInvalid
)

// DateLayout formato ISO de fecha (sin hora) usado en toda la API.
const DateLayout = "2006-01-02"

// Window ventana de tratamiento: fecha de inicio y duración total en días.
// Start se guarda como fecha civil (medianoche UTC).
type Window struct {
	State WindowState
	Start time.Time
	Days  int
}

// NewWindow construye la ventana a partir de valores ya tipados (p. ej. columnas de BD).
// Falta la fecha o la duración → ausente (solo aplica la señal simple);
// días no positivos → inválida.
func NewWindow(start *time.Time, days *int) Window {
	if start == nil || start.IsZero() || days == nil {
		return Window{State: WindowAbsent}
	}
	if *days <= 0 {
		return Window{State: WindowInvalid}
	}
	return Window{State: WindowValid, Start: civilDate(*start), Days: *days}
}

// ParseWindow construye la ventana desde la fecha ISO recibida en el borde (JSON, CSV).
// Acepta "2006-01-02" o un timestamp RFC 3339; cualquier otro texto marca la ventana como inválida.
func ParseWindow(startDate string, days *int) Window {
	startDate = strings.TrimSpace(startDate)
	if startDate == "" {
		return Window{State: WindowAbsent}
	}
	start, ok := parseDate(startDate)
	if !ok {
		return Window{State: WindowInvalid}
	}
	return NewWindow(&start, days)
}

func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseDate interpreta una fecha de referencia en formato ISO.
func ParseDate(s string) (time.Time, bool) {
	t, ok := parseDate(strings.TrimSpace(s))
	if !ok {
		return time.Time{}, false
	}
	return civilDate(t), true
}

// civilDate trunca a día calendario conservando año/mes/día de la zona original.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween días calendario completos entre from y to (negativo si to es anterior).
// Ambas fechas se truncan al día antes de restar, sin sesgo por hora ni cambio de horario.
func DaysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

// EndDate fecha en que termina el tratamiento (inicio + días).
func (w Window) EndDate() (time.Time, bool) {
	if w.State != WindowValid {
		return time.Time{}, false
	}
	return w.Start.AddDate(0, 0, w.Days), true
}

// DaysPassed días transcurridos desde el inicio; negativo si el tratamiento aún no empieza.
func (w Window) DaysPassed(today time.Time) (int, bool) {
	if w.State != WindowValid {
		return 0, false
	}
	return DaysBetween(w.Start, today), true
}

// DaysUntilEnd días que faltan para el fin del tratamiento (negativo si ya terminó).
func (w Window) DaysUntilEnd(today time.Time) (int, bool) {
	end, ok := w.EndDate()
	if !ok {
		return 0, false
	}
	return DaysBetween(today, end), true
}

// ExpiringSoon el tratamiento termina dentro de threshold días (y todavía no terminó).
func (w Window) ExpiringSoon(today time.Time, threshold int) bool {
	left, ok := w.DaysUntilEnd(today)
	return ok && left > 0 && left <= threshold
}

// Expired el tratamiento ya terminó.
func (w Window) Expired(today time.Time) bool {
	left, ok := w.DaysUntilEnd(today)
	return ok && left < 0
}
