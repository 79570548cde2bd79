// Package fechas maneja fechas en formato numérico local DD.MM.YYYY:
// parseo estricto, formateo, rangos y días restantes.
package fechas

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Años admitidos; fuera de este rango la fecha se considera inválida.
const (
	MinYear = 1900
	MaxYear = 2100
)

var pattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)

// Format renderiza día/mes/año con ceros a la izquierda, siempre DD.MM.YYYY.
func Format(t time.Time) string {
	return fmt.Sprintf("%02d.%02d.%04d", t.Day(), int(t.Month()), t.Year())
}

// Parse acepta solo D{1,2}.D{1,2}.D{4}. Fechas sintácticamente correctas pero
// imposibles en el calendario (31.02.2025) se rechazan verificando que la fecha
// construida conserve día, mes y año. Entrada vacía o no parseable devuelve ok=false;
// para los llamadores una cadena vacía significa "sin fecha", no un error.
func Parse(s string) (time.Time, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if year < MinYear || year > MaxYear {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// IsWithinRange devuelve true si ninguna cota (opcional) se viola.
func IsWithinRange(t time.Time, min, max *time.Time) bool {
	if min != nil && t.Before(*min) {
		return false
	}
	if max != nil && t.After(*max) {
		return false
	}
	return true
}

// DaysUntil devuelve la diferencia en días redondeada hacia arriba.
// El techo (y no piso) es deliberado: "más tarde hoy" cuenta como 0 días,
// no como negativo.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
