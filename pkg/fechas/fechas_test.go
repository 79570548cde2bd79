package fechas_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/pkg/fechas"
)

func TestParse_FormatoValido(t *testing.T) {
	got, ok := fechas.Parse("31.12.2099")
	require.True(t, ok)
	assert.Equal(t, 31, got.Day())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 2099, got.Year())

	// Un dígito en día y mes también es válido
	got, ok = fechas.Parse("1.2.2025")
	require.True(t, ok)
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, time.February, got.Month())
}

func TestParse_Rechazos(t *testing.T) {
	cases := []string{
		"",           // vacía: "sin fecha" para los llamadores
		"31.02.2025", // imposible en el calendario
		"2025-02-31", // formato ISO no admitido
		"12/31/2025", // separador incorrecto
		"31.12.25",   // año de dos dígitos
		"31.12.1899", // fuera del rango de años
		"31.12.2101",
		"abc",
		"1.2.3.4",
	}
	for _, s := range cases {
		_, ok := fechas.Parse(s)
		assert.False(t, ok, "debe rechazarse: %q", s)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), // bisiesto
		time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(1900, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		got, ok := fechas.Parse(fechas.Format(d))
		require.True(t, ok, "round-trip de %s", d)
		assert.True(t, got.Equal(d))
	}
}

func TestFormat_CerosALaIzquierda(t *testing.T) {
	d := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05.03.2025", fechas.Format(d))
}

func TestDaysUntil_Techo(t *testing.T) {
	now := time.Date(2025, time.June, 10, 10, 0, 0, 0, time.UTC)

	// Medianoche de hoy ya pasó, pero sigue siendo "hoy": 0 días
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, fechas.DaysUntil(today, now))

	// Ayer: negativo
	yesterday := today.AddDate(0, 0, -1)
	assert.Equal(t, -1, fechas.DaysUntil(yesterday, now))

	// En tres días (medianoche): techo de 2.58 = 3
	inThree := today.AddDate(0, 0, 3)
	assert.Equal(t, 3, fechas.DaysUntil(inThree, now))
}

func TestIsWithinRange(t *testing.T) {
	min := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, fechas.IsWithinRange(mid, &min, &max))
	assert.True(t, fechas.IsWithinRange(mid, nil, nil))
	assert.True(t, fechas.IsWithinRange(min, &min, &max)) // cotas inclusivas
	assert.True(t, fechas.IsWithinRange(max, &min, &max))
	assert.False(t, fechas.IsWithinRange(min.AddDate(0, 0, -1), &min, nil))
	assert.False(t, fechas.IsWithinRange(max.AddDate(0, 0, 1), nil, &max))
}
