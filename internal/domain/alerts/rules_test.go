package alerts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/internal/domain/alerts"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

var now = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func producto(expiry string, stock, min int) entity.Product {
	return entity.Product{
		ID:           "p1",
		Name:         "Tomaten",
		Unit:         "kg",
		CurrentStock: stock,
		MinStock:     min,
		ExpiryDate:   expiry,
	}
}

func TestEvaluate_SinSenales(t *testing.T) {
	got := alerts.Evaluate(producto("", 10, 5), now)
	assert.Empty(t, got)

	// Fecha no parseable equivale a "sin vencimiento", no a error
	got = alerts.Evaluate(producto("31.02.2025", 10, 5), now)
	assert.Empty(t, got)
}

func TestEvaluate_Vencido(t *testing.T) {
	got := alerts.Evaluate(producto("09.06.2025", 10, 5), now)
	require.Len(t, got, 1)
	assert.Equal(t, "p1-expired", got[0].ID)
	assert.Equal(t, entity.AlertTypeExpiry, got[0].Type)
	assert.Equal(t, entity.SeverityHigh, got[0].Severity)
}

func TestEvaluate_VenceHoy(t *testing.T) {
	got := alerts.Evaluate(producto("10.06.2025", 10, 5), now)
	require.Len(t, got, 1)
	assert.Equal(t, "p1-expiry", got[0].ID)
	assert.Equal(t, entity.SeverityHigh, got[0].Severity)
}

func TestEvaluate_VencePronto(t *testing.T) {
	// A tres días del corte: medium
	got := alerts.Evaluate(producto("13.06.2025", 10, 5), now)
	require.Len(t, got, 1)
	assert.Equal(t, "p1-expiry", got[0].ID)
	assert.Equal(t, entity.SeverityMedium, got[0].Severity)

	// A cuatro días ya no hay alerta de vencimiento
	got = alerts.Evaluate(producto("14.06.2025", 10, 5), now)
	assert.Empty(t, got)
}

func TestEvaluate_StockBajo(t *testing.T) {
	got := alerts.Evaluate(producto("", 4, 5), now)
	require.Len(t, got, 1)
	assert.Equal(t, "p1-low-stock", got[0].ID)
	assert.Equal(t, entity.AlertTypeLowStock, got[0].Type)
	assert.Equal(t, entity.SeverityMedium, got[0].Severity)

	// Agotado: high
	got = alerts.Evaluate(producto("", 0, 5), now)
	require.Len(t, got, 1)
	assert.Equal(t, entity.SeverityHigh, got[0].Severity)
}

func TestEvaluate_VencimientoYStockBajoCoexisten(t *testing.T) {
	got := alerts.Evaluate(producto("09.06.2025", 2, 5), now)
	require.Len(t, got, 2)
	assert.Equal(t, entity.AlertTypeExpiry, got[0].Type)
	assert.Equal(t, entity.AlertTypeLowStock, got[1].Type)
}

func TestEvaluate_Idempotente(t *testing.T) {
	p := producto("12.06.2025", 3, 5)
	a := alerts.Evaluate(p, now)
	b := alerts.Evaluate(p, now)
	assert.Equal(t, a, b)
}
