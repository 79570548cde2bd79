// Package alerts contiene las reglas puras que derivan alertas del estado
// de un producto y la hora actual. Sin efectos: la persistencia y el
// reemplazo del conjunto anterior viven en la capa de aplicación.
package alerts

import (
	"fmt"
	"time"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/pkg/fechas"
)

// ExpiringSoonDays es el corte del motor de alertas para "vence pronto".
// Nota: el tablero usa 7 días para "vence esta semana"; la diferencia es
// una decisión de producto heredada, no un bug.
const ExpiringSoonDays = 3

// IDs determinísticos por producto y subtipo: recalcular dos veces con los
// mismos insumos produce el mismo conjunto (salvo timestamp).
func ExpiredAlertID(productID string) string  { return productID + "-expired" }
func ExpiryAlertID(productID string) string   { return productID + "-expiry" }
func LowStockAlertID(productID string) string { return productID + "-low-stock" }

// Evaluate calcula el conjunto de alertas de un producto: cero, una o dos
// (vencimiento y stock bajo son independientes y pueden coexistir).
func Evaluate(p entity.Product, now time.Time) []entity.Alert {
	var out []entity.Alert

	if a, ok := expiryAlert(p, now); ok {
		out = append(out, a)
	}
	if a, ok := lowStockAlert(p, now); ok {
		out = append(out, a)
	}
	return out
}

// expiryAlert aplica la clasificación escalonada y excluyente, en orden:
// vencido (<0, high), vence hoy (==0, high), vence pronto (<=3, medium).
// ExpiryDate vacío o no parseable se trata como "sin señal de vencimiento".
func expiryAlert(p entity.Product, now time.Time) (entity.Alert, bool) {
	expiry, ok := fechas.Parse(p.ExpiryDate)
	if !ok {
		return entity.Alert{}, false
	}

	days := fechas.DaysUntil(expiry, now)
	switch {
	case days < 0:
		return entity.Alert{
			ID:          ExpiredAlertID(p.ID),
			Type:        entity.AlertTypeExpiry,
			Severity:    entity.SeverityHigh,
			ProductID:   p.ID,
			ProductName: p.Name,
			Message:     fmt.Sprintf("%s venció el %s", p.Name, p.ExpiryDate),
			Timestamp:   now,
		}, true
	case days == 0:
		return entity.Alert{
			ID:          ExpiryAlertID(p.ID),
			Type:        entity.AlertTypeExpiry,
			Severity:    entity.SeverityHigh,
			ProductID:   p.ID,
			ProductName: p.Name,
			Message:     fmt.Sprintf("%s vence hoy", p.Name),
			Timestamp:   now,
		}, true
	case days <= ExpiringSoonDays:
		return entity.Alert{
			ID:          ExpiryAlertID(p.ID),
			Type:        entity.AlertTypeExpiry,
			Severity:    entity.SeverityMedium,
			ProductID:   p.ID,
			ProductName: p.Name,
			Message:     fmt.Sprintf("%s vence en %d día(s)", p.Name, days),
			Timestamp:   now,
		}, true
	}
	return entity.Alert{}, false
}

// lowStockAlert: currentStock <= minStock genera alerta; high si el stock
// llegó a cero, medium en el resto.
func lowStockAlert(p entity.Product, now time.Time) (entity.Alert, bool) {
	if p.CurrentStock > p.MinStock {
		return entity.Alert{}, false
	}
	severity := entity.SeverityMedium
	msg := fmt.Sprintf("stock bajo de %s: %d %s (mínimo %d)", p.Name, p.CurrentStock, p.Unit, p.MinStock)
	if p.CurrentStock == 0 {
		severity = entity.SeverityHigh
		msg = fmt.Sprintf("%s está agotado", p.Name)
	}
	return entity.Alert{
		ID:          LowStockAlertID(p.ID),
		Type:        entity.AlertTypeLowStock,
		Severity:    severity,
		ProductID:   p.ID,
		ProductName: p.Name,
		Message:     msg,
		Timestamp:   now,
	}, true
}
