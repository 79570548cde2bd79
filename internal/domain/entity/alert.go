package entity

import "time"

// Tipos y severidades de alerta.
const (
	AlertTypeExpiry   = "expiry"
	AlertTypeLowStock = "low_stock"

	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Alert es una vista derivada y desechable del estado de un producto.
// Su ID se deriva determinísticamente del producto y el subtipo, de modo
// que recalcular reemplaza en lugar de duplicar.
type Alert struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Acknowledged bool      `json:"acknowledged"`
}
