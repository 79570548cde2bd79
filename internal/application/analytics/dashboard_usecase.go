// Package analytics arma la vista agregada del tablero.
package analytics

import (
	"time"

	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/pkg/fechas"
)

// ExpiringWeekDays es el corte de visualización "vence esta semana".
// No coincide con el corte de 3 días del motor de alertas; la diferencia
// es heredada y unificarla es una decisión de producto pendiente.
const ExpiringWeekDays = 7

// Summary agregados para el tablero.
type Summary struct {
	TotalProducts    int              `json:"totalProducts"`
	TotalMovements   int              `json:"totalMovements"`
	ActiveAlerts     int              `json:"activeAlerts"`
	LowStockCount    int              `json:"lowStockCount"`
	ExpiredCount     int              `json:"expiredCount"`
	ExpiringThisWeek []entity.Product `json:"expiringThisWeek"`
}

// DashboardUseCase calcula los agregados sobre instantáneas del libro.
type DashboardUseCase struct {
	store *ledger.Store
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store *ledger.Store) *DashboardUseCase {
	return &DashboardUseCase{store: store, now: time.Now}
}

// Summary recorre los productos una vez y clasifica por vencimiento y stock.
func (uc *DashboardUseCase) Summary() Summary {
	now := uc.now()
	products := uc.store.Products()

	s := Summary{
		TotalProducts:    len(products),
		TotalMovements:   len(uc.store.Movements()),
		ActiveAlerts:     len(uc.store.Alerts()),
		ExpiringThisWeek: []entity.Product{},
	}

	for _, p := range products {
		if p.CurrentStock <= p.MinStock {
			s.LowStockCount++
		}
		expiry, ok := fechas.Parse(p.ExpiryDate)
		if !ok {
			continue
		}
		days := fechas.DaysUntil(expiry, now)
		switch {
		case days < 0:
			s.ExpiredCount++
		case days <= ExpiringWeekDays:
			s.ExpiringThisWeek = append(s.ExpiringThisWeek, p)
		}
	}
	return s
}
