// Package alerts orquesta el motor de alertas: recalcula el conjunto de un
// producto con las reglas puras del dominio y lo reemplaza atómicamente.
package alerts

import (
	"context"
	"time"

	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/domain/alerts"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/infrastructure/metrics"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

// UseCase recálculo y reconocimiento de alertas.
type UseCase struct {
	store *ledger.Store
	log   *logger.Logger
	now   func() time.Time
}

// New construye el caso de uso.
func New(store *ledger.Store, log *logger.Logger) *UseCase {
	return &UseCase{store: store, log: log, now: time.Now}
}

// List devuelve la colección de alertas actual.
func (uc *UseCase) List() []entity.Alert {
	return uc.store.Alerts()
}

// RecomputeFor recalcula las alertas de un producto y reemplaza su conjunto
// anterior. Idempotente: los ids son determinísticos por producto y subtipo.
func (uc *UseCase) RecomputeFor(ctx context.Context, productID string) error {
	now := uc.now()
	return uc.store.Run(ctx, func(tx *ledger.Tx) error {
		p, err := tx.ProductByID(productID)
		if err != nil {
			return err
		}
		metrics.AlertRecomputations.Inc()
		return tx.ReplaceAlertsFor(p.ID, alerts.Evaluate(p, now))
	})
}

// Acknowledge marca la alerta como reconocida. El reconocimiento se pierde
// en el próximo recálculo del producto: una condición que se re-dispara
// debe volver a la superficie.
func (uc *UseCase) Acknowledge(ctx context.Context, alertID string) error {
	return uc.store.Run(ctx, func(tx *ledger.Tx) error {
		return tx.AcknowledgeAlert(alertID)
	})
}
