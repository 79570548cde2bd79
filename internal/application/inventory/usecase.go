// Package inventory implementa el procesador de movimientos: valida y
// aplica un movimiento de stock sobre un producto, registra la entrada
// inmutable en el libro y dispara el recálculo de alertas.
package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/alerts"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/infrastructure/metrics"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

// Movimiento inicial sintetizado al crear un producto con stock.
const (
	InitialStockReason = "initial stock"
	SystemUser         = "System"
)

// UseCase procesa movimientos y el ciclo de vida de productos.
type UseCase struct {
	store *ledger.Store
	log   *logger.Logger
	now   func() time.Time
}

// New construye el caso de uso.
func New(store *ledger.Store, log *logger.Logger) *UseCase {
	return &UseCase{store: store, log: log, now: time.Now}
}

// MovementInput entrada para aplicar un movimiento.
type MovementInput struct {
	ProductID string
	Type      string // in, out, adjustment
	Quantity  int    // no negativa; el significado depende del tipo
	Reason    string
	Notes     string
	User      string
}

// ProductInput atributos de un producto nuevo o editado.
type ProductInput struct {
	Name         string
	Category     string
	Unit         string
	CurrentStock int
	MinStock     int
	ExpiryDate   string // DD.MM.YYYY o vacío
	Location     string
	Supplier     string
	Barcode      string
}

// ApplyMovement aplica el movimiento como unidad read-modify-write: actualiza
// el stock según el tipo, antepone el movimiento al libro y recalcula las
// alertas del producto. Si el producto no existe falla con ErrProductNotFound
// sin escrituras parciales.
//
// "out" no tiene piso en cero: el stock puede quedar negativo (sobre-salida).
func (uc *UseCase) ApplyMovement(ctx context.Context, in MovementInput) (entity.Movement, error) {
	if !entity.ValidMovementType(in.Type) || in.Quantity < 0 ||
		in.ProductID == "" || strings.TrimSpace(in.Reason) == "" {
		return entity.Movement{}, domain.ErrInvalidInput
	}

	now := uc.now()
	var mov entity.Movement

	err := uc.store.Run(ctx, func(tx *ledger.Tx) error {
		p, err := tx.ProductByID(in.ProductID)
		if err != nil {
			return err
		}

		var newStock int
		switch in.Type {
		case entity.MovementTypeIn:
			newStock = p.CurrentStock + in.Quantity
		case entity.MovementTypeOut:
			newStock = p.CurrentStock - in.Quantity
		case entity.MovementTypeAdjustment:
			newStock = in.Quantity
		}

		p = p.WithStock(newStock, now)
		if err := tx.SaveProduct(p); err != nil {
			return err
		}

		mov = entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			Notes:       in.Notes,
			User:        in.User,
			Timestamp:   now,
		}
		if err := tx.PrependMovement(mov); err != nil {
			return err
		}

		metrics.AlertRecomputations.Inc()
		return tx.ReplaceAlertsFor(p.ID, alerts.Evaluate(p, now))
	})
	if err != nil {
		return entity.Movement{}, err
	}

	metrics.MovementsApplied.WithLabelValues(in.Type).Inc()
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("type", in.Type).
		Int("quantity", in.Quantity).
		Msg("movimiento aplicado")
	return mov, nil
}

// CreateProduct asigna id y marcas de tiempo, persiste el producto y, solo
// si nace con stock positivo, sintetiza el movimiento "initial stock" del
// usuario System. Siempre recalcula alertas.
func (uc *UseCase) CreateProduct(ctx context.Context, in ProductInput) (entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.CurrentStock < 0 || in.MinStock < 0 {
		return entity.Product{}, domain.ErrInvalidInput
	}

	now := uc.now()
	p := entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		ExpiryDate:   in.ExpiryDate,
		Location:     in.Location,
		Supplier:     in.Supplier,
		Barcode:      in.Barcode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.store.Run(ctx, func(tx *ledger.Tx) error {
		if err := tx.SaveProduct(p); err != nil {
			return err
		}

		if p.CurrentStock > 0 {
			mov := entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				ProductName: p.Name,
				Type:        entity.MovementTypeIn,
				Quantity:    p.CurrentStock,
				Reason:      InitialStockReason,
				User:        SystemUser,
				Timestamp:   now,
			}
			if err := tx.PrependMovement(mov); err != nil {
				return err
			}
			metrics.MovementsApplied.WithLabelValues(entity.MovementTypeIn).Inc()
		}

		metrics.AlertRecomputations.Inc()
		return tx.ReplaceAlertsFor(p.ID, alerts.Evaluate(p, now))
	})
	if err != nil {
		return entity.Product{}, err
	}

	uc.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("producto creado")
	return p, nil
}

// UpdateProduct edita los atributos del producto. El stock no se toca por
// aquí: solo muta a través de ApplyMovement.
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, in ProductInput) (entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.MinStock < 0 {
		return entity.Product{}, domain.ErrInvalidInput
	}

	now := uc.now()
	var updated entity.Product

	err := uc.store.Run(ctx, func(tx *ledger.Tx) error {
		p, err := tx.ProductByID(id)
		if err != nil {
			return err
		}
		updated = p.WithDetails(in.Name, in.Category, in.Unit, in.ExpiryDate,
			in.Location, in.Supplier, in.Barcode, in.MinStock, now)
		if err := tx.SaveProduct(updated); err != nil {
			return err
		}
		metrics.AlertRecomputations.Inc()
		return tx.ReplaceAlertsFor(updated.ID, alerts.Evaluate(updated, now))
	})
	if err != nil {
		return entity.Product{}, err
	}
	return updated, nil
}

// DeleteProduct elimina el producto y sus alertas; el historial de
// movimientos se conserva.
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.store.Run(ctx, func(tx *ledger.Tx) error {
		return tx.DeleteProduct(id)
	})
}
