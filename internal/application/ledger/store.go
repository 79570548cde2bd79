// Package ledger implementa el almacén del libro: las tres colecciones
// persistidas (productos, movimientos, alertas), sus primitivas de
// carga/guardado y el canal de notificación de cambios.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

// Claves del backend clave-valor: un array JSON por colección.
const (
	keyProducts  = "products"
	keyMovements = "movements"
	keyAlerts    = "alerts"
)

// Store posee las tres colecciones. Toda mutación pasa por Run, que
// serializa las unidades read-modify-write bajo un único mutex: es el
// mapeo del scheduler cooperativo original a un runtime con hilos reales.
// Si un guardado falla, el estado en memoria queda en la última
// instantánea cargada con éxito y el error se propaga.
type Store struct {
	kv  repository.KVStore
	log *logger.Logger

	mu        sync.Mutex
	products  []entity.Product
	movements []entity.Movement
	alerts    []entity.Alert

	subsMu sync.Mutex
	subs   map[chan struct{}]struct{}
}

// New construye el almacén; llamar Load antes de usarlo.
func New(kv repository.KVStore, log *logger.Logger) *Store {
	return &Store{
		kv:   kv,
		log:  log,
		subs: make(map[chan struct{}]struct{}),
	}
}

// Load lee las tres colecciones del backend. Una clave ausente equivale a
// una colección vacía (primer arranque).
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := loadCollection(ctx, s.kv, keyProducts, &s.products); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.kv, keyMovements, &s.movements); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.kv, keyAlerts, &s.alerts); err != nil {
		return err
	}

	s.log.Info().
		Int("products", len(s.products)).
		Int("movements", len(s.movements)).
		Int("alerts", len(s.alerts)).
		Msg("libro cargado")
	return nil
}

func loadCollection[T any](ctx context.Context, kv repository.KVStore, key string, dst *[]T) error {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		*dst = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("cargar %s: %w", key, err)
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("decodificar %s: %w", key, err)
	}
	*dst = list
	return nil
}

// Subscribe registra un suscriptor de "datos cambiados" (señal sin payload).
func (s *Store) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()
	return ch
}

// Unsubscribe retira el suscriptor y cierra su canal.
func (s *Store) Unsubscribe(ch chan struct{}) {
	s.subsMu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.subsMu.Unlock()
}

// notify difunde la señal sin bloquear el camino de mutación: si el
// suscriptor no está leyendo, la señal pendiente que ya tiene le basta.
func (s *Store) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Run ejecuta fn con acceso exclusivo a las colecciones. Las operaciones
// que leen y escriben la misma colección deben ir dentro de un único Run.
func (s *Store) Run(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s, ctx: ctx})
}

// ── Lecturas (instantáneas copiadas) ──────────────────────────────────────

// Products devuelve una copia de la colección de productos.
func (s *Store) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Product(nil), s.products...)
}

// Movements devuelve una copia; el orden es del más reciente al más antiguo.
func (s *Store) Movements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Movement(nil), s.movements...)
}

// Alerts devuelve una copia de la colección de alertas.
func (s *Store) Alerts() []entity.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Alert(nil), s.alerts...)
}

// ProductByID busca un producto por id.
func (s *Store) ProductByID(id string) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findProduct(s.products, id)
}

// FindByBarcode busca por código de barras con semántica primer-match en el
// orden almacenado; la unicidad del código no se valida al crear productos.
func (s *Store) FindByBarcode(code string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Barcode != "" && p.Barcode == code {
			return p, true
		}
	}
	return entity.Product{}, false
}

func findProduct(list []entity.Product, id string) (entity.Product, error) {
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, domain.ErrProductNotFound
}

// ── Tx: mutaciones dentro de Run ──────────────────────────────────────────

// Tx da acceso a las colecciones dentro de una unidad exclusiva. Cada
// escritura persiste la colección completa y emite una notificación; no hay
// rollback entre colecciones (fuera de alcance del sistema).
type Tx struct {
	s   *Store
	ctx context.Context
}

// ProductByID busca un producto por id.
func (tx *Tx) ProductByID(id string) (entity.Product, error) {
	return findProduct(tx.s.products, id)
}

// FindByBarcode primer-match en el orden almacenado.
func (tx *Tx) FindByBarcode(code string) (entity.Product, bool) {
	for _, p := range tx.s.products {
		if p.Barcode != "" && p.Barcode == code {
			return p, true
		}
	}
	return entity.Product{}, false
}

// Products devuelve la colección actual (copia).
func (tx *Tx) Products() []entity.Product {
	return append([]entity.Product(nil), tx.s.products...)
}

// Movements devuelve la colección actual (copia), más reciente primero.
func (tx *Tx) Movements() []entity.Movement {
	return append([]entity.Movement(nil), tx.s.movements...)
}

// Alerts devuelve la colección actual (copia).
func (tx *Tx) Alerts() []entity.Alert {
	return append([]entity.Alert(nil), tx.s.alerts...)
}

// SaveProduct inserta o reemplaza el producto por id.
func (tx *Tx) SaveProduct(p entity.Product) error {
	list := tx.Products()
	replaced := false
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, p)
	}
	return tx.saveProducts(list)
}

// DeleteProduct elimina el producto y sus alertas; los movimientos
// históricos se conservan.
func (tx *Tx) DeleteProduct(id string) error {
	list := tx.Products()
	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrProductNotFound
	}
	list = append(list[:idx], list[idx+1:]...)
	if err := tx.saveProducts(list); err != nil {
		return err
	}

	var kept []entity.Alert
	for _, a := range tx.s.alerts {
		if a.ProductID != id {
			kept = append(kept, a)
		}
	}
	return tx.saveAlerts(kept)
}

// PrependMovement antepone el movimiento: en memoria y en almacenamiento el
// orden queda del más reciente al más antiguo. Los movimientos nunca se
// mutan después de creados.
func (tx *Tx) PrependMovement(m entity.Movement) error {
	list := append([]entity.Movement{m}, tx.s.movements...)
	raw, err := json.Marshal(ensureArray(list))
	if err != nil {
		return fmt.Errorf("codificar movimientos: %w", err)
	}
	if err := tx.s.kv.Set(tx.ctx, keyMovements, raw); err != nil {
		return fmt.Errorf("guardar movimientos: %w", err)
	}
	tx.s.movements = list
	tx.s.notify()
	return nil
}

// ReplaceAlertsFor descarta todas las alertas del producto e inserta el
// conjunto recalculado. Reemplaza, nunca mezcla.
func (tx *Tx) ReplaceAlertsFor(productID string, computed []entity.Alert) error {
	var list []entity.Alert
	for _, a := range tx.s.alerts {
		if a.ProductID != productID {
			list = append(list, a)
		}
	}
	list = append(list, computed...)
	return tx.saveAlerts(list)
}

// AcknowledgeAlert marca una alerta como reconocida sin tocar las demás.
func (tx *Tx) AcknowledgeAlert(alertID string) error {
	list := tx.Alerts()
	for i := range list {
		if list[i].ID == alertID {
			list[i].Acknowledged = true
			return tx.saveAlerts(list)
		}
	}
	return domain.ErrAlertNotFound
}

// ReplaceProducts, ReplaceMovements y ReplaceAlerts sustituyen la colección
// completa; los usa la importación tras validar y mezclar.
func (tx *Tx) ReplaceProducts(list []entity.Product) error { return tx.saveProducts(list) }

func (tx *Tx) ReplaceMovements(list []entity.Movement) error {
	raw, err := json.Marshal(ensureArray(list))
	if err != nil {
		return fmt.Errorf("codificar movimientos: %w", err)
	}
	if err := tx.s.kv.Set(tx.ctx, keyMovements, raw); err != nil {
		return fmt.Errorf("guardar movimientos: %w", err)
	}
	tx.s.movements = list
	tx.s.notify()
	return nil
}

func (tx *Tx) ReplaceAlerts(list []entity.Alert) error { return tx.saveAlerts(list) }

func (tx *Tx) saveProducts(list []entity.Product) error {
	raw, err := json.Marshal(ensureArray(list))
	if err != nil {
		return fmt.Errorf("codificar productos: %w", err)
	}
	if err := tx.s.kv.Set(tx.ctx, keyProducts, raw); err != nil {
		return fmt.Errorf("guardar productos: %w", err)
	}
	tx.s.products = list
	tx.s.notify()
	return nil
}

func (tx *Tx) saveAlerts(list []entity.Alert) error {
	raw, err := json.Marshal(ensureArray(list))
	if err != nil {
		return fmt.Errorf("codificar alertas: %w", err)
	}
	if err := tx.s.kv.Set(tx.ctx, keyAlerts, raw); err != nil {
		return fmt.Errorf("guardar alertas: %w", err)
	}
	tx.s.alerts = list
	tx.s.notify()
	return nil
}

// ensureArray evita serializar nil como "null": el contrato externo es
// siempre un array JSON.
func ensureArray[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
