// Package backup implementa la frontera de exportación/importación: un
// documento JSON con metadatos y las tres colecciones tal cual.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

// Version del formato de exportación.
const Version = "1.0"

// Counts registros por colección en el momento de exportar.
type Counts struct {
	Products  int `json:"products"`
	Movements int `json:"movements"`
	Alerts    int `json:"alerts"`
}

// Metadata metadatos del documento.
type Metadata struct {
	ExportDate string `json:"exportDate"` // RFC 3339
	Version    string `json:"version"`
	Counts     Counts `json:"counts"`
}

// Document documento completo de exportación.
type Document struct {
	Metadata  Metadata          `json:"metadata"`
	Products  []entity.Product  `json:"products"`
	Movements []entity.Movement `json:"movements"`
	Alerts    []entity.Alert    `json:"alerts"`
}

// UseCase exportación e importación del libro.
type UseCase struct {
	store *ledger.Store
	log   *logger.Logger
	now   func() time.Time
}

// New construye el caso de uso.
func New(store *ledger.Store, log *logger.Logger) *UseCase {
	return &UseCase{store: store, log: log, now: time.Now}
}

// Export arma el documento con instantáneas de las tres colecciones.
func (uc *UseCase) Export(ctx context.Context) (*Document, error) {
	products := uc.store.Products()
	movements := uc.store.Movements()
	alerts := uc.store.Alerts()

	doc := &Document{
		Metadata: Metadata{
			ExportDate: uc.now().Format(time.RFC3339),
			Version:    Version,
			Counts: Counts{
				Products:  len(products),
				Movements: len(movements),
				Alerts:    len(alerts),
			},
		},
		Products:  products,
		Movements: movements,
		Alerts:    alerts,
	}
	if doc.Products == nil {
		doc.Products = []entity.Product{}
	}
	if doc.Movements == nil {
		doc.Movements = []entity.Movement{}
	}
	if doc.Alerts == nil {
		doc.Alerts = []entity.Alert{}
	}
	return doc, nil
}

// rawDocument forma intermedia para validar la estructura antes de decodificar.
type rawDocument struct {
	Metadata  *Metadata       `json:"metadata"`
	Products  json.RawMessage `json:"products"`
	Movements json.RawMessage `json:"movements"`
	Alerts    json.RawMessage `json:"alerts"`
}

// Import valida la estructura del documento (metadatos presentes, las tres
// colecciones son arrays) y mezcla por id: un registro entrante reemplaza
// al del mismo id, los nuevos se agregan.
func (uc *UseCase) Import(ctx context.Context, data []byte) error {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if raw.Metadata == nil || raw.Metadata.ExportDate == "" || raw.Metadata.Version == "" {
		return fmt.Errorf("%w: metadatos incompletos", domain.ErrInvalidFormat)
	}

	var (
		products  []entity.Product
		movements []entity.Movement
		alerts    []entity.Alert
	)
	if err := decodeArray(raw.Products, &products); err != nil {
		return fmt.Errorf("%w: products no es un array", domain.ErrInvalidFormat)
	}
	if err := decodeArray(raw.Movements, &movements); err != nil {
		return fmt.Errorf("%w: movements no es un array", domain.ErrInvalidFormat)
	}
	if err := decodeArray(raw.Alerts, &alerts); err != nil {
		return fmt.Errorf("%w: alerts no es un array", domain.ErrInvalidFormat)
	}

	err := uc.store.Run(ctx, func(tx *ledger.Tx) error {
		merged := mergeByID(tx.Products(), products, func(p entity.Product) string { return p.ID })
		if err := tx.ReplaceProducts(merged); err != nil {
			return err
		}
		mergedMovs := mergeByID(tx.Movements(), movements, func(m entity.Movement) string { return m.ID })
		if err := tx.ReplaceMovements(mergedMovs); err != nil {
			return err
		}
		mergedAlerts := mergeByID(tx.Alerts(), alerts, func(a entity.Alert) string { return a.ID })
		return tx.ReplaceAlerts(mergedAlerts)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Int("products", len(products)).
		Int("movements", len(movements)).
		Int("alerts", len(alerts)).
		Msg("importación aplicada")
	return nil
}

// decodeArray falla si raw está ausente o no es un array JSON.
func decodeArray[T any](raw json.RawMessage, dst *[]T) error {
	if len(raw) == 0 {
		return fmt.Errorf("colección ausente")
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	if list == nil {
		// "null" decodifica sin error pero no es un array
		return fmt.Errorf("colección nula")
	}
	*dst = list
	return nil
}

// mergeByID conserva el orden existente, reemplaza por id y agrega los nuevos.
func mergeByID[T any](existing, incoming []T, id func(T) string) []T {
	out := append([]T(nil), existing...)
	index := make(map[string]int, len(out))
	for i, item := range out {
		index[id(item)] = i
	}
	for _, item := range incoming {
		if i, ok := index[id(item)]; ok {
			out[i] = item
			continue
		}
		index[id(item)] = len(out)
		out = append(out, item)
	}
	return out
}
