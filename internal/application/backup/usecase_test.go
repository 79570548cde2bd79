package backup_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/internal/application/backup"
	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/infrastructure/kv"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

func setup(t *testing.T) (*backup.UseCase, *ledger.Store) {
	t.Helper()
	store := ledger.New(kv.NewMemory(), logger.Nop())
	require.NoError(t, store.Load(context.Background()))
	return backup.New(store, logger.Nop()), store
}

func TestExport_MetadatosYColecciones(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	require.NoError(t, store.Run(ctx, func(tx *ledger.Tx) error {
		if err := tx.SaveProduct(entity.Product{ID: "p1", Name: "Brot"}); err != nil {
			return err
		}
		return tx.PrependMovement(entity.Movement{ID: "m1", ProductID: "p1"})
	}))

	doc, err := uc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, backup.Version, doc.Metadata.Version)
	assert.NotEmpty(t, doc.Metadata.ExportDate)
	assert.Equal(t, 1, doc.Metadata.Counts.Products)
	assert.Equal(t, 1, doc.Metadata.Counts.Movements)
	assert.Equal(t, 0, doc.Metadata.Counts.Alerts)
	assert.NotNil(t, doc.Alerts, "las colecciones vacías se exportan como array")
}

func TestImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	require.NoError(t, store.Run(ctx, func(tx *ledger.Tx) error {
		return tx.SaveProduct(entity.Product{ID: "p1", Name: "Brot"})
	}))

	doc, err := uc.Export(ctx)
	require.NoError(t, err)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	// Importar sobre un almacén vacío reproduce el estado
	uc2, store2 := setup(t)
	require.NoError(t, uc2.Import(ctx, raw))
	got, err := store2.ProductByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "Brot", got.Name)
}

func TestImport_MezclaPorID(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	require.NoError(t, store.Run(ctx, func(tx *ledger.Tx) error {
		if err := tx.SaveProduct(entity.Product{ID: "p1", Name: "Brot"}); err != nil {
			return err
		}
		return tx.SaveProduct(entity.Product{ID: "p2", Name: "Milch"})
	}))

	doc := backup.Document{
		Metadata: backup.Metadata{ExportDate: "2025-06-10T12:00:00Z", Version: backup.Version},
		Products: []entity.Product{
			{ID: "p1", Name: "Vollkornbrot"}, // mismo id: reemplaza
			{ID: "p3", Name: "Eier"},         // nuevo: se agrega
		},
		Movements: []entity.Movement{},
		Alerts:    []entity.Alert{},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, uc.Import(ctx, raw))

	products := store.Products()
	require.Len(t, products, 3)
	got, err := store.ProductByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "Vollkornbrot", got.Name)
}

func TestImport_ValidacionDeEstructura(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	cases := map[string]string{
		"json roto":          `{`,
		"sin metadatos":      `{"products":[],"movements":[],"alerts":[]}`,
		"metadatos a medias": `{"metadata":{"version":"1.0"},"products":[],"movements":[],"alerts":[]}`,
		"products no array":  `{"metadata":{"exportDate":"2025-06-10T12:00:00Z","version":"1.0"},"products":{},"movements":[],"alerts":[]}`,
		"alerts null":        `{"metadata":{"exportDate":"2025-06-10T12:00:00Z","version":"1.0"},"products":[],"movements":[],"alerts":null}`,
		"falta movements":    `{"metadata":{"exportDate":"2025-06-10T12:00:00Z","version":"1.0"},"products":[],"alerts":[]}`,
	}
	for name, raw := range cases {
		err := uc.Import(ctx, []byte(raw))
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, name)
	}
}
