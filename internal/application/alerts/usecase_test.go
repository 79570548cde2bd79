package alerts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appalerts "github.com/jhoicas/despensa-api/internal/application/alerts"
	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/infrastructure/kv"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

func setup(t *testing.T) (*appalerts.UseCase, *ledger.Store) {
	t.Helper()
	store := ledger.New(kv.NewMemory(), logger.Nop())
	require.NoError(t, store.Load(context.Background()))
	return appalerts.New(store, logger.Nop()), store
}

func guardarProducto(t *testing.T, store *ledger.Store, p entity.Product) {
	t.Helper()
	require.NoError(t, store.Run(context.Background(), func(tx *ledger.Tx) error {
		return tx.SaveProduct(p)
	}))
}

func TestRecomputeFor_Idempotente(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	guardarProducto(t, store, entity.Product{ID: "p1", Name: "Quark", CurrentStock: 1, MinStock: 3})

	require.NoError(t, uc.RecomputeFor(ctx, "p1"))
	first := store.Alerts()
	require.NoError(t, uc.RecomputeFor(ctx, "p1"))
	second := store.Alerts()

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Severity, second[0].Severity)
	assert.Equal(t, first[0].Message, second[0].Message)
}

func TestRecomputeFor_ReemplazaNoMezcla(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	guardarProducto(t, store, entity.Product{ID: "p1", Name: "Quark", CurrentStock: 1, MinStock: 3})

	require.NoError(t, uc.RecomputeFor(ctx, "p1"))
	require.Len(t, store.Alerts(), 1)

	// Con el mínimo por debajo del stock, el recálculo deja el conjunto vacío:
	// nunca conviven alertas de dos cómputos
	guardarProducto(t, store, entity.Product{ID: "p1", Name: "Quark", CurrentStock: 1, MinStock: 0})
	require.NoError(t, uc.RecomputeFor(ctx, "p1"))
	assert.Empty(t, store.Alerts())
}

func TestRecomputeFor_NoTocaOtrosProductos(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	guardarProducto(t, store, entity.Product{ID: "p1", Name: "A", CurrentStock: 0, MinStock: 1})
	guardarProducto(t, store, entity.Product{ID: "p2", Name: "B", CurrentStock: 0, MinStock: 1})

	require.NoError(t, uc.RecomputeFor(ctx, "p1"))
	require.NoError(t, uc.RecomputeFor(ctx, "p2"))
	require.Len(t, store.Alerts(), 2)

	guardarProducto(t, store, entity.Product{ID: "p1", Name: "A", CurrentStock: 9, MinStock: 1})
	require.NoError(t, uc.RecomputeFor(ctx, "p1"))

	al := store.Alerts()
	require.Len(t, al, 1)
	assert.Equal(t, "p2", al[0].ProductID)
}

func TestRecomputeFor_ProductoInexistente(t *testing.T) {
	uc, _ := setup(t)
	assert.ErrorIs(t, uc.RecomputeFor(context.Background(), "nope"), domain.ErrProductNotFound)
}

func TestAcknowledge_SePierdeAlRecalcular(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	guardarProducto(t, store, entity.Product{ID: "p1", Name: "Quark", CurrentStock: 0, MinStock: 1})

	require.NoError(t, uc.RecomputeFor(ctx, "p1"))
	al := store.Alerts()
	require.Len(t, al, 1)

	require.NoError(t, uc.Acknowledge(ctx, al[0].ID))
	al = store.Alerts()
	require.True(t, al[0].Acknowledged)

	// El recálculo reemplaza: la condición re-disparada vuelve sin reconocer
	require.NoError(t, uc.RecomputeFor(ctx, "p1"))
	al = store.Alerts()
	require.Len(t, al, 1)
	assert.False(t, al[0].Acknowledged)
}
