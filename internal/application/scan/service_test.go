package scan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/application/scan"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/infrastructure/kv"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

func nuevoServicio(t *testing.T, reloj *relojFijo) (*scan.Service, *inventory.UseCase, *ledger.Store) {
	t.Helper()
	store := ledger.New(kv.NewMemory(), logger.Nop())
	require.NoError(t, store.Load(context.Background()))
	inv := inventory.New(store, logger.Nop())
	deb := scan.NewDebouncer(cooldown, timeout, reloj.now)
	return scan.NewService(deb, store, inv, logger.Nop()), inv, store
}

func TestScan_ProductoEncontrado(t *testing.T) {
	ctx := context.Background()
	reloj := nuevoReloj()
	svc, inv, _ := nuevoServicio(t, reloj)

	p, err := inv.CreateProduct(ctx, inventory.ProductInput{Name: "Tomaten", Barcode: "4001"})
	require.NoError(t, err)

	res := svc.Scan(ctx, "4001")
	assert.Equal(t, scan.OutcomeFound, res.Outcome)
	require.NotNil(t, res.Product)
	assert.Equal(t, p.ID, res.Product.ID)
	// El pipeline cierra solo: listo para la siguiente lectura
	assert.Equal(t, scan.StateIdle, svc.State())
}

func TestScan_SinProductoAbreDialogo(t *testing.T) {
	ctx := context.Background()
	reloj := nuevoReloj()
	svc, _, _ := nuevoServicio(t, reloj)

	res := svc.Scan(ctx, "9999")
	assert.Equal(t, scan.OutcomeNotFound, res.Outcome)
	assert.Equal(t, scan.StateDialogActive, svc.State())

	// Mientras el diálogo está activo toda lectura se descarta
	reloj.avanzar(10 * time.Second)
	res = svc.Scan(ctx, "8888")
	assert.Equal(t, scan.OutcomeSuppressed, res.Outcome)
}

func TestConfirm_CreaProductoConElCodigoLeido(t *testing.T) {
	ctx := context.Background()
	reloj := nuevoReloj()
	svc, _, store := nuevoServicio(t, reloj)

	_ = svc.Scan(ctx, "9999")
	p, err := svc.Confirm(ctx, inventory.ProductInput{Name: "Gurken", CurrentStock: 5})
	require.NoError(t, err)
	assert.Equal(t, "9999", p.Barcode)
	assert.Equal(t, scan.StateIdle, svc.State())

	// El producto quedó en el libro con su movimiento inicial
	got, ok := store.FindByBarcode("9999")
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
	assert.Len(t, store.Movements(), 1)
}

func TestConfirm_SinDialogoActivo(t *testing.T) {
	reloj := nuevoReloj()
	svc, _, _ := nuevoServicio(t, reloj)

	_, err := svc.Confirm(context.Background(), inventory.ProductInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNoPendingScan)
}

func TestConfirm_FalloDejaElDialogoActivo(t *testing.T) {
	ctx := context.Background()
	reloj := nuevoReloj()
	svc, _, _ := nuevoServicio(t, reloj)

	_ = svc.Scan(ctx, "9999")
	// Nombre vacío: la creación falla y el diálogo sigue esperando
	_, err := svc.Confirm(ctx, inventory.ProductInput{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, scan.StateDialogActive, svc.State())
}

func TestCancel_CierraSinCrear(t *testing.T) {
	ctx := context.Background()
	reloj := nuevoReloj()
	svc, _, store := nuevoServicio(t, reloj)

	_ = svc.Scan(ctx, "9999")
	svc.Cancel()
	assert.Equal(t, scan.StateIdle, svc.State())
	assert.Empty(t, store.Products())
}
