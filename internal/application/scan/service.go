package scan

import (
	"context"
	"sync"

	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/ledger"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/infrastructure/metrics"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

// Resultado lógico de una lectura admitida o descartada.
type Outcome string

const (
	OutcomeSuppressed Outcome = "suppressed" // descartada por el debouncer; nunca llega al usuario
	OutcomeFound      Outcome = "found"      // producto resuelto: sigue la captura de movimiento
	OutcomeNotFound   Outcome = "not_found"  // sin producto: diálogo de alta pendiente
)

// Result respuesta de una lectura.
type Result struct {
	Outcome Outcome
	State   State
	Product *entity.Product
}

// Service conecta el debouncer con la búsqueda de productos y el alta
// post-escaneo. No posee datos: solo conduce las operaciones del libro.
type Service struct {
	deb   *Debouncer
	store *ledger.Store
	inv   *inventory.UseCase
	log   *logger.Logger

	mu          sync.Mutex
	pendingCode string
}

// NewService construye el servicio de escaneo.
func NewService(deb *Debouncer, store *ledger.Store, inv *inventory.UseCase, log *logger.Logger) *Service {
	return &Service{deb: deb, store: store, inv: inv, log: log}
}

// Scan procesa una lectura cruda de la fuente (cámara o entrada manual);
// la fuente no deduplica ni limita frecuencia, eso es trabajo de aquí.
// Una lectura descartada es silenciosa por diseño: observable solo en el
// log y las métricas, jamás como error al usuario.
func (s *Service) Scan(ctx context.Context, code string) Result {
	if !s.deb.Admit(code) {
		metrics.ScansSuppressed.Inc()
		s.log.Debug().Str("code", code).Msg("lectura descartada por el debouncer")
		return Result{Outcome: OutcomeSuppressed, State: s.deb.State()}
	}
	metrics.ScansAdmitted.Inc()

	if p, ok := s.store.FindByBarcode(code); ok {
		s.deb.Finish()
		s.log.Info().Str("code", code).Str("product_id", p.ID).Msg("lectura resuelta")
		return Result{Outcome: OutcomeFound, State: s.deb.State(), Product: &p}
	}

	s.mu.Lock()
	s.pendingCode = code
	s.mu.Unlock()
	s.deb.OpenDialog()
	s.log.Info().Str("code", code).Msg("código sin producto: diálogo de alta")
	return Result{Outcome: OutcomeNotFound, State: s.deb.State()}
}

// Confirm crea el producto del diálogo pendiente con el código leído como
// barcode y cierra el pipeline. Si la creación falla el diálogo sigue
// activo para reintentar o cancelar.
func (s *Service) Confirm(ctx context.Context, in inventory.ProductInput) (entity.Product, error) {
	if s.deb.State() != StateDialogActive {
		return entity.Product{}, domain.ErrNoPendingScan
	}

	s.mu.Lock()
	in.Barcode = s.pendingCode
	s.mu.Unlock()

	p, err := s.inv.CreateProduct(ctx, in)
	if err != nil {
		return entity.Product{}, err
	}

	s.clearPending()
	s.deb.Finish()
	return p, nil
}

// Cancel cierra el diálogo sin crear nada.
func (s *Service) Cancel() {
	s.clearPending()
	s.deb.Dismiss()
}

// Reset fuerza Idle desde cualquier estado y olvida la lectura pendiente.
func (s *Service) Reset() {
	s.clearPending()
	s.deb.Reset()
}

// State expone el estado actual de la máquina.
func (s *Service) State() State {
	return s.deb.State()
}

func (s *Service) clearPending() {
	s.mu.Lock()
	s.pendingCode = ""
	s.mu.Unlock()
}
