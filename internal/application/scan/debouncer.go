// Package scan protege el pipeline "código detectado -> búsqueda ->
// movimiento o diálogo de alta" contra el modo de fallo típico de los
// escáneres de cámara: ráfagas de detecciones del mismo código físico y un
// diálogo asíncrono que no debe mostrarse más de una vez por ráfaga.
package scan

import (
	"sync"
	"time"
)

// Estados de la máquina. A lo sumo un pipeline activo a la vez.
type State string

const (
	StateIdle         State = "idle"
	StateProcessing   State = "processing"
	StateDialogActive State = "dialog_active"
)

// Ventanas por defecto.
const (
	DefaultCooldown          = 2000 * time.Millisecond
	DefaultProcessingTimeout = 5000 * time.Millisecond
)

// Debouncer es el único valor autoritativo del estado del escáner: la
// condición de guarda no se duplica en ninguna otra parte. El timeout de
// processing se resuelve de forma perezosa contra el reloj inyectado, así
// que la recuperación no depende de un timer externo.
type Debouncer struct {
	mu                sync.Mutex
	state             State
	lastScannedCode   string
	lastScanTime      time.Time
	processingSince   time.Time
	cooldown          time.Duration
	processingTimeout time.Duration
	now               func() time.Time
}

// NewDebouncer construye la máquina en Idle. now==nil usa el reloj real.
func NewDebouncer(cooldown, processingTimeout time.Duration, now func() time.Time) *Debouncer {
	if now == nil {
		now = time.Now
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if processingTimeout <= 0 {
		processingTimeout = DefaultProcessingTimeout
	}
	return &Debouncer{
		state:             StateIdle,
		cooldown:          cooldown,
		processingTimeout: processingTimeout,
		now:               now,
	}
}

// resolveTimeout fuerza Idle si processing lleva más del límite sin
// resolverse; evita un escáner colgado para siempre. El código leído se
// conserva: tras una recuperación por timeout la ventana de duplicados
// sigue aplicando.
func (d *Debouncer) resolveTimeout(now time.Time) {
	if d.state == StateProcessing && now.Sub(d.processingSince) >= d.processingTimeout {
		d.state = StateIdle
	}
}

// Admit decide si una lectura cruda entra al pipeline.
//
// En Idle se rechaza si no pasó el cooldown desde la última lectura
// aceptada, o si es el mismo código dentro de 2x cooldown (duplicado
// rezagado). Cualquier lectura en Processing o DialogActive se descarta
// incondicionalmente.
func (d *Debouncer) Admit(code string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.resolveTimeout(now)

	if d.state != StateIdle {
		return false
	}
	if !d.lastScanTime.IsZero() {
		since := now.Sub(d.lastScanTime)
		if since < d.cooldown {
			return false
		}
		if code == d.lastScannedCode && since < 2*d.cooldown {
			return false
		}
	}

	d.state = StateProcessing
	d.lastScannedCode = code
	d.lastScanTime = now
	d.processingSince = now
	return true
}

// OpenDialog pasa a DialogActive: la búsqueda no encontró producto y se
// presenta la decisión "¿crear producto nuevo?".
func (d *Debouncer) OpenDialog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateProcessing {
		d.state = StateDialogActive
	}
}

// Finish cierra el pipeline con acción completada (producto encontrado o
// creado) y vuelve a Idle. El código se limpia: una lectura nueva del mismo
// código tras el cooldown es una intención nueva, no un duplicado.
func (d *Debouncer) Finish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateIdle
	d.lastScannedCode = ""
}

// Dismiss cierra el diálogo sin acción (cancelar/descartar). El código se
// conserva para que un duplicado rezagado del mismo código no reabra el
// diálogo de inmediato.
func (d *Debouncer) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateDialogActive {
		d.state = StateIdle
	}
}

// Reset fuerza Idle desde cualquier estado y limpia código y marca de
// tiempo. Se usa al desmontar el componente que alimenta lecturas.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateIdle
	d.lastScannedCode = ""
	d.lastScanTime = time.Time{}
	d.processingSince = time.Time{}
}

// State devuelve el estado actual, resolviendo primero el timeout.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resolveTimeout(d.now())
	return d.state
}
