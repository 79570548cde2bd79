// Package metrics registra los contadores Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansAdmitted lecturas de código de barras admitidas por el debouncer.
	ScansAdmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despensa_scans_admitted_total",
		Help: "Lecturas de código de barras admitidas al pipeline.",
	})

	// ScansSuppressed lecturas descartadas (jitter, duplicados, pipeline ocupado).
	ScansSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despensa_scans_suppressed_total",
		Help: "Lecturas de código de barras descartadas por el debouncer.",
	})

	// MovementsApplied movimientos de stock aplicados, por tipo.
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "despensa_movements_total",
		Help: "Movimientos de stock aplicados.",
	}, []string{"type"})

	// AlertRecomputations recálculos del conjunto de alertas de un producto.
	AlertRecomputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despensa_alert_recomputations_total",
		Help: "Recalculos de alertas por producto.",
	})
)
