// Package metrics expone las métricas prometheus del agente.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	operationsTotal   *prometheus.CounterVec
	consentDenials    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
)

// Register inicializa las métricas y devuelve el handler para /metrics.
// Idempotente: llamadas posteriores reutilizan los collectors ya registrados.
func Register(reg prometheus.Registerer) http.Handler {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	registerOnce.Do(func() {
		operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agent_operations_total",
			Help: "Operaciones del agente por resultado",
		}, []string{"operation", "result"}) // result: success|denied|error

		consentDenials = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consent_denials_total",
			Help: "Rechazos de autorización por tipo",
		}, []string{"kind"}) // kind: consent_denied|subject_mismatch

		operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agent_operation_duration_seconds",
			Help:    "Latencia de las operaciones del agente",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"})

		reg.MustRegister(operationsTotal, consentDenials, operationDuration)
	})

	return promhttp.Handler()
}

// ObserveOperation registra el resultado y la duración de una operación.
func ObserveOperation(operation, result string, d time.Duration) {
	if operationsTotal == nil {
		return
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
	operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveDenial registra un rechazo de autorización.
func ObserveDenial(kind string) {
	if consentDenials == nil {
		return
	}
	consentDenials.WithLabelValues(kind).Inc()
}
