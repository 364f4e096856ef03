// Package router arma el router chi del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/ethos/internal/http/handlers"
	"github.com/dropDatabas3/ethos/internal/http/middlewares"
	"github.com/dropDatabas3/ethos/internal/metrics"
)

// Deps contiene las dependencias del router.
type Deps struct {
	Agent  *handlers.AgentHandlers
	Tokens *handlers.TokenHandlers

	// Registry para métricas; nil usa el default.
	Registry prometheus.Registerer
}

// New registra todas las rutas y retorna el handler raíz.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middlewares.RequestLogger)

	r.Get("/healthz", handlers.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Register(deps.Registry))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/agent", func(r chi.Router) {
			r.Post("/values/assess", deps.Agent.AssessValues)
			r.Post("/history/analyze", deps.Agent.AnalyzeHistory)
			r.Post("/products/search", deps.Agent.SearchProducts)
			r.Post("/supplychain/trace", deps.Agent.TraceSupplyChain)
			r.Post("/report", deps.Agent.GenerateReport)
		})

		r.Route("/tokens", func(r chi.Router) {
			r.Post("/issue", deps.Tokens.Issue)
			r.Post("/revoke", deps.Tokens.Revoke)
		})
	})

	return r
}
