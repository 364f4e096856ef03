// Package middlewares contiene los middlewares HTTP del servicio.
package middlewares

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/ethos/internal/observability/logger"
)

// statusRecorder captura el status code escrito por el handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger asigna un request_id, inyecta un logger scoped en el
// contexto y loguea cada request al completarse.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}

		log := logger.L().With(
			logger.RequestID(reqID),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
		)
		ctx := logger.ToContext(r.Context(), log)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		rec.Header().Set("X-Request-Id", reqID)

		next.ServeHTTP(rec, r.WithContext(ctx))

		log.Info("request completed",
			logger.Status(rec.status),
			logger.Duration(time.Since(start)),
		)
	})
}
