package handlers

import (
	"net/http"

	"github.com/dropDatabas3/ethos/internal/vault"
)

// Healthz maneja GET /healthz. Reporta si la clave de sellado está cargada;
// sin ella toda operación con payload persistible fallaría.
func Healthz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if !vault.IsReady() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{
		"status": status,
	})
}
