package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// 01 - Consent Gate sobre HTTP: grant, deny, mismatch y revoke.
func Test_01_ConsentFlow(t *testing.T) {
	srv := newServer(t)

	values := map[string]any{
		"environmental_importance":   5,
		"labor_practices_importance": 5,
		"local_sourcing_preference":  4,
		"animal_welfare_importance":  2,
		"transparency_importance":    4,
	}

	t.Run("assess with valid token succeeds", func(t *testing.T) {
		tok := issueToken(t, srv, "u1", "custom.ethical.values")
		status, out := postJSON(t, srv, "/v1/agent/values/assess", map[string]any{
			"subject_id": "u1",
			"token":      tok,
			"values":     values,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "success", out["status"])
		require.Equal(t, "sealed", out["state"])
		require.NotEmpty(t, out["sealed_data"])
	})

	t.Run("wrong scope is consent_denied", func(t *testing.T) {
		// Token de valores usado contra el análisis de historial.
		tok := issueToken(t, srv, "u1", "custom.ethical.values")
		status, out := postJSON(t, srv, "/v1/agent/history/analyze", map[string]any{
			"subject_id": "u1",
			"token":      tok,
		})
		require.Equal(t, http.StatusForbidden, status)
		require.Equal(t, "consent_denied", out["code"])
	})

	t.Run("subject mismatch is its own denial", func(t *testing.T) {
		// Token emitido para u1, operación reclamada por u2. La distinción
		// importa: el token es válido, la identidad no coincide.
		tok := issueToken(t, srv, "u1", "custom.ethical.values")
		status, out := postJSON(t, srv, "/v1/agent/values/assess", map[string]any{
			"subject_id": "u2",
			"token":      tok,
			"values":     values,
		})
		require.Equal(t, http.StatusForbidden, status)
		require.Equal(t, "subject_mismatch", out["code"])
	})

	t.Run("revoked token is consent_denied with reason", func(t *testing.T) {
		tok := issueToken(t, srv, "u1", "custom.supply.chain")

		status, out := postJSON(t, srv, "/v1/tokens/revoke", map[string]any{"token": tok})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "success", out["status"])

		status, out = postJSON(t, srv, "/v1/agent/supplychain/trace", map[string]any{
			"subject_id":  "u1",
			"token":       tok,
			"product_url": "https://shop.example/p/1",
		})
		require.Equal(t, http.StatusForbidden, status)
		require.Equal(t, "consent_denied", out["code"])
		require.Contains(t, out["detail"], "revoked")
	})

	t.Run("garbage token is consent_denied", func(t *testing.T) {
		status, out := postJSON(t, srv, "/v1/agent/report", map[string]any{
			"subject_id": "u1",
			"token":      "not-a-jwt",
		})
		require.Equal(t, http.StatusForbidden, status)
		require.Equal(t, "consent_denied", out["code"])
	})
}
