package e2e

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// 00 - Smoke: healthz, metrics y errores de forma básicos.
func Test_00_Smoke(t *testing.T) {
	srv := newServer(t)

	t.Run("healthz", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("malformed JSON body", func(t *testing.T) {
		resp, err := srv.Client().Post(srv.URL+"/v1/agent/report", "application/json",
			strings.NewReader("{not json"))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		require.Contains(t, string(body), `"status":"error"`)
	})

	t.Run("issue rejects invalid scope name", func(t *testing.T) {
		status, out := postJSON(t, srv, "/v1/tokens/issue", map[string]any{
			"subject_id": "u1",
			"scope":      "NOT A SCOPE",
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "error", out["status"])
	})
}
