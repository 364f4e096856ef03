package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/ethos/internal/agent"
	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/http/handlers"
	"github.com/dropDatabas3/ethos/internal/http/router"
	"github.com/dropDatabas3/ethos/internal/revocation"
	storememory "github.com/dropDatabas3/ethos/internal/store/memory"
	"github.com/dropDatabas3/ethos/internal/token"
	"github.com/dropDatabas3/ethos/internal/vault"

	"github.com/prometheus/client_golang/prometheus"
)

// newServer levanta el stack completo sobre httptest: router chi, handlers,
// agente, gate, tokens HS256 y vault con clave de test. Backends en memoria.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(200 - i)
	}
	require.NoError(t, vault.UnsafeSetMasterKeyForTests(key))

	tokens := token.NewService(
		[]byte("e2e-secret-e2e-secret-e2e-secret"),
		"ethos-e2e",
		time.Hour,
		revocation.NewMemory(),
	)
	ag := agent.New(agent.Deps{
		Gate:    consent.NewGate(tokens),
		Sealer:  vault.Std{},
		Records: storememory.New(),
	})

	h := router.New(router.Deps{
		Agent:    handlers.NewAgentHandlers(ag),
		Tokens:   handlers.NewTokenHandlers(tokens),
		Registry: prometheus.NewRegistry(),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// postJSON envía el body como JSON y decodifica la respuesta en un mapa.
func postJSON(t *testing.T, srv *httptest.Server, path string, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// issueToken pide un consent token para el sujeto y scope dados.
func issueToken(t *testing.T, srv *httptest.Server, subjectID, scope string) string {
	t.Helper()
	status, out := postJSON(t, srv, "/v1/tokens/issue", map[string]any{
		"subject_id": subjectID,
		"scope":      scope,
	})
	require.Equal(t, http.StatusOK, status)
	tok, _ := out["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}
