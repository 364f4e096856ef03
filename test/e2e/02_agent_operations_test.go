package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// 02 - Las cinco operaciones del agente, flujo completo de un sujeto.
func Test_02_AgentOperations(t *testing.T) {
	srv := newServer(t)
	const subject = "u1"

	// Perfil de valores primero: el resto de operaciones lo aprovecha.
	vtok := issueToken(t, srv, subject, "custom.ethical.values")
	status, out := postJSON(t, srv, "/v1/agent/values/assess", map[string]any{
		"subject_id": subject,
		"token":      vtok,
		"values": map[string]any{
			"environmental_importance":   5,
			"labor_practices_importance": 5,
			"local_sourcing_preference":  4,
			"animal_welfare_importance":  2,
			"transparency_importance":    4,
		},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(20), out["total_score"])

	t.Run("history analyze seals the analysis", func(t *testing.T) {
		tok := issueToken(t, srv, subject, "vault.read.email")
		status, out := postJSON(t, srv, "/v1/agent/history/analyze", map[string]any{
			"subject_id": subject,
			"token":      tok,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "sealed", out["state"])
		require.NotEmpty(t, out["sealed_data"])

		analysis, ok := out["analysis"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "last_6_months", analysis["period"])
	})

	t.Run("product search scores against the stored profile", func(t *testing.T) {
		tok := issueToken(t, srv, subject, "agent.shopping.purchase")
		status, out := postJSON(t, srv, "/v1/agent/products/search", map[string]any{
			"subject_id": subject,
			"token":      tok,
			"query":      "wireless headphones",
			"budget":     200,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "executed", out["state"])

		recs, ok := out["recommendations"].([]any)
		require.True(t, ok)
		require.Len(t, recs, 2)

		first := recs[0].(map[string]any)
		score := first["score"].(map[string]any)
		require.Equal(t, "high", score["user_alignment"])
		require.Equal(t, "weighted_multi_factor", score["scoring_methodology"])

		mainstream, ok := out["mainstream_comparison"].(map[string]any)
		require.True(t, ok)
		msScore := mainstream["score"].(map[string]any)
		require.Less(t, msScore["overall_score"], score["overall_score"])
	})

	t.Run("supply chain trace returns score and sealed analysis", func(t *testing.T) {
		tok := issueToken(t, srv, subject, "custom.supply.chain")
		status, out := postJSON(t, srv, "/v1/agent/supplychain/trace", map[string]any{
			"subject_id":  subject,
			"token":       tok,
			"product_url": "https://shop.example/p/1",
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "sealed", out["state"])
		require.NotEmpty(t, out["sealed_data"])

		trace, ok := out["supply_chain_analysis"].(map[string]any)
		require.True(t, ok)
		require.NotEmpty(t, trace["manufacturer"])
	})

	t.Run("report reflects the captured profile", func(t *testing.T) {
		tok := issueToken(t, srv, subject, "vault.read.email")
		status, out := postJSON(t, srv, "/v1/agent/report", map[string]any{
			"subject_id": subject,
			"token":      tok,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "executed", out["state"])

		report, ok := out["report"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, true, report["values_on_record"])
		require.NotEmpty(t, report["report_date"])
	})
}
