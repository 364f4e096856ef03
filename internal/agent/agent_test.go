package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/domain/repository"
	"github.com/dropDatabas3/ethos/internal/revocation"
	"github.com/dropDatabas3/ethos/internal/scoring"
	storememory "github.com/dropDatabas3/ethos/internal/store/memory"
	"github.com/dropDatabas3/ethos/internal/token"
	"github.com/dropDatabas3/ethos/internal/vault"
)

// harness arma el agente completo: gate real, tokens HS256 reales, vault con
// clave de test y repositorio en memoria. Solo el dataset queda enlatado.
type harness struct {
	agent  *Agent
	tokens *token.Service
	store  repository.VaultRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	if err := vault.UnsafeSetMasterKeyForTests(key); err != nil {
		t.Fatal(err)
	}

	store := storememory.New()
	tokens := token.NewService(
		[]byte("0123456789abcdef0123456789abcdef"),
		"ethos-test",
		time.Hour,
		revocation.NewMemory(),
	)
	ag := New(Deps{
		Gate:    consent.NewGate(tokens),
		Sealer:  vault.Std{},
		Records: store,
	})
	return &harness{agent: ag, tokens: tokens, store: store}
}

func (h *harness) issue(t *testing.T, subjectID string, scope consent.ConsentScope) string {
	t.Helper()
	tok, err := h.tokens.Issue(subjectID, DefaultAgentID, scope)
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}
	return tok
}

func engaged() scoring.Values {
	return scoring.Values{
		Environmental:  5,
		LaborPractices: 5,
		LocalSourcing:  4,
		AnimalWelfare:  2,
		Transparency:   4,
	}
}

func TestAssessValues_SealsAndReturnsBoth(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tok := h.issue(t, "u1", consent.ScopeEthicalValues)

	res, err := h.agent.AssessValues(ctx, "u1", tok, engaged())
	if err != nil {
		t.Fatalf("AssessValues err: %v", err)
	}
	if res.State != StateSealed {
		t.Fatalf("state = %s, want sealed", res.State)
	}
	if res.TotalScore != 20 {
		t.Fatalf("total = %d, want 20", res.TotalScore)
	}
	if res.SealedData == "" {
		t.Fatal("sealed payload missing")
	}

	// El sellado debe abrirse con la clave del sujeto y contener el perfil.
	clear, err := vault.Open("u1", res.SealedData)
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	var got scoring.Values
	if err := json.Unmarshal([]byte(clear), &got); err != nil {
		t.Fatal(err)
	}
	if got != engaged() {
		t.Fatalf("sealed values = %+v", got)
	}

	// Y debe quedar persistido como último registro de valores.
	rec, err := h.store.GetLatest(ctx, "u1", repository.RecordKindValues)
	if err != nil {
		t.Fatalf("GetLatest err: %v", err)
	}
	if rec.Sealed != res.SealedData {
		t.Fatal("persisted blob differs from returned blob")
	}
}

func TestAssessValues_RejectsOutOfRange(t *testing.T) {
	h := newHarness(t)
	tok := h.issue(t, "u1", consent.ScopeEthicalValues)

	bad := engaged()
	bad.Environmental = 6
	_, err := h.agent.AssessValues(context.Background(), "u1", tok, bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, consent.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAuthorize_SubjectMismatch(t *testing.T) {
	h := newHarness(t)
	tok := h.issue(t, "u1", consent.ScopeEthicalValues)

	_, err := h.agent.AssessValues(context.Background(), "u2", tok, engaged())
	if err == nil {
		t.Fatal("expected denial")
	}
	if !consent.IsSubjectMismatch(err) {
		t.Fatalf("err = %v, want subject mismatch", err)
	}
	if consent.IsConsentDenied(err) {
		t.Fatal("mismatch must not classify as consent denial")
	}
}

func TestAuthorize_RevokedToken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tok := h.issue(t, "u1", consent.ScopeSupplyChain)
	if err := h.tokens.Revoke(ctx, tok); err != nil {
		t.Fatal(err)
	}

	_, err := h.agent.TraceSupplyChain(ctx, "u1", tok, "https://shop.example/p/1")
	if !consent.IsConsentDenied(err) {
		t.Fatalf("err = %v, want consent denial", err)
	}
	var ae *consent.AuthzError
	if !errors.As(err, &ae) || !strings.Contains(ae.Reason, "revoked") {
		t.Fatalf("reason must carry the validator's wording, got %v", err)
	}
}

func TestAuthorize_WrongScope(t *testing.T) {
	h := newHarness(t)
	// Token de valores usado para historial: el scope requerido es otro.
	tok := h.issue(t, "u1", consent.ScopeEthicalValues)

	_, err := h.agent.AnalyzeHistory(context.Background(), "u1", tok, "")
	if !consent.IsConsentDenied(err) {
		t.Fatalf("err = %v, want consent denial", err)
	}
}

func TestAnalyzeHistory_SealsAnalysis(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tok := h.issue(t, "u1", consent.ScopeVaultReadEmail)

	res, err := h.agent.AnalyzeHistory(ctx, "u1", tok, "")
	if err != nil {
		t.Fatalf("AnalyzeHistory err: %v", err)
	}
	if res.State != StateSealed {
		t.Fatalf("state = %s", res.State)
	}
	if res.Analysis.Period != DefaultHistoryPeriod {
		t.Fatalf("period = %s", res.Analysis.Period)
	}
	if _, err := vault.Open("u1", res.SealedData); err != nil {
		t.Fatalf("sealed analysis unreadable: %v", err)
	}
}

func TestSearchProducts_UsesStoredProfileAndBudget(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	vtok := h.issue(t, "u1", consent.ScopeEthicalValues)
	if _, err := h.agent.AssessValues(ctx, "u1", vtok, engaged()); err != nil {
		t.Fatal(err)
	}

	stok := h.issue(t, "u1", consent.ScopeShoppingPurchase)
	res, err := h.agent.SearchProducts(ctx, "u1", stok, "headphones", 185)
	if err != nil {
		t.Fatalf("SearchProducts err: %v", err)
	}
	if res.State != StateExecuted {
		t.Fatalf("state = %s, want executed", res.State)
	}
	// Con budget 185 solo entra una recomendación del catálogo.
	if len(res.Recommendations) != 1 {
		t.Fatalf("recs = %d, want 1", len(res.Recommendations))
	}
	if res.Mainstream == nil {
		t.Fatal("mainstream comparison missing")
	}
	if res.Recommendations[0].Score.OverallScore <= res.Mainstream.Score.OverallScore {
		t.Fatalf("ethical option must outscore mainstream: %.1f vs %.1f",
			res.Recommendations[0].Score.OverallScore, res.Mainstream.Score.OverallScore)
	}
	if res.Recommendations[0].Score.UserAlignment != "high" {
		t.Fatalf("alignment = %s", res.Recommendations[0].Score.UserAlignment)
	}
}

func TestSearchProducts_NeutralWithoutProfile(t *testing.T) {
	h := newHarness(t)
	tok := h.issue(t, "u9", consent.ScopeShoppingPurchase)

	res, err := h.agent.SearchProducts(context.Background(), "u9", tok, "headphones", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("recs = %d, want full catalog", len(res.Recommendations))
	}
	for _, r := range res.Recommendations {
		if r.Score.UserAlignment != "moderate" {
			t.Fatalf("neutral profile must yield moderate alignment, got %s", r.Score.UserAlignment)
		}
	}
}

func TestTraceSupplyChain_ScoresAndSeals(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tok := h.issue(t, "u1", consent.ScopeSupplyChain)

	res, err := h.agent.TraceSupplyChain(ctx, "u1", tok, "https://shop.example/p/1")
	if err != nil {
		t.Fatalf("TraceSupplyChain err: %v", err)
	}
	if res.State != StateSealed {
		t.Fatalf("state = %s", res.State)
	}
	if res.Trace.TransparencyScore != 6.5 {
		t.Fatalf("transparency = %.1f", res.Trace.TransparencyScore)
	}
	if res.Score.OverallScore < 1 || res.Score.OverallScore > 10 {
		t.Fatalf("score out of range: %.1f", res.Score.OverallScore)
	}
	clear, err := vault.Open("u1", res.SealedData)
	if err != nil {
		t.Fatal(err)
	}
	var got SupplyChainTrace
	if err := json.Unmarshal([]byte(clear), &got); err != nil {
		t.Fatal(err)
	}
	if got.ManufacturingLocation != res.Trace.ManufacturingLocation {
		t.Fatal("sealed trace differs from returned trace")
	}
}

func TestGenerateReport_ReflectsStoredValues(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rtok := h.issue(t, "u1", consent.ScopeVaultReadEmail)
	res, err := h.agent.GenerateReport(ctx, "u1", rtok)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != StateExecuted {
		t.Fatalf("state = %s", res.State)
	}
	if res.Report.ValuesOnRecord {
		t.Fatal("no profile stored yet")
	}

	vtok := h.issue(t, "u1", consent.ScopeEthicalValues)
	if _, err := h.agent.AssessValues(ctx, "u1", vtok, engaged()); err != nil {
		t.Fatal(err)
	}
	res, err = h.agent.GenerateReport(ctx, "u1", rtok)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Report.ValuesOnRecord || res.Report.ValuesSummary == "" {
		t.Fatal("report must reflect the stored profile")
	}
}
