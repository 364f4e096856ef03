package consent

import (
	"context"
	"strings"
	"testing"
)

// fakeValidator permite fijar la respuesta del colaborador.
type fakeValidator struct {
	valid   bool
	reason  string
	decoded *DecodedToken
}

func (f *fakeValidator) Validate(ctx context.Context, tokenText string, expectedScope ConsentScope) (bool, string, *DecodedToken) {
	return f.valid, f.reason, f.decoded
}

func TestAuthorize_DeniedForwardsReasonVerbatim(t *testing.T) {
	t.Parallel()

	reason := "Token scope does not match required scope"
	gate := NewGate(&fakeValidator{valid: false, reason: reason})

	authz, err := gate.Authorize(context.Background(), "tok", ScopeEthicalValues, "u1")
	if authz != nil {
		t.Fatal("denied authorize must not return a context")
	}
	if !IsConsentDenied(err) {
		t.Fatalf("expected ConsentDenied, got %v", err)
	}
	if IsSubjectMismatch(err) {
		t.Fatal("kinds must be distinct")
	}
	ae := err.(*AuthzError)
	if ae.Reason != reason {
		t.Fatalf("reason not verbatim: got %q want %q", ae.Reason, reason)
	}
}

func TestAuthorize_SubjectMismatch(t *testing.T) {
	t.Parallel()

	// Escenario: token emitido para u1, presentado reclamando ser u2.
	gate := NewGate(&fakeValidator{
		valid:   true,
		decoded: &DecodedToken{TokenID: "jti-1", SubjectID: "u1", Scope: ScopeEthicalValues},
	})

	authz, err := gate.Authorize(context.Background(), "tok", ScopeEthicalValues, "u2")
	if authz != nil {
		t.Fatal("mismatched subject must not get a context")
	}
	if !IsSubjectMismatch(err) {
		t.Fatalf("expected SubjectMismatch, got %v", err)
	}
	if IsConsentDenied(err) {
		t.Fatal("SubjectMismatch must not read as ConsentDenied")
	}
}

func TestAuthorize_Success(t *testing.T) {
	t.Parallel()

	gate := NewGate(&fakeValidator{
		valid:   true,
		decoded: &DecodedToken{TokenID: "jti-1", SubjectID: "u1", AgentID: "a1", Scope: ScopeShoppingPurchase},
	})

	authz, err := gate.Authorize(context.Background(), "tok", ScopeShoppingPurchase, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authz.SubjectID != "u1" || authz.Scope != ScopeShoppingPurchase {
		t.Fatalf("bad authorized context: %+v", authz)
	}
}

func TestAuthorize_RevokedReason(t *testing.T) {
	t.Parallel()

	gate := NewGate(&fakeValidator{valid: false, reason: "Token has been revoked"})

	_, err := gate.Authorize(context.Background(), "tok", ScopeVaultReadEmail, "u1")
	if !IsConsentDenied(err) {
		t.Fatalf("expected ConsentDenied, got %v", err)
	}
	if !strings.Contains(err.Error(), "revoked") {
		t.Fatalf("reason must mention revoked: %v", err)
	}
}
