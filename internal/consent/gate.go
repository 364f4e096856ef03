package consent

import (
	"context"

	"github.com/dropDatabas3/ethos/internal/observability/logger"
)

// DecodedToken son los campos del token que el gate necesita leer.
// La construcción criptográfica del token es del colaborador (internal/token);
// el gate solo consume el resultado de la validación.
type DecodedToken struct {
	TokenID   string
	SubjectID string
	AgentID   string
	Scope     ConsentScope
}

// TokenValidator es el colaborador externo que valida tokens presentados.
// La validación incluye firma, expiración, scope esperado y revocación;
// el gate no duplica esos chequeos, solo reenvía la reason verbatim.
type TokenValidator interface {
	Validate(ctx context.Context, tokenText string, expectedScope ConsentScope) (valid bool, reason string, decoded *DecodedToken)
}

// AuthorizedContext es la capability que habilita el resto de la operación.
// Inmutable: no carga estado más allá de la identidad y el scope autorizados.
type AuthorizedContext struct {
	SubjectID string
	Scope     ConsentScope
}

// Gate valida un token presentado contra un scope y un sujeto esperados.
type Gate struct {
	validator TokenValidator
}

// NewGate crea un Consent Gate sobre el validador dado.
func NewGate(v TokenValidator) *Gate {
	return &Gate{validator: v}
}

// Authorize ejecuta el chequeo en dos etapas, cortando en la primera falla:
//
//  1. Validación del colaborador (firma/expiración/scope/revocación).
//     Falla → AuthzError{KindConsentDenied} con la reason del colaborador.
//  2. Igualdad exacta de subject. Falla → AuthzError{KindSubjectMismatch}.
//
// El binding de identidad nunca es salteable: un token con scope válido pero
// de otro sujeto jamás autoriza acceso a los datos de este sujeto.
func (g *Gate) Authorize(ctx context.Context, tokenText string, expectedScope ConsentScope, expectedSubject string) (*AuthorizedContext, error) {
	log := logger.From(ctx).With(
		logger.Layer("gate"),
		logger.Scope(string(expectedScope)),
	)

	valid, reason, decoded := g.validator.Validate(ctx, tokenText, expectedScope)
	if !valid {
		log.Info("consent denied", logger.String("reason", reason))
		return nil, &AuthzError{Kind: KindConsentDenied, Reason: reason}
	}

	if decoded.SubjectID != expectedSubject {
		log.Warn("token subject mismatch",
			logger.SubjectID(expectedSubject),
			logger.TokenID(decoded.TokenID),
		)
		return nil, &AuthzError{
			Kind:   KindSubjectMismatch,
			Reason: "token subject does not match provided subject",
		}
	}

	log.Debug("operation authorized",
		logger.SubjectID(decoded.SubjectID),
		logger.TokenID(decoded.TokenID),
	)
	return &AuthorizedContext{SubjectID: decoded.SubjectID, Scope: decoded.Scope}, nil
}
