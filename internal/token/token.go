// Package token implementa el colaborador de consent tokens: emisión,
// validación y revocación. El Consent Gate consume Validate a través de la
// interfaz consent.TokenValidator; las reasons que produce este paquete se
// reenvían al caller verbatim.
package token

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/revocation"
)

// Reasons de validación. ReasonRevoked es contrato: los callers buscan
// "revoked" en el texto.
const (
	ReasonRevoked       = "Token has been revoked"
	ReasonExpired       = "Token has expired"
	ReasonMalformed     = "Invalid or malformed token"
	ReasonScopeMismatch = "Token scope does not match required scope"
)

// consentClaims son las claims firmadas de un consent token.
type consentClaims struct {
	Scope   string `json:"scope"`
	AgentID string `json:"agent_id"`
	jwt.RegisteredClaims
}

// Service emite y valida consent tokens HS256 y mantiene la revocación.
type Service struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoked revocation.Store
}

// NewService crea el servicio de tokens.
// secret es la clave HMAC, issuer el "iss" de los tokens, ttl su vigencia.
func NewService(secret []byte, issuer string, ttl time.Duration, revoked revocation.Store) *Service {
	return &Service{secret: secret, issuer: issuer, ttl: ttl, revoked: revoked}
}

// ID retorna el identificador estable de un token: sha256 del texto en
// base64url sin padding. Es lo único que se persiste en el revocation store
// (nunca el token en claro).
func ID(tokenText string) string {
	sum := sha256.Sum256([]byte(tokenText))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Issue emite un token que asevera: subjectID otorgó scope a agentID.
// Un token vale para exactamente un scope y no se re-scopea jamás.
func (s *Service) Issue(subjectID, agentID string, scope consent.ConsentScope) (string, error) {
	if subjectID == "" || agentID == "" {
		return "", fmt.Errorf("subject and agent are required")
	}
	if !consent.ValidScopeName(string(scope)) {
		return "", fmt.Errorf("invalid scope name %q", scope)
	}

	now := time.Now().UTC()
	claims := consentClaims{
		Scope:   string(scope),
		AgentID: agentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tk.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate implementa consent.TokenValidator.
//
// Orden de chequeos: firma/expiración (parser), revocación, scope. Cada
// falla corta con su reason; el gate no reinterpreta ninguna.
func (s *Service) Validate(ctx context.Context, tokenText string, expectedScope consent.ConsentScope) (bool, string, *consent.DecodedToken) {
	var claims consentClaims
	tk, err := jwt.ParseWithClaims(tokenText, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(s.issuer))
	if err != nil || !tk.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return false, ReasonExpired, nil
		}
		return false, ReasonMalformed, nil
	}

	isRevoked, err := s.revoked.IsRevoked(ctx, ID(tokenText))
	if err != nil {
		// Fail closed: si no podemos consultar revocación, el token no pasa.
		return false, fmt.Sprintf("Revocation check unavailable: %v", err), nil
	}
	if isRevoked {
		return false, ReasonRevoked, nil
	}

	if claims.Scope != string(expectedScope) {
		return false, ReasonScopeMismatch, nil
	}

	return true, "", &consent.DecodedToken{
		TokenID:   claims.ID,
		SubjectID: claims.Subject,
		AgentID:   claims.AgentID,
		Scope:     consent.ConsentScope(claims.Scope),
	}
}

// Revoke marca el token como revocado. Idempotente: revocar un token ya
// revocado no es error, y toda validación posterior reporta ReasonRevoked.
func (s *Service) Revoke(ctx context.Context, tokenText string) error {
	return s.revoked.MarkRevoked(ctx, ID(tokenText))
}
