package consent

import (
	"errors"
	"fmt"
)

// DenialKind clasifica por qué el gate rechazó una operación.
// Los callers reaccionan distinto a cada kind (re-autenticar vs. rechazar),
// por eso nunca se colapsan en un error genérico.
type DenialKind string

const (
	// KindConsentDenied: el token no pasó la validación del colaborador
	// (firma inválida, scope incorrecto, expirado o revocado).
	KindConsentDenied DenialKind = "consent_denied"

	// KindSubjectMismatch: el token es válido pero pertenece a otro sujeto.
	// Indica mal uso de credenciales, no una falta de consentimiento.
	KindSubjectMismatch DenialKind = "subject_mismatch"
)

// AuthzError es el error tipado que retorna el Consent Gate.
// Reason se propaga verbatim desde el validador de tokens; el gate no la
// reinterpreta.
type AuthzError struct {
	Kind   DenialKind
	Reason string
}

func (e *AuthzError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// IsConsentDenied verifica si el error es un rechazo por consentimiento.
func IsConsentDenied(err error) bool {
	var ae *AuthzError
	return errors.As(err, &ae) && ae.Kind == KindConsentDenied
}

// IsSubjectMismatch verifica si el error es por sujeto incorrecto.
func IsSubjectMismatch(err error) bool {
	var ae *AuthzError
	return errors.As(err, &ae) && ae.Kind == KindSubjectMismatch
}

// ErrInvalidInput indica datos de entrada fuera de rango o desconocidos
// (kind de operación inválido, importancia fuera de [1,5]).
var ErrInvalidInput = errors.New("invalid input")
