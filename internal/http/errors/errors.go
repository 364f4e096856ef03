// Package errors define el envelope estándar de errores HTTP.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/ethos/internal/consent"
)

// AppError define la estructura estándar para errores de la aplicación.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, para logs; no se expone al cliente
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New crea un nuevo AppError.
func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// WithDetail agrega detalle. Devuelve una COPIA para no mutar los base.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause agrega la causa original. Devuelve una COPIA.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// Errores predefinidos.
var (
	ErrBadRequest          = New(http.StatusBadRequest, "bad_request", "invalid request")
	ErrInvalidInput        = New(http.StatusBadRequest, "invalid_input", "input out of range or unknown")
	ErrConsentDenied       = New(http.StatusForbidden, "consent_denied", "consent validation failed")
	ErrSubjectMismatch     = New(http.StatusForbidden, "subject_mismatch", "token subject does not match")
	ErrMethodNotAllowed    = New(http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	ErrInternalServerError = New(http.StatusInternalServerError, "internal_error", "internal server error")
)

// FromError mapea errores de dominio al envelope HTTP.
// Los tres kinds del core (consent denied, subject mismatch, invalid input)
// nunca se colapsan en un error genérico: el caller reacciona distinto a
// cada uno.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var ae *consent.AuthzError
	if stderrors.As(err, &ae) {
		switch ae.Kind {
		case consent.KindSubjectMismatch:
			return ErrSubjectMismatch.WithDetail(ae.Reason)
		default:
			return ErrConsentDenied.WithDetail(ae.Reason)
		}
	}

	if stderrors.Is(err, consent.ErrInvalidInput) {
		return ErrInvalidInput.WithDetail(err.Error())
	}

	return ErrInternalServerError.WithCause(err)
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe la respuesta HTTP para el error dado.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	resp := errorResponse{
		Status:  "error",
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}
