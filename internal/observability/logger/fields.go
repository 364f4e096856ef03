package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Duration crea un campo para la duración de una operación.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// Campos estándar de negocio.

// SubjectID crea un campo para el ID del sujeto (dueño de los datos).
func SubjectID(v string) zap.Field {
	return zap.String("subject_id", v)
}

// AgentID crea un campo para el ID del agente.
func AgentID(v string) zap.Field {
	return zap.String("agent_id", v)
}

// Scope crea un campo para el consent scope involucrado.
func Scope(v string) zap.Field {
	return zap.String("scope", v)
}

// TokenID crea un campo para el identificador (jti) de un consent token.
func TokenID(v string) zap.Field {
	return zap.String("token_id", v)
}

// Operation crea un campo para la operación del agente (assess, search, ...).
func Operation(v string) zap.Field {
	return zap.String("operation", v)
}

// DenialKind crea un campo para el tipo de rechazo de autorización.
func DenialKind(v string) zap.Field {
	return zap.String("denial_kind", v)
}

// Campos estándar de sistema.

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Layer crea un campo para la capa (handler, service, store).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Campos genéricos.

// Count crea un campo para un conteo.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}

// String crea un campo string genérico.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Int crea un campo int genérico.
func Int(key string, v int) zap.Field {
	return zap.Int(key, v)
}

// Bool crea un campo bool genérico.
func Bool(key string, v bool) zap.Field {
	return zap.Bool(key, v)
}

// Float crea un campo float64 genérico.
func Float(key string, v float64) zap.Field {
	return zap.Float64(key, v)
}
