// Package repository define las interfaces de persistencia del agente.
// Los adapters concretos viven en internal/store.
package repository

import (
	"context"
	"time"
)

// Tipos de payload sellado que el agente persiste.
const (
	RecordKindValues  = "values"
	RecordKindHistory = "history"
	RecordKindTrace   = "trace"
)

// VaultRecord es un payload sellado persistido para un sujeto.
// Sealed solo contiene el blob cifrado; el claro nunca se guarda.
type VaultRecord struct {
	ID        string
	SubjectID string
	Scope     string
	Kind      string // values | history | trace
	Sealed    string
	CreatedAt time.Time
}

// VaultRepository define operaciones sobre payloads sellados.
type VaultRepository interface {
	// Save persiste un record sellado. Retorna el ID asignado.
	Save(ctx context.Context, rec VaultRecord) (string, error)

	// GetLatest obtiene el record más reciente de un kind para el sujeto.
	// Retorna ErrNotFound si no existe.
	GetLatest(ctx context.Context, subjectID, kind string) (*VaultRecord, error)

	// ListBySubject lista los records del sujeto, más recientes primero.
	ListBySubject(ctx context.Context, subjectID string) ([]VaultRecord, error)

	// Close libera recursos del backend.
	Close() error
}
