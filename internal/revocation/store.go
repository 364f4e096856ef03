// Package revocation provee el store de tokens revocados.
//
// La revocación es monotónica: una vez marcado, un identificador de token
// nunca vuelve al set válido dentro del proceso. Backends:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (compartido, para producción)
package revocation

import (
	"context"
	"fmt"
)

// Store define las operaciones sobre el set de tokens revocados.
// Las keys son identificadores de token (hash del texto), nunca el token
// en claro.
type Store interface {
	// IsRevoked verifica si el identificador está revocado.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// MarkRevoked agrega el identificador al set. Idempotente.
	MarkRevoked(ctx context.Context, tokenID string) error

	// Close libera recursos del backend.
	Close() error
}

// RedisConfig configura la conexión al backend redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Config configura el backend del store.
type Config struct {
	Backend string // "memory" | "redis"
	Redis   RedisConfig
}

// New crea un store según la configuración.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "redis":
		return NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
	case "memory", "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown revocation backend %q", cfg.Backend)
	}
}
