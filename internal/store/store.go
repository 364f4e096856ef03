// Package store crea el VaultRepository según el driver configurado.
//
// Drivers:
//   - memory: in-process, para desarrollo/testing
//   - postgres: pgx pool, para producción
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/ethos/internal/domain/repository"
	"github.com/dropDatabas3/ethos/internal/store/memory"
	"github.com/dropDatabas3/ethos/internal/store/pg"
)

// Config configura el backend de persistencia.
type Config struct {
	Driver string // "memory" | "postgres"
	DSN    string
}

// New crea un VaultRepository según la configuración.
func New(ctx context.Context, cfg Config) (repository.VaultRepository, error) {
	switch cfg.Driver {
	case "postgres":
		if cfg.DSN == "" {
			return nil, repository.ErrNoDatabase
		}
		return pg.New(ctx, cfg.DSN)
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
