// Package pg implementa VaultRepository sobre postgres (pgx).
package pg

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/ethos/internal/domain/repository"
	migrations "github.com/dropDatabas3/ethos/migrations/postgres"
)

type pgRepo struct {
	pool *pgxpool.Pool
}

// New abre el pool, verifica conectividad y aplica las migraciones
// embebidas. Las migraciones son idempotentes (IF NOT EXISTS).
func New(ctx context.Context, dsn string) (repository.VaultRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg migrate: %w", err)
	}
	return &pgRepo{pool: pool}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

func (r *pgRepo) Save(ctx context.Context, rec repository.VaultRecord) (string, error) {
	const query = `
		INSERT INTO vault_record (subject_id, scope, kind, sealed, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`
	var id string
	err := r.pool.QueryRow(ctx, query, rec.SubjectID, rec.Scope, rec.Kind, rec.Sealed).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert vault_record: %w", err)
	}
	return id, nil
}

func (r *pgRepo) GetLatest(ctx context.Context, subjectID, kind string) (*repository.VaultRecord, error) {
	const query = `
		SELECT id, subject_id, scope, kind, sealed, created_at
		FROM vault_record
		WHERE subject_id = $1 AND kind = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var rec repository.VaultRecord
	err := r.pool.QueryRow(ctx, query, subjectID, kind).Scan(
		&rec.ID, &rec.SubjectID, &rec.Scope, &rec.Kind, &rec.Sealed, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select vault_record: %w", err)
	}
	return &rec, nil
}

func (r *pgRepo) ListBySubject(ctx context.Context, subjectID string) ([]repository.VaultRecord, error) {
	const query = `
		SELECT id, subject_id, scope, kind, sealed, created_at
		FROM vault_record
		WHERE subject_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("select vault_record: %w", err)
	}
	defer rows.Close()

	var out []repository.VaultRecord
	for rows.Next() {
		var rec repository.VaultRecord
		if err := rows.Scan(&rec.ID, &rec.SubjectID, &rec.Scope, &rec.Kind, &rec.Sealed, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *pgRepo) Close() error {
	r.pool.Close()
	return nil
}
