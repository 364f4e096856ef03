// Package memory implementa VaultRepository en memoria.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/ethos/internal/domain/repository"
)

type memRepo struct {
	mu      sync.RWMutex
	records []repository.VaultRecord
}

// New crea un repositorio en memoria. Útil para desarrollo y testing.
func New() repository.VaultRepository {
	return &memRepo{}
}

func (r *memRepo) Save(ctx context.Context, rec repository.VaultRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, rec)
	return rec.ID, nil
}

func (r *memRepo) GetLatest(ctx context.Context, subjectID, kind string) (*repository.VaultRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *repository.VaultRecord
	for i := range r.records {
		rec := r.records[i]
		if rec.SubjectID != subjectID || rec.Kind != kind {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			cp := rec
			latest = &cp
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

func (r *memRepo) ListBySubject(ctx context.Context, subjectID string) ([]repository.VaultRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []repository.VaultRecord
	for _, rec := range r.records {
		if rec.SubjectID == subjectID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) Close() error { return nil }
