package revocation

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore implementa Store sobre go-cache sin expiración.
// Las entradas nunca expiran: la revocación sobrevive toda la sesión.
type memoryStore struct {
	c *gocache.Cache
}

// NewMemory crea un store de revocación en memoria.
func NewMemory() Store {
	return &memoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

func (s *memoryStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := s.c.Get(tokenID)
	return ok, nil
}

func (s *memoryStore) MarkRevoked(ctx context.Context, tokenID string) error {
	s.c.Set(tokenID, struct{}{}, gocache.NoExpiration)
	return nil
}

func (s *memoryStore) Close() error { return nil }
