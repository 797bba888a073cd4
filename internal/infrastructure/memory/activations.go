package memory

import (
	"context"
	"fmt"

	"github.com/itsharenotes/signup/internal/domain"
)

// ActivationRepo keeps one activation token per identifier. Expired tokens
// are not purged; callers check expiry on read.
type ActivationRepo struct {
	data *shards[domain.ActivationToken]
}

func NewActivationRepo() *ActivationRepo {
	return &ActivationRepo{data: newShards[domain.ActivationToken]()}
}

func (r *ActivationRepo) Get(_ context.Context, identifier string) (*domain.ActivationToken, error) {
	sh := r.data.of(identifier)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	t, ok := sh.items[identifier]
	if !ok {
		return nil, fmt.Errorf("activation token not found: %w", domain.ErrNotFound)
	}
	return &t, nil
}

// Put inserts or replaces the token for t.Identifier.
func (r *ActivationRepo) Put(_ context.Context, t *domain.ActivationToken) error {
	sh := r.data.of(t.Identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.items[t.Identifier] = *t
	return nil
}

// Delete is idempotent.
func (r *ActivationRepo) Delete(_ context.Context, identifier string) error {
	sh := r.data.of(identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.items, identifier)
	return nil
}
