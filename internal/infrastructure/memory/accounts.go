package memory

import (
	"context"
	"fmt"

	"github.com/itsharenotes/signup/internal/domain"
)

// AccountRepo stores accounts keyed by identifier. Create is atomic per key.
type AccountRepo struct {
	data *shards[domain.Account]
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{data: newShards[domain.Account]()}
}

func (r *AccountRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	sh := r.data.of(identifier)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	a, ok := sh.items[identifier]
	if !ok {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	return &a, nil
}

func (r *AccountRepo) Create(_ context.Context, a *domain.Account) error {
	sh := r.data.of(a.Identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.items[a.Identifier]; ok {
		return fmt.Errorf("account %s exists: %w", a.Identifier, domain.ErrConflict)
	}
	sh.items[a.Identifier] = *a
	return nil
}
