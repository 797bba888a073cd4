package http

import (
	"context"

	"github.com/itsharenotes/signup/internal/domain"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	// Create fails with domain.ErrConflict when the identifier is taken.
	Create(ctx context.Context, a *domain.Account) error
}

// ActivationRepository is the minimal interface the router requires from an activation token store.
type ActivationRepository interface {
	Get(ctx context.Context, identifier string) (*domain.ActivationToken, error)
	Put(ctx context.Context, t *domain.ActivationToken) error
	Delete(ctx context.Context, identifier string) error
}
