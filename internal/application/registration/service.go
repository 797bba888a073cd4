package registration

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/itsharenotes/signup/internal/domain"
	"github.com/itsharenotes/signup/internal/metrics"
	"github.com/itsharenotes/signup/internal/pkg/id"
	"github.com/itsharenotes/signup/internal/pkg/keylock"
	"github.com/itsharenotes/signup/internal/pkg/validate"
)

type Service interface {
	// Register consumes the live activation token for req.Identifier and
	// creates the account. Every failure leaves both stores untouched.
	// The account check runs first, so replaying a code that already
	// succeeded reports domain.ErrAlreadyRegistered, not ErrTokenNotFound.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error)
}

type accountStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
}

type tokenStore interface {
	Get(ctx context.Context, identifier string) (*domain.ActivationToken, error)
	Delete(ctx context.Context, identifier string) error
}

type passwordHasher interface {
	Hash(s string) (string, error)
}

type locker interface {
	Lock(key string) (unlock func())
}

type service struct {
	accounts accountStore
	tokens   tokenStore
	hasher   passwordHasher
	locks    locker
	now      func() time.Time
	metrics  metrics.Recorder
}

type ServiceDeps struct {
	AccountRepo    accountStore
	ActivationRepo tokenStore
	Hasher         passwordHasher
	Locks          locker // share with the activation service
	Metrics        metrics.Recorder
	Now            func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		accounts: deps.AccountRepo,
		tokens:   deps.ActivationRepo,
		hasher:   deps.Hasher,
		locks:    deps.Locks,
		now:      deps.Now,
		metrics:  deps.Metrics,
	}
	if s.locks == nil {
		s.locks = keylock.New()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	return s
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	ident, err := parse(req)
	if err != nil {
		s.metrics.RecordRegistration("unknown", string(domain.CodeOf(err)))
		return nil, err
	}

	a, err := s.register(ctx, ident, req)
	if err != nil {
		s.metrics.RecordRegistration(string(ident.Kind), string(domain.CodeOf(err)))
		slog.Info("registration rejected", "identifier", ident.Masked(), "kind", ident.Kind, "code", domain.CodeOf(err))
		return nil, err
	}
	s.metrics.RecordRegistration(string(ident.Kind), "ok")
	slog.Info("account registered", "identifier", ident.Masked(), "kind", ident.Kind, "account_id", a.AccountID)
	return a, nil
}

// parse performs the format checks that must fail before any store access.
func parse(req domain.RegisterRequest) (domain.Identifier, error) {
	ident, err := domain.ParseIdentifier(req.Identifier)
	if err != nil {
		return domain.Identifier{}, err
	}
	if !ident.ValidCode(req.Code) {
		return ident, fmt.Errorf("invalid %s code: %w", ident.Kind, domain.ErrBadRequest)
	}
	if ident.Kind == domain.KindEmail && req.Password != "" && !validate.Password(req.Password) {
		return ident, fmt.Errorf("password must be 8-20 characters with upper, lower, digit and symbol: %w", domain.ErrBadRequest)
	}
	return ident, nil
}

func (s *service) register(ctx context.Context, ident domain.Identifier, req domain.RegisterRequest) (*domain.Account, error) {
	unlock := s.locks.Lock(ident.Value)
	defer unlock()

	if _, err := s.accounts.GetByIdentifier(ctx, ident.Value); err == nil {
		return nil, fmt.Errorf("%s is already registered: %w", ident.Kind, domain.ErrAlreadyRegistered)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	tok, err := s.tokens.Get(ctx, ident.Value)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("no activation code issued for this %s: %w", ident.Kind, domain.ErrTokenNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("lookup activation token: %w", err)
	}

	now := s.now()
	if tok.Expired(now) {
		return nil, fmt.Errorf("activation code expired at %s: %w", tok.ExpiresAt.UTC().Format(time.RFC3339), domain.ErrTokenExpired)
	}
	if subtle.ConstantTimeCompare([]byte(tok.Code), []byte(req.Code)) != 1 {
		return nil, fmt.Errorf("activation code does not match: %w", domain.ErrCodeMismatch)
	}

	a := &domain.Account{
		AccountID:  id.NewAt(now),
		Identifier: ident.Value,
		Kind:       ident.Kind,
		CreatedAt:  now.UTC(),
	}
	if ident.Kind == domain.KindEmail && req.Password != "" {
		h, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		a.PasswordHash = h
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%s is already registered: %w", ident.Kind, domain.ErrAlreadyRegistered)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if err := s.tokens.Delete(ctx, ident.Value); err != nil {
		slog.Warn("failed to delete consumed activation token", "identifier", ident.Masked(), "err", err)
	}
	return a, nil
}
