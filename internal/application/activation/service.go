package activation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/itsharenotes/signup/internal/application/delivery"
	"github.com/itsharenotes/signup/internal/domain"
	"github.com/itsharenotes/signup/internal/metrics"
	"github.com/itsharenotes/signup/internal/pkg/code"
	"github.com/itsharenotes/signup/internal/pkg/keylock"
)

// Status is the outcome of an activation request.
type Status string

const (
	StatusIssued   Status = "issued"
	StatusFrequent Status = "frequent"
)

// Policy sets token timing for one identifier kind. A new code is refused
// while the live token has more than Lifetime-ResendInterval left, i.e. for
// ResendInterval after it was issued.
type Policy struct {
	Lifetime       time.Duration
	ResendInterval time.Duration
}

// DefaultPolicies are the production defaults: phone codes live five
// minutes, email tokens an hour, both may be re-sent after a minute.
func DefaultPolicies() map[domain.Kind]Policy {
	return map[domain.Kind]Policy{
		domain.KindPhone: {Lifetime: 5 * time.Minute, ResendInterval: time.Minute},
		domain.KindEmail: {Lifetime: time.Hour, ResendInterval: time.Minute},
	}
}

// Result reports what happened. Token is the live token after the call:
// the new one when issued, the untouched previous one when frequent.
type Result struct {
	Status Status
	Token  *domain.ActivationToken
}

type Service interface {
	// RequestActivation issues a code for an unregistered identifier, or
	// reports StatusFrequent inside the cool-down. On delivery failure the
	// new token stays stored and the error wraps domain.ErrDeliveryFailed.
	RequestActivation(ctx context.Context, req domain.ActivationRequest) (*Result, error)
}

type accountStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
}

type tokenStore interface {
	Get(ctx context.Context, identifier string) (*domain.ActivationToken, error)
	Put(ctx context.Context, t *domain.ActivationToken) error
}

type digester interface {
	Digest(identifier string) (string, error)
}

type locker interface {
	Lock(key string) (unlock func())
}

type service struct {
	accounts accountStore
	tokens   tokenStore
	gateway  delivery.Gateway
	hasher   digester
	locks    locker
	policies map[domain.Kind]Policy
	newCode  func(id domain.Identifier) (string, error)
	now      func() time.Time
	metrics  metrics.Recorder
}

type ServiceDeps struct {
	AccountRepo    accountStore
	ActivationRepo tokenStore
	Gateway        delivery.Gateway
	Hasher         digester
	Locks          locker
	Policies       map[domain.Kind]Policy
	Metrics        metrics.Recorder
	Now            func() time.Time
	CodeGenerator  func(id domain.Identifier) (string, error) // optional, overrides the default
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		accounts: deps.AccountRepo,
		tokens:   deps.ActivationRepo,
		gateway:  deps.Gateway,
		hasher:   deps.Hasher,
		locks:    deps.Locks,
		policies: deps.Policies,
		newCode:  deps.CodeGenerator,
		now:      deps.Now,
		metrics:  deps.Metrics,
	}
	if s.policies == nil {
		s.policies = DefaultPolicies()
	}
	if s.newCode == nil {
		s.newCode = s.defaultCode
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

func (s *service) RequestActivation(ctx context.Context, req domain.ActivationRequest) (*Result, error) {
	id, err := domain.ParseIdentifier(req.Identifier)
	if err != nil {
		s.metrics.RecordActivation("unknown", string(domain.CodeOf(err)))
		return nil, err
	}
	res, err := s.issue(ctx, id)
	if err != nil {
		s.metrics.RecordActivation(string(id.Kind), string(domain.CodeOf(err)))
		return nil, err
	}
	if res.Status == StatusFrequent {
		s.metrics.RecordActivation(string(id.Kind), string(res.Status))
		slog.Info("activation throttled", "identifier", id.Masked(), "kind", id.Kind)
		return res, nil
	}

	if err := s.deliver(ctx, id, res.Token); err != nil {
		s.metrics.RecordActivation(string(id.Kind), string(domain.CodeOf(err)))
		slog.Warn("activation code delivery failed", "identifier", id.Masked(), "kind", id.Kind, "err", err)
		return nil, err
	}
	s.metrics.RecordActivation(string(id.Kind), string(res.Status))
	slog.Info("activation issued", "identifier", id.Masked(), "kind", id.Kind, "expires_at", res.Token.ExpiresAt)
	return res, nil
}

// issue runs the registered/cool-down checks and the upsert under the
// identifier's lock. Delivery happens after the lock is released.
func (s *service) issue(ctx context.Context, id domain.Identifier) (*Result, error) {
	policy, ok := s.policies[id.Kind]
	if !ok {
		return nil, fmt.Errorf("no token policy for kind %q", id.Kind)
	}

	unlock := s.locks.Lock(id.Value)
	defer unlock()

	if _, err := s.accounts.GetByIdentifier(ctx, id.Value); err == nil {
		return nil, fmt.Errorf("%s is already registered: %w", id.Kind, domain.ErrAlreadyRegistered)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	now := s.now()
	existing, err := s.tokens.Get(ctx, id.Value)
	switch {
	case err == nil:
		if existing.Remaining(now) > policy.Lifetime-policy.ResendInterval {
			return &Result{Status: StatusFrequent, Token: existing}, nil
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("lookup activation token: %w", err)
	}

	c, err := s.newCode(id)
	if err != nil {
		return nil, err
	}
	tok := &domain.ActivationToken{
		Identifier: id.Value,
		Kind:       id.Kind,
		Code:       c,
		ExpiresAt:  now.Add(policy.Lifetime),
		UpdatedAt:  now,
	}
	if err := s.tokens.Put(ctx, tok); err != nil {
		return nil, fmt.Errorf("store activation token: %w", err)
	}
	return &Result{Status: StatusIssued, Token: tok}, nil
}

func (s *service) deliver(ctx context.Context, id domain.Identifier, tok *domain.ActivationToken) error {
	lifetime := s.policies[id.Kind].Lifetime
	msg := delivery.Message{To: id}
	switch id.Kind {
	case domain.KindPhone:
		msg.Body = fmt.Sprintf("Your ITShareNotes verification code is %s. It expires in %s.", tok.Code, humanDuration(lifetime))
	default:
		msg.Subject = "ITShareNotes registration"
		msg.Body = fmt.Sprintf("Your activation code:\n\n%s\n\nIt expires in %s.", tok.Code, humanDuration(lifetime))
	}
	return s.gateway.Send(ctx, msg)
}

func (s *service) defaultCode(id domain.Identifier) (string, error) {
	if id.Kind == domain.KindPhone {
		return code.Numeric(code.PhoneDigits)
	}
	tok, err := s.hasher.Digest(id.Value)
	if err != nil {
		return "", fmt.Errorf("derive activation token: %w", err)
	}
	return tok, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
