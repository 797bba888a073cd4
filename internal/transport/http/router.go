package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/itsharenotes/signup/internal/application/activation"
	"github.com/itsharenotes/signup/internal/application/delivery"
	"github.com/itsharenotes/signup/internal/application/registration"
	"github.com/itsharenotes/signup/internal/config"
	"github.com/itsharenotes/signup/internal/domain"
	"github.com/itsharenotes/signup/internal/metrics"
	"github.com/itsharenotes/signup/internal/pkg/hash"
	"github.com/itsharenotes/signup/internal/pkg/keylock"
	"github.com/itsharenotes/signup/internal/transport/http/handler"
	appmiddleware "github.com/itsharenotes/signup/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo    AccountRepository
	ActivationRepo ActivationRepository
	Gateway        delivery.Gateway
	Metrics        *metrics.Collector // nil disables /metrics
}

// Router is the application handler plus the resources it owns.
type Router struct {
	http.Handler
	limiter *appmiddleware.RateLimiter
}

// Close releases background resources held by the router.
func (r *Router) Close() { r.limiter.Close() }

// Policies builds the per-kind token timing from configuration.
func Policies(cfg *config.Config) map[domain.Kind]activation.Policy {
	return map[domain.Kind]activation.Policy{
		domain.KindPhone: {Lifetime: cfg.PhoneCodeLifetime, ResendInterval: cfg.PhoneResendInterval},
		domain.KindEmail: {Lifetime: cfg.EmailTokenLifetime, ResendInterval: cfg.EmailResendInterval},
	}
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) *Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	var rec metrics.Recorder = metrics.Nop{}
	if deps.Metrics != nil {
		rec = deps.Metrics
	}
	// Both services serialise on the same identifier locks.
	locks := keylock.New()
	hasher := hash.New(cfg.BcryptCost)

	activationSvc := activation.NewService(activation.ServiceDeps{
		AccountRepo:    deps.AccountRepo,
		ActivationRepo: deps.ActivationRepo,
		Gateway:        deps.Gateway,
		Hasher:         hasher,
		Locks:          locks,
		Policies:       Policies(cfg),
		Metrics:        rec,
	})
	registrationSvc := registration.NewService(registration.ServiceDeps{
		AccountRepo:    deps.AccountRepo,
		ActivationRepo: deps.ActivationRepo,
		Hasher:         hasher,
		Locks:          locks,
		Metrics:        rec,
	})

	healthH := handler.NewHealthHandler()
	activationH := handler.NewActivationHandler(activationSvc)
	registrationH := handler.NewRegistrationHandler(registrationSvc)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(sensitiveRL.Limit)

			r.Post("/activations", activationH.Request)
			r.Post("/registrations", registrationH.Register)

			r.Post("/email/activate", activationH.Email)
			r.Post("/email/register", registrationH.Email)
			r.Post("/phone/activate", activationH.Phone)
			r.Post("/phone/register", registrationH.Phone)
		})
	})

	return &Router{Handler: r, limiter: sensitiveRL}
}
