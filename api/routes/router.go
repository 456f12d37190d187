package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reciclacred/backend/api/controllers"
	"github.com/reciclacred/backend/api/middleware"
	"github.com/reciclacred/backend/internal/auth"
	"github.com/reciclacred/backend/internal/residues"
	"github.com/reciclacred/backend/internal/settlement"
	"github.com/reciclacred/backend/internal/stream"
	"github.com/reciclacred/backend/internal/transactions"
	"github.com/reciclacred/backend/internal/users"
	"github.com/reciclacred/backend/pkg/auth/session"
	"github.com/reciclacred/backend/pkg/config"
	"github.com/reciclacred/backend/pkg/logger"
	"github.com/reciclacred/backend/pkg/redis"
)

// Deps carries everything the router needs wired up.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      controllers.Pinger
	Redis   *redis.Client
	Session session.AccessSessionChecker

	AuthService     auth.Service
	RegisterService auth.RegisterService
	ResetService    auth.PasswordResetService
	UsersService    *users.Service
	ResidueService  *residues.Service
	Settlement      *settlement.Service
	Transactions    *transactions.Service
	Watcher         *stream.Watcher

	MetricsRegistry *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Redis))
	})

	if d.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/password-reset", controllers.PasswordResetRequest(d.ResetService, logg))
		r.Post("/password-reset/confirm", controllers.PasswordResetConfirm(d.ResetService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Session, logg))
		r.Use(middleware.Idempotency(d.Redis, logg))

		r.Post("/auth/logout", controllers.AuthLogout(d.AuthService, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(d.UsersService, logg))
			r.Patch("/", controllers.ProfileUpdate(d.UsersService, logg))
			r.Get("/transactions", controllers.TransactionHistory(d.Transactions, logg))
			r.Get("/stream", controllers.AccountStream(d.UsersService, d.Transactions, d.Watcher, d.Redis, cfg.Stream, logg))
		})

		r.Route("/residues", func(r chi.Router) {
			r.Get("/", controllers.ResidueList(d.ResidueService, logg))
			r.Post("/", controllers.ResidueCreate(d.ResidueService, logg))
			r.Get("/stream", controllers.OffersStream(d.ResidueService, d.Watcher, d.Redis, cfg.Stream, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.ResidueGet(d.ResidueService, logg))
				r.Patch("/", controllers.ResidueUpdate(d.ResidueService, logg))
				r.Delete("/", controllers.ResidueDelete(d.ResidueService, logg))
				r.Post("/collect", controllers.ResidueCollect(d.Settlement, logg))
			})
		})
	})

	return r
}
