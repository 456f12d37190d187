package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/reciclacred/backend/api/routes"
	"github.com/reciclacred/backend/internal/auth"
	"github.com/reciclacred/backend/internal/residues"
	"github.com/reciclacred/backend/internal/settlement"
	"github.com/reciclacred/backend/internal/stream"
	"github.com/reciclacred/backend/internal/transactions"
	"github.com/reciclacred/backend/internal/users"
	"github.com/reciclacred/backend/pkg/auth/session"
	"github.com/reciclacred/backend/pkg/config"
	"github.com/reciclacred/backend/pkg/db"
	"github.com/reciclacred/backend/pkg/env"
	"github.com/reciclacred/backend/pkg/logger"
	"github.com/reciclacred/backend/pkg/metrics"
	"github.com/reciclacred/backend/pkg/migrate"
	"github.com/reciclacred/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	settlementMetrics := metrics.NewSettlementMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	residuesRepo := residues.NewRepository(dbClient.DB())
	transactionsRepo := transactions.NewRepository(dbClient.DB())

	notifier := stream.NewNotifier(redisClient, logg)
	watcher := stream.NewWatcher(stream.NewRedisSource(redisClient))

	usersService := users.NewService(usersRepo)
	residueService := residues.NewService(residuesRepo, usersRepo).WithNotifier(notifier)
	transactionsService := transactions.NewService(transactionsRepo)

	settlementService, err := settlement.NewService(settlement.ServiceParams{
		DB:       dbClient,
		Users:    usersRepo,
		Offers:   residuesRepo,
		Ledger:   transactionsRepo,
		Metrics:  settlementMetrics,
		Notifier: notifier,
		Log:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settlement service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	resetService, err := auth.NewPasswordResetService(auth.PasswordResetParams{
		UserRepo:       usersRepo,
		TokenStore:     redisClient,
		PasswordConfig: cfg.Password,
		ResetConfig:    cfg.PasswordReset,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create password reset service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	id := env.Get("DYNO", "local")
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Session:         sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			ResetService:    resetService,
			UsersService:    usersService,
			ResidueService:  residueService,
			Settlement:      settlementService,
			Transactions:    transactionsService,
			Watcher:         watcher,
			MetricsRegistry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
