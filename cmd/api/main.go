package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	httptransport "github.com/Moussassoss/citizens-complaints/internal/api/http"
	"github.com/Moussassoss/citizens-complaints/internal/api/http/handlers"
	"github.com/Moussassoss/citizens-complaints/internal/auth"
	"github.com/Moussassoss/citizens-complaints/internal/config"
	"github.com/Moussassoss/citizens-complaints/internal/events"
	"github.com/Moussassoss/citizens-complaints/internal/location"
	"github.com/Moussassoss/citizens-complaints/internal/observability"
	"github.com/Moussassoss/citizens-complaints/internal/persistence"
	"github.com/Moussassoss/citizens-complaints/internal/repository"
	"github.com/Moussassoss/citizens-complaints/internal/seed"
	"github.com/Moussassoss/citizens-complaints/internal/service"
	"github.com/Moussassoss/citizens-complaints/internal/session"
	"github.com/Moussassoss/citizens-complaints/internal/ticketid"
	"github.com/Moussassoss/citizens-complaints/internal/worker"
	"github.com/Moussassoss/citizens-complaints/migrations"
)

func main() {
	fs := pflag.NewFlagSet("api", pflag.ExitOnError)
	flags := config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := flags.Apply(cfg); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pg *persistence.Postgres
	complaintRepo := repository.NewMemoryComplaintRepository()
	historyRepo := repository.NewMemoryStatusHistoryRepository()
	if cfg.Store.Backend == config.BackendPostgres {
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		complaintRepo = repository.NewComplaintRepository(pg.PoolHandle())
		historyRepo = repository.NewStatusHistoryRepository(pg.PoolHandle())
	}
	if cfg.Store.CacheSize > 0 {
		complaintRepo = repository.NewCachedComplaintRepository(complaintRepo, cfg.Store.CacheSize, cfg.Store.CacheTTL())
	}

	var redis *persistence.Redis
	var sessions session.Store = session.NewMemoryStore()
	if cfg.Session.Backend == config.BackendRedis {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		sessions = session.NewRedisStore(redis.Client, cfg.Session.KeyPrefix, cfg.Auth.SessionTTL())
	}

	locations := location.Default()
	if cfg.Location.Path != "" {
		locations, err = location.LoadFile(cfg.Location.Path)
		if err != nil {
			logger.Fatal("failed to load location dataset", zap.Error(err))
		}
	}

	admins, err := provision(ctx, cfg, complaintRepo, logger)
	if err != nil {
		logger.Fatal("failed to provision seed data", zap.Error(err))
	}

	verifier, err := auth.NewVerifier(cfg.Auth.CredentialMode)
	if err != nil {
		logger.Fatal("invalid credential mode", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.RegisterEventHandlers(dispatcher, metrics, logger)

	complaintDeps := service.ComplaintDependencies{
		ComplaintRepo:           complaintRepo,
		HistoryRepo:             historyRepo,
		Generator:               ticketid.NewGenerator(nil, nil),
		Dispatcher:              dispatcher,
		Logger:                  logger.Named("complaints"),
		RestrictUpdatesToAgency: cfg.Auth.RestrictUpdatesToAgency,
	}
	if cfg.Location.Validate {
		complaintDeps.Locations = locations
	}
	complaintService := service.NewComplaintService(complaintDeps)
	authService := service.NewAuthService(admins, verifier, logger.Named("auth"))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.App.CORSAllowOrigins,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:         handlers.NewMetricsHandler(metrics),
		Complaints:      handlers.NewComplaintsHandler(complaintService),
		StaffComplaints: handlers.NewStaffComplaintsHandler(complaintService),
		Auth:            handlers.NewAuthHandler(authService, tokens, sessions),
		Reference:       handlers.NewReferenceHandler(locations),
		AuthMiddleware:  auth.NewAuthMiddleware(tokens, sessions),
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("store", cfg.Store.Backend),
			zap.String("session", cfg.Session.Backend))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// provision builds the staff directory and, when seeding is on, loads the
// demo complaints. The directory is always built from the seed file because
// accounts are never created at runtime.
func provision(ctx context.Context, cfg *config.Config, complaints repository.ComplaintRepository, logger *zap.Logger) (repository.AdminRepository, error) {
	data, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.CredentialMode == auth.ModeBcrypt {
		if err := data.HashPasswords(cfg.Auth.BcryptCost); err != nil {
			return nil, err
		}
	}
	admins, err := repository.NewAdminRepository(data.Admins)
	if err != nil {
		return nil, err
	}
	if cfg.Seed.Enabled {
		inserted, err := data.ApplyComplaints(ctx, complaints)
		if err != nil {
			return nil, err
		}
		logger.Info("seed applied", zap.Int("admins", len(data.Admins)), zap.Int("complaints", inserted))
	}
	return admins, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
