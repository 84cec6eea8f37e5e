// Package app wires configuration, storage, services and HTTP routing into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/jengzang/checkin-backend-go/internal/api"
	"github.com/jengzang/checkin-backend-go/internal/clock"
	"github.com/jengzang/checkin-backend-go/internal/config"
	"github.com/jengzang/checkin-backend-go/internal/database"
	"github.com/jengzang/checkin-backend-go/internal/handler"
	"github.com/jengzang/checkin-backend-go/internal/middleware"
	"github.com/jengzang/checkin-backend-go/internal/repository"
	"github.com/jengzang/checkin-backend-go/internal/service"
	"github.com/jengzang/checkin-backend-go/internal/simulation"
)

// locationTTL bounds how long a mirrored position outlives its last update
const locationTTL = 24 * time.Hour

// Options override collaborators for tests
type Options struct {
	Clock        clock.Clock
	IntervalUnit time.Duration
	KV           repository.KVStore
}

// App is a fully wired application
type App struct {
	Router  *gin.Engine
	Engine  *simulation.Engine
	Limiter *middleware.RateLimiter
	Journal *repository.EventJournal

	db    *sql.DB
	redis *redis.Client
}

// New builds the application from cfg
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	a := &App{}

	var journal service.Journal
	if cfg.DB.Path != "" {
		db, err := database.Open(ctx, database.Config{Path: cfg.DB.Path})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize journal: %w", err)
		}
		a.db = db
		a.Journal = repository.NewEventJournal(db)
		journal = a.Journal
		logger.Info("tracking journal enabled", zap.String("path", cfg.DB.Path))
	}

	var locations service.LocationMirror
	kv := opts.KV
	if kv == nil && cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			logger.Warn("location cache unreachable, will keep retrying", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		kv = repository.NewRedisKVStore(a.redis)
		logger.Info("location cache enabled", zap.String("addr", cfg.Redis.Addr))
	}
	if kv != nil {
		locations = repository.NewLocationCache(kv, locationTTL)
	}

	users := repository.NewMemoryUserDirectory(repository.DemoUsers...)
	companies := repository.NewCompanyDirectory(repository.DemoCompanyLocations())
	routes := repository.NewRouteCatalog()
	for _, r := range repository.DefaultRoutes() {
		if _, err := routes.Insert(r.Name, r.Points); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to load route %s: %w", r.Name, err)
		}
	}

	sink := repository.NewTrackingSink(clk)
	register := repository.NewStatusRegister(clk, users)
	if cfg.SeedDemoData {
		sink.Load(repository.DemoTracking())
		register.Load(repository.DemoStatus())
	}
	if a.Journal != nil {
		if err := restore(ctx, a.Journal, sink, register); err != nil {
			a.Close()
			return nil, err
		}
	}

	trackingService := service.NewTrackingService(sink, journal, locations, logger)
	statusService := service.NewStatusService(register, journal, logger)
	companyService := service.NewCompanyService(companies)

	a.Engine = simulation.NewEngine(
		simulation.Config{IntervalUnit: opts.IntervalUnit},
		routes, trackingService, statusService, clk, logger.Named("simulation"),
	)

	if cfg.RateLimitPerMinute > 0 {
		a.Limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	a.Router = api.SetupRouter(api.Handlers{
		Tracking:   handler.NewTrackingHandler(trackingService),
		Status:     handler.NewStatusHandler(statusService),
		Company:    handler.NewCompanyHandler(companyService),
		Simulation: handler.NewSimulationHandler(a.Engine, routes),
	}, a.Limiter, logger.Named("http"))

	return a, nil
}

// Close halts simulations and releases storage connections
func (a *App) Close() error {
	if a.Engine != nil {
		a.Engine.Shutdown()
	}

	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// restore replays journaled events and status periods into memory
func restore(ctx context.Context, journal *repository.EventJournal, sink *repository.TrackingSink, register *repository.StatusRegister) error {
	events, err := journal.TrackingEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore tracking events: %w", err)
	}
	sink.Load(events, nil)

	current, history, err := journal.StatusRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore status records: %w", err)
	}
	register.Load(current, history)
	return nil
}
