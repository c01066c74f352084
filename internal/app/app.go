package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/config"
	"github.com/serenitysphere/core/internal/database"
	"github.com/serenitysphere/core/internal/middleware"
	"github.com/serenitysphere/core/internal/modules/emotion"
	"github.com/serenitysphere/core/internal/modules/journal"
	"github.com/serenitysphere/core/internal/modules/mood"
	"github.com/serenitysphere/core/internal/modules/owner"
	"github.com/serenitysphere/core/internal/modules/recommendation"
	"github.com/serenitysphere/core/internal/modules/reminder"
	"github.com/serenitysphere/core/internal/modules/trend"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	pkgcron "github.com/serenitysphere/core/internal/pkg/cron"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	pkgredis "github.com/serenitysphere/core/internal/pkg/redis"
	"github.com/serenitysphere/core/internal/pkg/taskqueue"
	"github.com/serenitysphere/core/internal/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg           *config.AppConfig
	router        *gin.Engine
	db            *gorm.DB
	rc            *pkgredis.Client
	logger        *zap.Logger
	cancel        context.CancelFunc
	sched         *pkgcron.Scheduler
	svc           *services
	stopTracing   func(context.Context) error
	queueTrigger  *trend.QueueTrigger
	startedAt     time.Time
	classifierTag string
}

type services struct {
	owners          *owner.Service
	classifier      emotion.Classifier
	vocab           *vocabulary.Vocabulary
	journal         *journal.Service
	moods           *mood.Service
	trend           *trend.Service
	recommendations *recommendation.Service
	reminders       *reminder.Service
	queue           *taskqueue.Service
}

// New wires config → tracing → DB → Redis → services → routes → cron.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{cfg: cfg, logger: logger, cancel: cancel, startedAt: time.Now()}
	a.stopTracing = tracing.Init(ctx, logger, cfg.Tracing, cfg.Env)

	db, err := database.Connect(cfg, true)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("database: %w", err)
	}
	a.db = db

	if cfg.Redis.Enable {
		rc, err := pkgredis.Connect(ctx, cfg.Redis.URLValue())
		if err != nil {
			cancel()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.rc = rc
	}

	if err := a.buildServices(ctx); err != nil {
		a.Shutdown(context.Background())
		return nil, err
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	if cfg.Tracing.Enable {
		router.Use(otelgin.Middleware(tracing.ServiceName))
	}
	router.Use(middleware.Logger(logger))
	router.Use(newCORS(cfg))
	if a.rc != nil {
		router.Use(middleware.RateLimit(a.rc.Raw(), logger))
		router.Use(middleware.Idempotence(a.rc.Raw(), idempotentRoutes...))
	}
	a.router = router

	a.sched = pkgcron.New(logger)
	a.registerCronJobs()
	go a.sched.Start(ctx)

	a.registerRoutes()
	return a, nil
}

func (a *App) buildServices(ctx context.Context) error {
	cfg := a.cfg
	logger := a.logger
	retries := cfg.Database.MaxRetries

	var locks ownerlock.Locker = ownerlock.NewLocal()
	if cfg.Lock.Driver == "redis" {
		locks = ownerlock.NewRedis(a.rc.Raw(), cfg.Lock.TTL)
	}

	vocab := vocabulary.Default()
	classifier, err := emotion.New(cfg.Classifier, vocab, logger)
	if err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	a.classifierTag = cfg.Classifier.Provider

	s := &services{owners: owner.NewService(a.db), classifier: classifier, vocab: vocab}
	s.trend = trend.NewService(a.db, vocab, locks, cfg.Trend,
		trend.WithLogger(logger), trend.WithMaxRetries(retries))

	var trigger mood.AnalysisTrigger = trend.NewInlineTrigger(s.trend, logger)
	if cfg.Trend.Mode == "queue" {
		s.queue = taskqueue.NewService(a.rc)
		a.queueTrigger = trend.NewQueueTrigger(s.trend, s.queue, logger)
		trigger = a.queueTrigger
	}

	store := mood.NewStore(mood.WithStoreLogger(logger))
	s.moods = mood.NewService(a.db, vocab, locks,
		mood.WithLogger(logger), mood.WithTrigger(trigger), mood.WithMaxRetries(retries))
	s.journal = journal.NewService(a.db, classifier, vocab, store, locks,
		journal.WithLogger(logger), journal.WithTrigger(trigger), journal.WithMaxRetries(retries))
	s.recommendations = recommendation.NewService(a.db, vocab, locks,
		recommendation.WithLogger(logger),
		recommendation.WithDefaultLimit(cfg.Recommendation.Limit),
		recommendation.WithMaxRetries(retries))
	s.reminders = reminder.NewService(a.db, locks, cfg.Trend.InactivityCooldown,
		reminder.WithLogger(logger), reminder.WithMaxRetries(retries))

	if cfg.Recommendation.Seed {
		if _, err := s.recommendations.SeedCatalog(ctx); err != nil {
			return fmt.Errorf("seed recommendations: %w", err)
		}
	}
	a.svc = s
	return nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background work, waits for queued analyses and flushes spans.
func (a *App) Shutdown(ctx context.Context) {
	a.cancel()
	if a.queueTrigger != nil {
		a.queueTrigger.Wait()
	}
	if a.rc != nil {
		if err := a.rc.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if a.stopTracing != nil {
		if err := a.stopTracing(ctx); err != nil {
			a.logger.Warn("flush traces", zap.Error(err))
		}
	}
}
