// Package app wires the configured backends and services into one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wellbeing/internal/cache"
	"wellbeing/internal/catalog"
	"wellbeing/internal/config"
	"wellbeing/internal/events"
	"wellbeing/internal/metrics"
	"wellbeing/internal/report"
	"wellbeing/internal/repository"
	"wellbeing/internal/service"
	"wellbeing/internal/transport/rest"
	"wellbeing/internal/transport/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// budgetSlack covers persisting and broadcasting after the last attempt
const budgetSlack = 5 * time.Second

// App holds every long-lived dependency of the HTTP server
type App struct {
	Config      *config.Config
	Log         *zap.Logger
	Catalog     *catalog.Catalog
	Store       *repository.Store
	Drafts      cache.DraftCache
	Publisher   events.Publisher
	Registry    *prometheus.Registry
	Metrics     *metrics.Metrics
	Generator   *report.Orchestrator
	Auth        *service.AuthService
	Submissions *service.SubmissionService
	Reports     *service.ReportService
	Hub         *ws.Hub

	redis *redis.Client
}

// LoadCatalog returns the catalog at path, or the embedded one when path is empty
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// New builds the App. On error every backend opened so far is closed.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}
	if err := a.init(ctx); err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) (err error) {
	cfg, log := a.Config, a.Log

	if a.Catalog, err = LoadCatalog(cfg.CatalogPath); err != nil {
		return err
	}
	log.Info("catalog loaded",
		zap.String("version", a.Catalog.Version()),
		zap.Int("questions", a.Catalog.Len()),
		zap.Int("dimensions", len(a.Catalog.Dimensions())),
	)

	if a.Store, err = OpenStore(ctx, cfg); err != nil {
		return err
	}
	log.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err = a.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("app: ping redis: %w", err)
		}
		a.Drafts = cache.NewDraftCache(a.redis, cache.DefaultDraftTTL)
		log.Info("drafts stored in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		a.Drafts = cache.NewMemoryDraftCache(cache.DefaultDraftTTL)
		log.Warn("REDIS_URI not set, drafts kept in memory")
	}

	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log.Named("events"))
		if err != nil {
			return err
		}
		a.Publisher = kp
		log.Info("publishing submission events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	} else {
		a.Publisher = events.NoopPublisher{}
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(a.Registry)

	a.Generator = report.NewOrchestrator(cfg.AI, nil,
		report.WithLogger(log.Named("report")),
		report.WithMetrics(a.Metrics),
	)
	if cfg.AI.IsEnabled() {
		log.Info("report generation enabled", zap.String("model", cfg.AI.Model), zap.Duration("attempt_timeout", cfg.AI.Timeout()))
	} else {
		log.Warn("OPENAI_API_KEY not set, report generation will fail with a configuration error")
	}

	if a.Auth, err = service.NewAuthService(cfg.JWTSecret, cfg.SessionTTL); err != nil {
		return err
	}

	var submissions repository.SubmissionRepo
	var reports repository.ReportRepo
	if a.Store != nil {
		submissions, reports = a.Store.Submissions, a.Store.Reports
	}
	a.Submissions = service.NewSubmissionService(a.Catalog, submissions, a.Drafts, a.Publisher, a.Metrics, log.Named("submissions"))
	a.Reports = service.NewReportService(a.Generator, submissions, reports, a.Publisher, log.Named("reports"),
		a.Generator.Policy().WorstCase()+budgetSlack)

	a.Hub = ws.NewHub(log.Named("ws"))
	a.Reports.SetBroadcaster(a.Hub)
	return nil
}

// OpenStore opens the storage backend selected by cfg. StorageNone yields nil.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		return repository.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StorageSQLite:
		s, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s.Store(), nil
	case config.StorageNone:
		return nil, nil
	}
	return nil, fmt.Errorf("app: unknown storage driver %q", cfg.StorageDriver)
}

// Handler returns the HTTP handler serving the API
func (a *App) Handler() http.Handler {
	return rest.NewRouter(&rest.Container{
		AuthService:       a.Auth,
		SubmissionService: a.Submissions,
		ReportService:     a.Reports,
		WSHub:             a.Hub,
		Gatherer:          a.Registry,
		Logger:            a.Log.Named("http"),
		CORSOrigins:       a.Config.CORSOrigins,
	})
}

// Close waits for background reports, then releases every backend
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Reports != nil {
		a.Reports.Wait()
	}
	if a.Hub != nil {
		a.Hub.Close()
	}
	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.Store != nil && a.Store.Close != nil {
		errs = append(errs, a.Store.Close(ctx))
	}
	return errors.Join(errs...)
}
