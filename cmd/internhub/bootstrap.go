package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/config"
	"github.com/artem13815/internhub/pkg/github"
	"github.com/artem13815/internhub/pkg/health"
	"github.com/artem13815/internhub/pkg/health/checkers"
	"github.com/artem13815/internhub/pkg/logger"
	"github.com/artem13815/internhub/pkg/notify"
	"github.com/artem13815/internhub/pkg/profile"
	"github.com/artem13815/internhub/pkg/queue"
	pgrepo "github.com/artem13815/internhub/pkg/repository/postgres"
	sqliterepo "github.com/artem13815/internhub/pkg/repository/sqlite"
	"github.com/artem13815/internhub/pkg/scoring"
	"github.com/artem13815/internhub/pkg/storage/blob"
	"github.com/artem13815/internhub/pkg/storage/migrations"
	"github.com/artem13815/internhub/pkg/storage/postgres"
	sqlitestore "github.com/artem13815/internhub/pkg/storage/sqlite"
)

// runtime holds everything a command needs. Close releases it in reverse order.
type runtime struct {
	cfg      config.Config
	log      zerolog.Logger
	db       *sql.DB
	driver   string
	repo     application.Repository
	blobs    blob.Store
	rdb      *redis.Client
	mq       *queue.RabbitMQ
	svc      *application.Service
	checkers []health.Checker
	closers  []func()
}

type bootOptions struct {
	// migrate applies pending migrations on start.
	migrate bool
	// queue connects to RabbitMQ even when ENRICH_MODE is not "queue".
	queue bool
}

func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

func bootstrap(ctx context.Context, opt bootOptions) (*runtime, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: log}
	if err := rt.openStore(ctx, opt.migrate); err != nil {
		rt.Close()
		return nil, err
	}
	if err := rt.openBlobs(ctx); err != nil {
		rt.Close()
		return nil, err
	}
	if err := rt.openCache(ctx); err != nil {
		rt.Close()
		return nil, err
	}
	if opt.queue || cfg.Enrich.Mode == string(application.ModeQueue) {
		mq, err := queue.Dial(cfg.Queue.URL, cfg.Queue.Queue, log)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.mq = mq
		rt.checkers = append(rt.checkers, checkers.NewRabbitMQChecker(mq.Conn()))
		rt.closers = append(rt.closers, func() { _ = mq.Close() })
	}
	rt.svc = rt.newService()
	return rt, nil
}

func (rt *runtime) openStore(ctx context.Context, migrate bool) error {
	switch rt.cfg.Store.Driver {
	case migrations.Postgres:
		pool, err := postgres.Connect(ctx, rt.cfg.Store.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		rt.db = postgres.SQL(pool)
		rt.closers = append(rt.closers, func() { _ = rt.db.Close() })
		rt.repo = pgrepo.NewApplicationRepository(pool)
		rt.checkers = append(rt.checkers, checkers.NewPostgresChecker(pool))
		rt.driver = migrations.Postgres
		return rt.migrate(ctx, migrate)
	default:
		db, err := sqlitestore.Open(ctx, rt.cfg.Store.SQLitePath)
		if err != nil {
			return fmt.Errorf("sqlite open: %w", err)
		}
		rt.db = db
		rt.closers = append(rt.closers, func() { _ = db.Close() })
		rt.repo = sqliterepo.NewApplicationRepository(db)
		rt.checkers = append(rt.checkers, checkers.NewSQLChecker("sqlite", db))
		rt.driver = migrations.SQLite
		return rt.migrate(ctx, migrate)
	}
}

func (rt *runtime) migrate(ctx context.Context, enabled bool) error {
	if !enabled {
		return nil
	}
	n, err := migrations.Up(ctx, rt.db, rt.driver)
	if err != nil {
		return err
	}
	if n > 0 {
		rt.log.Info().Int("applied", n).Str("driver", rt.driver).Msg("migrations applied")
	}
	return nil
}

func (rt *runtime) openBlobs(ctx context.Context) error {
	c := rt.cfg.Blob
	if c.Driver == "s3" {
		s3, err := blob.NewS3(ctx, blob.S3Config{
			Bucket:    c.Bucket,
			Region:    c.Region,
			Endpoint:  c.Endpoint,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
			PathStyle: c.PathStyle,
		})
		if err != nil {
			return fmt.Errorf("s3 init: %w", err)
		}
		rt.blobs = s3
		return nil
	}
	local, err := blob.NewLocal(c.Dir)
	if err != nil {
		return fmt.Errorf("blob dir: %w", err)
	}
	rt.blobs = local
	return nil
}

func (rt *runtime) openCache(ctx context.Context) error {
	if rt.cfg.Cache.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(rt.cfg.Cache.RedisURL)
	if err != nil {
		return fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	// Кэш необязателен: недоступный Redis не мешает старту, но виден в /ready.
	if err := rdb.Ping(ctx).Err(); err != nil {
		rt.log.Warn().Err(err).Msg("redis unavailable, github cache falls back to memory")
	}
	rt.rdb = rdb
	rt.checkers = append(rt.checkers, checkers.NewRedisChecker(rdb))
	rt.closers = append(rt.closers, func() { _ = rdb.Close() })
	return nil
}

func (rt *runtime) newService() *application.Service {
	cfg := rt.cfg
	gh := github.NewClient(github.Config{
		BaseURL:           cfg.GitHub.APIURL,
		Token:             cfg.GitHub.Token,
		Timeout:           cfg.GitHub.Timeout,
		RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
	}, github.NewTieredCache(rt.rdb, cfg.Cache.TTL, rt.log), rt.log)

	var notifier notify.Notifier = notify.NewLogNotifier(rt.log)
	if cfg.SMTP.Enabled() {
		notifier = notify.Multi{
			notify.NewSMTPNotifier(notify.SMTPConfig{
				Host:      cfg.SMTP.Host,
				Port:      cfg.SMTP.Port,
				Username:  cfg.SMTP.Username,
				Password:  cfg.SMTP.Password,
				From:      cfg.SMTP.From,
				Recruiter: cfg.SMTP.Recruiter,
			}),
			notify.NewLogNotifier(rt.log),
		}
	}

	deps := application.Deps{
		Repo:      rt.repo,
		Blobs:     rt.blobs,
		Extractor: profile.NewExtractor(cfg.Rules.Vocabulary),
		Signals:   gh,
		Scorer:    scoring.NewScorer(cfg.Rules.Weights),
		Notifier:  notifier,
		Log:       rt.log,
	}
	if rt.mq != nil {
		deps.Queue = rt.mq
	}
	return application.NewService(deps, application.Options{
		Mode:          application.Mode(cfg.Enrich.Mode),
		EnrichTimeout: cfg.Enrich.Timeout,
	})
}

func (rt *runtime) readiness() health.ReadinessUseCase {
	return health.NewService(rt.checkers...)
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}
