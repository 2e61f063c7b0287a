package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"seconddraft/internal/archive"
	"seconddraft/internal/config"
	"seconddraft/internal/content"
	"seconddraft/internal/htmlmd"
	"seconddraft/internal/lock"
	"seconddraft/internal/publisher"
	"seconddraft/internal/render"
	"seconddraft/internal/richtext"
	"seconddraft/internal/service"
	"seconddraft/internal/source/patreon"
	"seconddraft/internal/storage/files"
	"seconddraft/internal/storage/sqlstore"
)

// app holds the components shared by every command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	db        *sqlx.DB
	files     *files.Store
	docs      *sqlstore.DocumentStore
	syncState *sqlstore.SyncStateStore
	txManager *sqlstore.TransactionManager

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database", "driver", cfg.Database.Driver)

	schema := sqlstore.NewSchema(db)
	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		files:     files.NewStore(cfg.ContentDir),
		docs:      sqlstore.NewDocumentStore(db, schema),
		syncState: sqlstore.NewSyncStateStore(db, schema),
		txManager: sqlstore.NewTransactionManager(db),
		closers:   []func() error{db.Close},
	}, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", "error", err)
		}
	}
}

func (a *app) reader() *content.Reader {
	renderer := render.New(render.NewChromaHighlighter(render.DefaultStyle))
	return content.NewReader(a.docs, a.files, renderer, a.txManager, a.logger)
}

func (a *app) syncService(ctx context.Context) (*service.SyncService, error) {
	api := a.cfg.API
	sources := func(sessionCookie string) service.Source {
		return patreon.NewSource(patreon.New(patreon.Config{
			BaseURL:       api.BaseURL,
			SessionCookie: sessionCookie,
			UserAgent:     api.UserAgent,
			PageSize:      api.PageSize,
			Timeout:       api.Timeout,
			RequestDelay:  api.RequestDelay,
		}, a.logger))
	}

	locker, err := a.locker(ctx)
	if err != nil {
		return nil, err
	}

	var pub service.Publisher
	if a.cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        a.cfg.RabbitMQ.URL,
			Exchange:   a.cfg.RabbitMQ.Exchange,
			RoutingKey: a.cfg.RabbitMQ.RoutingKey,
			QueueName:  a.cfg.RabbitMQ.QueueName,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rabbitMQ.Close)
		pub = rabbitMQ
	}

	var archiver service.Archiver
	if a.cfg.Archive.Enabled {
		client, err := archive.NewS3Client(ctx, a.cfg.Archive)
		if err != nil {
			return nil, err
		}
		archiver = archive.NewS3Archiver(client, a.cfg.Archive.Bucket, a.cfg.Archive.Prefix, a.logger)
	}

	return service.NewSyncService(
		config.AppFile(a.cfg.AppConfig),
		sources,
		richtext.New(a.logger),
		htmlmd.New(),
		a.files,
		a.docs,
		a.syncState,
		locker,
		pub,
		archiver,
		a.logger,
	), nil
}

func (a *app) locker(ctx context.Context) (service.Locker, error) {
	switch a.cfg.Lock.Backend {
	case config.LockNone:
		return nil, nil
	case config.LockFile:
		return lock.NewFileLocker(filepath.Join(a.cfg.ContentDir, ".locks")), nil
	case config.LockRedis:
		client, err := lock.NewRedisClient(ctx, a.cfg.Lock.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return lock.NewRedisLocker(client, a.cfg.Lock.TTL), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", a.cfg.Lock.Backend)
	}
}
