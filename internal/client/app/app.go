// Package app assembles the client: storage, session, collection store,
// sync scheduler, API gateway and services.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tcgexchange/internal/client/cards"
	"github.com/dmitrijs2005/tcgexchange/internal/client/client"
	"github.com/dmitrijs2005/tcgexchange/internal/client/collection"
	"github.com/dmitrijs2005/tcgexchange/internal/client/config"
	"github.com/dmitrijs2005/tcgexchange/internal/client/discussions"
	"github.com/dmitrijs2005/tcgexchange/internal/client/localstore"
	"github.com/dmitrijs2005/tcgexchange/internal/client/services"
	"github.com/dmitrijs2005/tcgexchange/internal/client/session"
	"github.com/dmitrijs2005/tcgexchange/internal/client/syncer"
	"github.com/dmitrijs2005/tcgexchange/internal/filex"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
)

const databaseFile = "client.db"

type App struct {
	Config  *config.Config
	Log     logging.Logger
	Catalog cards.Catalog
	Session *session.Session
	Store   *collection.Store
	Sync    *syncer.Scheduler
	Cache   *discussions.Cache
	Auth    services.AuthService
	Trade   services.TradeService

	db *sql.DB
}

// New opens (and migrates) the local database under cfg.DataDir and wires
// every component. State persisted by a previous run is loaded before New
// returns. ctx bounds the debounced syncs for the lifetime of the App.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dsn, err := filex.DataFile(cfg.DataDir, databaseFile)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	a, err := build(ctx, cfg, log, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, log logging.Logger, db *sql.DB) (*App, error) {
	catalog := cards.Empty
	if cfg.CatalogPath != "" {
		c, err := cards.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		log.Debug(ctx, "card catalog loaded", "cards", c.Len())
		catalog = c
	}

	local := localstore.New(db)

	sess, err := session.New(ctx, local, log)
	if err != nil {
		return nil, err
	}

	// The scheduler and the trade service depend on each other; the update
	// function resolves trade when it fires.
	var trade services.TradeService
	sched := syncer.NewScheduler(ctx, cfg.SyncDelay, sess, func(ctx context.Context) error {
		return trade.UpdateProfile(ctx)
	}, log)

	store := collection.New(local, log, collection.WithNotifier(sched), collection.WithCatalog(catalog))
	if err := store.Hydrate(ctx); err != nil {
		return nil, err
	}

	api := client.NewHTTPClient(cfg.ServerURL, sess, log,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RequestsPerSecond, 1),
	)

	cache := discussions.NewCache()
	auth := services.NewAuthService(api, sess, store, cache, log)
	trade = services.NewTradeService(api, sess, store, cache, sched, log)

	return &App{
		Config:  cfg,
		Log:     log,
		Catalog: catalog,
		Session: sess,
		Store:   store,
		Sync:    sched,
		Cache:   cache,
		Auth:    auth,
		Trade:   trade,
		db:      db,
	}, nil
}

// Close sends a pending sync, stops the scheduler and closes the database.
func (a *App) Close(ctx context.Context) error {
	a.Sync.Close()

	var errs []error
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	a.Log.Debug(ctx, "client closed")
	if z, ok := a.Log.(interface{ Sync() error }); ok {
		// Sync of a terminal stderr returns EINVAL
		_ = z.Sync()
	}
	return errors.Join(errs...)
}
