// Package bootstrap wires the ViviGo client from its config: the session
// store, the API client, the session manager and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vivigo/internal/client/cli"
	"github.com/dmitrijs2005/vivigo/internal/client/client"
	"github.com/dmitrijs2005/vivigo/internal/client/config"
	"github.com/dmitrijs2005/vivigo/internal/client/guard"
	"github.com/dmitrijs2005/vivigo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/vivigo/internal/client/services"
	"github.com/dmitrijs2005/vivigo/internal/filex"
	"github.com/dmitrijs2005/vivigo/internal/logging"
)

// Store is a session store that owns a connection.
type Store interface {
	kv.Repository
	io.Closer
}

type nopCloser struct{ kv.Repository }

func (nopCloser) Close() error { return nil }

type closerFunc struct {
	kv.Repository
	close func() error
}

func (c closerFunc) Close() error { return c.close() }

// OpenStore opens the backend named by cfg.StoreBackend.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		if err := filex.EnsureDBDir(cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		db, err := client.InitDatabase(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return closerFunc{Repository: kv.NewSQLiteRepository(db), close: db.Close}, nil

	case config.StoreRedis:
		rc, err := kv.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return closerFunc{Repository: kv.NewRedisRepository(rc), close: rc.Close}, nil

	case config.StoreMemory:
		return nopCloser{kv.NewMemoryRepository()}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// App is the assembled client.
type App struct {
	CLI     *cli.App
	Session *services.SessionManager
	store   Store
}

// NewApp opens the store and builds every component on top of it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, log.With("component", "api"))
	session := services.NewSessionManager(api, store,
		services.WithLogger(log),
		services.WithRefreshThreshold(cfg.RefreshThreshold),
	)
	nav := guard.NewNavigator(session, log)

	return &App{
		CLI:     cli.NewApp(session, nav, log, in, out),
		Session: session,
		store:   store,
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}
