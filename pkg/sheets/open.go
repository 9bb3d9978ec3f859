package sheets

import (
	"context"
	"fmt"

	"github.com/angelmondragon/invitation-backend/pkg/config"
	"github.com/angelmondragon/invitation-backend/pkg/db"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
)

// Backend is a Store that can also report readiness.
type Backend interface {
	Store
	Pinger
}

// Open builds the backend selected by INVITACION_STORE_DRIVER. The returned
// close func is never nil.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.App.StoreDriver {
	case config.StoreDriverSheets:
		client, err := NewClient(ctx, cfg.Sheets, logg)
		if err != nil {
			return nil, noop, err
		}
		return client, noop, nil

	case config.StoreDriverSQL:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, noop, err
		}
		store, err := NewSQLStore(ctx, dbClient.DB(), Headers())
		if err != nil {
			_ = dbClient.Close()
			return nil, noop, err
		}
		return store, dbClient.Close, nil

	case config.StoreDriverMemory:
		if logg != nil {
			logg.Warn(ctx, "using in-memory store, data is lost on restart")
		}
		return NewMemoryStore(SeedRows()), noop, nil
	}
	return nil, noop, fmt.Errorf("unsupported store driver %q", cfg.App.StoreDriver)
}
