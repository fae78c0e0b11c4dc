package factory

import (
	"context"
	"fmt"

	"github.com/happythoughts/thoughts-service/internal/config"
	"github.com/happythoughts/thoughts-service/internal/store"
	"github.com/happythoughts/thoughts-service/internal/store/postgres"
	"github.com/happythoughts/thoughts-service/internal/store/sqlite"
)

// NewStore selects the storage backend based on cfg.DBDriver and ensures
// the schema exists before handing the store out.
func NewStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			return nil, err
		}
		return sqlite.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
