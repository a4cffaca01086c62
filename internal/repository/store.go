package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-registry/internal/config"
	"github.com/spec-kit/employee-registry/internal/observability"
	"github.com/spec-kit/employee-registry/internal/persistence"
)

// Store is an opened employee collection together with its backing handle.
type Store struct {
	Employees EmployeeRepository
	Driver    string

	close func()
}

// OpenStore opens the backend selected by cfg.Driver, applies migrations when
// enabled and returns the employee collection on top of it.
func OpenStore(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := persistence.OpenSQLite(ctx, cfg.Store, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Store.RunMigrations {
			if err := db.Migrate(ctx, logger); err != nil {
				db.Close()
				return nil, fmt.Errorf("migrate sqlite store: %w", err)
			}
		}
		return &Store{
			Employees: NewSQLiteEmployeeRepository(db.DB, metrics),
			Driver:    config.DriverSQLite,
			close:     db.Close,
		}, nil

	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Store.RunMigrations {
			if err := pg.Migrate(ctx, logger); err != nil {
				pg.Close()
				return nil, fmt.Errorf("migrate postgres store: %w", err)
			}
		}
		return &Store{
			Employees: NewPostgresEmployeeRepository(pg.Pool, metrics),
			Driver:    config.DriverPostgres,
			close:     pg.Close,
		}, nil
	}

	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

// Ping probes the backing store.
func (s *Store) Ping(ctx context.Context) error {
	return s.Employees.Ping(ctx)
}

// Close releases the backing handle.
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}
