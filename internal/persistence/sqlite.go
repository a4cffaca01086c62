package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spec-kit/employee-registry/internal/config"
)

// SQLite wraps the embedded, file-backed document store.
type SQLite struct {
	DB   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the store file named in cfg.
// The handle keeps a single connection so that writes are serialized.
func OpenSQLite(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*SQLite, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite store path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	logger.Info("opened sqlite store", zap.String("path", cfg.Path))
	return &SQLite{DB: db, path: cfg.Path}, nil
}

// Migrate applies the sqlite schema.
func (s *SQLite) Migrate(ctx context.Context, logger *zap.Logger) error {
	return RunMigrations(ctx, config.DriverSQLite, func(ctx context.Context, statement string) error {
		_, err := s.DB.ExecContext(ctx, statement)
		return err
	}, logger)
}

// Ping verifies the store file is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite store not opened")
	}
	return s.DB.PingContext(ctx)
}

// Path returns the store file path.
func (s *SQLite) Path() string {
	return s.path
}

// Close releases the store handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}
