package persistence_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-registry/internal/config"
	"github.com/spec-kit/employee-registry/internal/persistence"
)

func TestRunMigrations_AppliesInOrder(t *testing.T) {
	var applied []string
	exec := func(_ context.Context, statement string) error {
		applied = append(applied, statement)
		return nil
	}

	err := persistence.RunMigrations(context.Background(), config.DriverPostgres, exec, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Contains(t, applied[0], "CREATE TABLE IF NOT EXISTS funcionarios")
	assert.Contains(t, applied[1], "CREATE INDEX")
}

func TestRunMigrations_StopsOnError(t *testing.T) {
	calls := 0
	exec := func(_ context.Context, _ string) error {
		calls++
		return errors.New("syntax error")
	}

	err := persistence.RunMigrations(context.Background(), config.DriverSQLite, exec, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply migration 0001_funcionarios.sql")
	assert.Equal(t, 1, calls)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := persistence.RunMigrations(context.Background(), "nedb", func(context.Context, string) error { return nil }, zap.NewNop())
	require.Error(t, err)
}

func TestOpenSQLite_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "funcionarios.db")

	store, err := persistence.OpenSQLite(ctx, config.StoreConfig{Path: path}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Migrate(ctx, zap.NewNop()))
	require.NoError(t, store.Migrate(ctx, zap.NewNop()))
	require.NoError(t, store.Ping(ctx))
	assert.Equal(t, path, store.Path())

	var count int
	require.NoError(t, store.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM funcionarios`).Scan(&count))
	assert.Zero(t, count)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := persistence.OpenSQLite(context.Background(), config.StoreConfig{}, zap.NewNop())
	require.Error(t, err)
}

func TestNilHandles(t *testing.T) {
	ctx := context.Background()

	var r *persistence.Redis
	require.Error(t, r.Ping(ctx))
	require.Error(t, r.Publish(ctx, "ch", []byte("{}")))
	r.Close()

	var p *persistence.Postgres
	require.Error(t, p.Ping(ctx))
	p.Close()

	var s *persistence.SQLite
	require.Error(t, s.Ping(ctx))
	s.Close()
}
