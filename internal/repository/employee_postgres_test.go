package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-registry/internal/domain"
	"github.com/spec-kit/employee-registry/internal/repository"
)

const (
	insertEmployeeQuery = `INSERT INTO funcionarios (id, doc) VALUES ($1, $2)`
	findAllQuery        = `SELECT doc FROM funcionarios ORDER BY seq`
	findByIDQuery       = `SELECT doc FROM funcionarios WHERE id = $1`
	updateEmployeeQuery = `
		UPDATE funcionarios
		SET doc = doc || jsonb_build_object('nome', $1::text, 'email', $2::text, 'telefone', $3::text, 'updatedAt', $4::text)
		WHERE id = $5`
	removeEmployeeQuery = `DELETE FROM funcionarios WHERE id = $1`
	findConflictQuery   = `
		SELECT doc FROM funcionarios
		WHERE id <> $1
		  AND (doc->>'nome' = $2 OR doc->>'email' = $3 OR doc->>'telefone' = $4)
		ORDER BY seq
		LIMIT 1`
)

const anaDoc = `{"_id":"id-1","nome":"Ana Souza","email":"ana@empresa.com","telefone":"11987654321",` +
	`"createdAt":"2026-10-18T12:00:00Z","updatedAt":"2026-10-18T12:00:00Z"}`

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, repository.EmployeeRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, repository.NewPostgresEmployeeRepository(mock, nil)
}

func TestPostgres_Insert(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	employee := &domain.Employee{Name: "Ana Souza", Email: "ana@empresa.com", Phone: "11987654321"}
	require.NoError(t, repo.Insert(context.Background(), employee))
	assert.NotEmpty(t, employee.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InsertError(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs("fixed-id", pgxmock.AnyArg()).
		WillReturnError(assert.AnError)

	err := repo.Insert(context.Background(), &domain.Employee{ID: "fixed-id", Name: "Ana"})
	require.Error(t, err)
	assert.Equal(t, "failed to insert employee: "+assert.AnError.Error(), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FindAll(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	rows := pgxmock.NewRows([]string{"doc"}).AddRow([]byte(anaDoc))
	mock.ExpectQuery(regexp.QuoteMeta(findAllQuery)).WillReturnRows(rows)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "id-1", all[0].ID)
	assert.Equal(t, "Ana Souza", all[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FindByID(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findByIDQuery)).
		WithArgs("id-1").
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).AddRow([]byte(anaDoc)))

	got, err := repo.FindByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "11987654321", got.Phone)
	assert.True(t, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC).Equal(got.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FindByIDMissing(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findByIDQuery)).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"doc"}))

	_, err := repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateByID(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)
	updatedAt := time.Date(2026, 10, 18, 13, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs("Ana Souza", "ana@empresa.com", "11987654321", "2026-10-18T13:00:00Z", "id-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs("Ana Souza", "ana@empresa.com", "11987654321", "2026-10-18T13:00:00Z", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	fields := domain.EmployeeFields{Name: "Ana Souza", Email: "ana@empresa.com", Phone: "11987654321"}

	n, err := repo.UpdateByID(context.Background(), "id-1", fields, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.UpdateByID(context.Background(), "missing", fields, updatedAt)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RemoveByIDError(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(removeEmployeeQuery)).
		WithArgs("id-1").
		WillReturnError(assert.AnError)

	_, err := repo.RemoveByID(context.Background(), "id-1")
	require.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RemoveByID(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(removeEmployeeQuery)).
		WithArgs("id-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	n, err := repo.RemoveByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FindConflict(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)
	fields := domain.EmployeeFields{Name: "Ana Souza", Email: "ana@empresa.com", Phone: "11987654321"}

	mock.ExpectQuery(regexp.QuoteMeta(findConflictQuery)).
		WithArgs("", "Ana Souza", "ana@empresa.com", "11987654321").
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).AddRow([]byte(anaDoc)))
	mock.ExpectQuery(regexp.QuoteMeta(findConflictQuery)).
		WithArgs("id-1", "Ana Souza", "ana@empresa.com", "11987654321").
		WillReturnRows(pgxmock.NewRows([]string{"doc"}))

	got, err := repo.FindConflict(context.Background(), fields, "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "id-1", got.ID)

	got, err = repo.FindConflict(context.Background(), fields, "id-1")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Ping(t *testing.T) {
	t.Parallel()
	mock, repo := newMockRepo(t)

	mock.ExpectPing()
	require.NoError(t, repo.Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
