package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/employee-registry/internal/domain"
	"github.com/spec-kit/employee-registry/internal/observability"
)

// Database is the subset of *pgxpool.Pool used by the postgres collection.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const (
	pgInsertEmployee = `INSERT INTO funcionarios (id, doc) VALUES ($1, $2)`

	pgFindAllEmployees = `SELECT doc FROM funcionarios ORDER BY seq`

	pgFindEmployeeByID = `SELECT doc FROM funcionarios WHERE id = $1`

	pgUpdateEmployee = `
		UPDATE funcionarios
		SET doc = doc || jsonb_build_object('nome', $1::text, 'email', $2::text, 'telefone', $3::text, 'updatedAt', $4::text)
		WHERE id = $5`

	pgRemoveEmployee = `DELETE FROM funcionarios WHERE id = $1`

	pgFindConflict = `
		SELECT doc FROM funcionarios
		WHERE id <> $1
		  AND (doc->>'nome' = $2 OR doc->>'email' = $3 OR doc->>'telefone' = $4)
		ORDER BY seq
		LIMIT 1`
)

type postgresEmployeeRepository struct {
	db      Database
	metrics *observability.Metrics
}

// NewPostgresEmployeeRepository returns a collection stored as JSONB documents.
func NewPostgresEmployeeRepository(db Database, metrics *observability.Metrics) EmployeeRepository {
	return &postgresEmployeeRepository{db: db, metrics: metrics}
}

func (r *postgresEmployeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	defer r.metrics.ObserveStore(opInsert, time.Now())

	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	raw, err := json.Marshal(toDocument(employee))
	if err != nil {
		return fmt.Errorf("encode employee document: %w", err)
	}

	if _, err := r.db.Exec(ctx, pgInsertEmployee, employee.ID, string(raw)); err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

func (r *postgresEmployeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	defer r.metrics.ObserveStore(opFindAll, time.Now())

	rows, err := r.db.Query(ctx, pgFindAllEmployees)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employee, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *postgresEmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	defer r.metrics.ObserveStore(opFindByID, time.Now())

	return r.findOne(ctx, pgFindEmployeeByID, id)
}

func (r *postgresEmployeeRepository) UpdateByID(ctx context.Context, id string, fields domain.EmployeeFields, updatedAt time.Time) (int64, error) {
	defer r.metrics.ObserveStore(opUpdateByID, time.Now())

	cmd, err := r.db.Exec(ctx, pgUpdateEmployee,
		fields.Name,
		fields.Email,
		fields.Phone,
		updatedAt.UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update employee: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *postgresEmployeeRepository) RemoveByID(ctx context.Context, id string) (int64, error) {
	defer r.metrics.ObserveStore(opRemoveByID, time.Now())

	cmd, err := r.db.Exec(ctx, pgRemoveEmployee, id)
	if err != nil {
		return 0, fmt.Errorf("failed to remove employee: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *postgresEmployeeRepository) FindConflict(ctx context.Context, fields domain.EmployeeFields, excludeID string) (*domain.Employee, error) {
	defer r.metrics.ObserveStore(opFindConflict, time.Now())

	employee, err := r.findOne(ctx, pgFindConflict, excludeID, fields.Name, fields.Email, fields.Phone)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return employee, err
}

func (r *postgresEmployeeRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *postgresEmployeeRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Employee, error) {
	var raw []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}
	employee, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
