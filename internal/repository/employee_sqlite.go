package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-registry/internal/domain"
	"github.com/spec-kit/employee-registry/internal/observability"
)

type sqliteEmployeeRepository struct {
	db      *sql.DB
	metrics *observability.Metrics
}

// NewSQLiteEmployeeRepository returns a collection backed by the embedded sqlite file.
// Documents are kept as JSON text and ordered by rowid, i.e. insertion order.
func NewSQLiteEmployeeRepository(db *sql.DB, metrics *observability.Metrics) EmployeeRepository {
	return &sqliteEmployeeRepository{db: db, metrics: metrics}
}

func (r *sqliteEmployeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	defer r.metrics.ObserveStore(opInsert, time.Now())

	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	raw, err := json.Marshal(toDocument(employee))
	if err != nil {
		return fmt.Errorf("encode employee document: %w", err)
	}

	const query = `INSERT INTO funcionarios (id, doc) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, employee.ID, string(raw)); err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

func (r *sqliteEmployeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	defer r.metrics.ObserveStore(opFindAll, time.Now())

	const query = `SELECT doc FROM funcionarios ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employee, err := decodeDocument([]byte(raw))
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

func (r *sqliteEmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	defer r.metrics.ObserveStore(opFindByID, time.Now())

	const query = `SELECT doc FROM funcionarios WHERE id = ?`
	return r.findOne(ctx, query, id)
}

func (r *sqliteEmployeeRepository) UpdateByID(ctx context.Context, id string, fields domain.EmployeeFields, updatedAt time.Time) (int64, error) {
	defer r.metrics.ObserveStore(opUpdateByID, time.Now())

	const query = `
		UPDATE funcionarios
		SET doc = json_set(doc, '$.nome', ?, '$.email', ?, '$.telefone', ?, '$.updatedAt', ?)
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		fields.Name,
		fields.Email,
		fields.Phone,
		updatedAt.UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update employee: %w", err)
	}
	return n, nil
}

func (r *sqliteEmployeeRepository) RemoveByID(ctx context.Context, id string) (int64, error) {
	defer r.metrics.ObserveStore(opRemoveByID, time.Now())

	const query = `DELETE FROM funcionarios WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to remove employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to remove employee: %w", err)
	}
	return n, nil
}

func (r *sqliteEmployeeRepository) FindConflict(ctx context.Context, fields domain.EmployeeFields, excludeID string) (*domain.Employee, error) {
	defer r.metrics.ObserveStore(opFindConflict, time.Now())

	const query = `
		SELECT doc FROM funcionarios
		WHERE id <> ?
		  AND (json_extract(doc, '$.nome') = ?
		    OR json_extract(doc, '$.email') = ?
		    OR json_extract(doc, '$.telefone') = ?)
		ORDER BY rowid
		LIMIT 1`

	employee, err := r.findOne(ctx, query, excludeID, fields.Name, fields.Email, fields.Phone)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return employee, err
}

func (r *sqliteEmployeeRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteEmployeeRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Employee, error) {
	var raw string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}
	employee, err := decodeDocument([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
