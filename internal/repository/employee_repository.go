package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/employee-registry/internal/domain"
)

// ErrNotFound is returned by FindByID when no document has the requested id.
var ErrNotFound = errors.New("employee not found")

// EmployeeRepository is the document collection holding employee records.
//
// UpdateByID and RemoveByID report how many documents they touched; zero means
// the id is unknown and is not an error.
type EmployeeRepository interface {
	Insert(ctx context.Context, employee *domain.Employee) error
	FindAll(ctx context.Context) ([]domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	UpdateByID(ctx context.Context, id string, fields domain.EmployeeFields, updatedAt time.Time) (int64, error)
	RemoveByID(ctx context.Context, id string) (int64, error)
	// FindConflict returns the first document, in insertion order, sharing the
	// name, email or phone of fields. Documents with id excludeID are skipped.
	// It returns nil when there is none.
	FindConflict(ctx context.Context, fields domain.EmployeeFields, excludeID string) (*domain.Employee, error)
	Ping(ctx context.Context) error
}

// Store operation names used as metric labels.
const (
	opInsert       = "insert"
	opFindAll      = "find_all"
	opFindByID     = "find_by_id"
	opUpdateByID   = "update_by_id"
	opRemoveByID   = "remove_by_id"
	opFindConflict = "find_conflict"
)

// employeeDocument is the stored JSON shape. Keys match the public API.
type employeeDocument struct {
	ID        string    `json:"_id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toDocument(e *domain.Employee) employeeDocument {
	return employeeDocument{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		CreatedAt: e.CreatedAt.UTC(),
		UpdatedAt: e.UpdatedAt.UTC(),
	}
}

func (d employeeDocument) toDomain() domain.Employee {
	return domain.Employee{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func decodeDocument(raw []byte) (domain.Employee, error) {
	var doc employeeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Employee{}, fmt.Errorf("decode employee document: %w", err)
	}
	return doc.toDomain(), nil
}
