package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-registry/internal/domain"
	"github.com/spec-kit/employee-registry/internal/events"
	"github.com/spec-kit/employee-registry/internal/observability"
	"github.com/spec-kit/employee-registry/internal/repository"
	"github.com/spec-kit/employee-registry/internal/validation"
	apperrors "github.com/spec-kit/employee-registry/pkg/util/errorutil"
)

// MsgNotFound is returned for unknown employee ids.
const MsgNotFound = "Funcionário não encontrado"

// EmployeeService coordinates validation, duplicate checks and store mutations.
type EmployeeService struct {
	repo       repository.EmployeeRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// EmployeeDependencies bundles collaborators for the employee service.
type EmployeeDependencies struct {
	Repo       repository.EmployeeRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Clock      func() time.Time
}

// DedupeReport summarizes a RemoveDuplicates run.
type DedupeReport struct {
	Total   int
	Kept    []domain.Employee
	Removed []domain.Employee
	DryRun  bool
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	s := &EmployeeService{
		repo:       deps.Repo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Create validates input, rejects duplicates and stores a new employee.
func (s *EmployeeService) Create(ctx context.Context, input domain.EmployeeFields) (*domain.Employee, error) {
	if res := validation.ValidateEmployee(input.Name, input.Email, input.Phone); !res.Valid {
		return nil, apperrors.NewValidationError(res.Errors)
	}
	fields := validation.Normalize(input)

	conflicts, err := s.CheckDuplicates(ctx, fields, "")
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if conflicts != nil {
		return nil, apperrors.NewDuplicateError(conflicts)
	}

	now := s.now().UTC()
	employee := &domain.Employee{
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, employee); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.EventEmployeeCreated, employee.ID, employeePayload(fields))
	return employee, nil
}

// List returns every employee in insertion order.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return employees, nil
}

// Get fetches one employee.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(MsgNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return employee, nil
}

// Update replaces name, email and phone of an existing employee. Validation
// and the duplicate check run before the store is touched, so an invalid
// payload for an unknown id reports the validation failure.
func (s *EmployeeService) Update(ctx context.Context, id string, input domain.EmployeeFields) error {
	if res := validation.ValidateEmployee(input.Name, input.Email, input.Phone); !res.Valid {
		return apperrors.NewValidationError(res.Errors)
	}
	fields := validation.Normalize(input)

	conflicts, err := s.CheckDuplicates(ctx, fields, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if conflicts != nil {
		return apperrors.NewDuplicateError(conflicts)
	}

	n, err := s.repo.UpdateByID(ctx, id, fields, s.now().UTC())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if n == 0 {
		return apperrors.NewNotFound(MsgNotFound)
	}

	s.publishEvent(ctx, events.EventEmployeeUpdated, id, employeePayload(fields))
	return nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.RemoveByID(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if n == 0 {
		return apperrors.NewNotFound(MsgNotFound)
	}

	s.publishEvent(ctx, events.EventEmployeeDeleted, id, nil)
	return nil
}

// CheckDuplicates looks for a stored employee sharing the name, email or phone
// of fields, ignoring excludeID. Only the first such record is inspected; one
// message is returned per field it shares. The result is nil when nothing
// conflicts.
func (s *EmployeeService) CheckDuplicates(ctx context.Context, fields domain.EmployeeFields, excludeID string) ([]string, error) {
	fields = validation.Normalize(fields)

	existing, err := s.repo.FindConflict(ctx, fields, excludeID)
	if err != nil {
		return nil, fmt.Errorf("check duplicates: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	other := ""
	if excludeID != "" {
		other = "outro "
	}

	msgs := make([]string, 0, 3)
	if existing.Name == fields.Name {
		msgs = append(msgs, duplicateMessage(other, "nome"))
	}
	if existing.Email == fields.Email {
		msgs = append(msgs, duplicateMessage(other, "email"))
	}
	if existing.Phone == fields.Phone {
		msgs = append(msgs, duplicateMessage(other, "telefone"))
	}
	return msgs, nil
}

// RemoveDuplicates keeps the first employee of every (email, phone) pair, in
// insertion order, and removes the others. With dryRun nothing is removed.
func (s *EmployeeService) RemoveDuplicates(ctx context.Context, dryRun bool) (DedupeReport, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return DedupeReport{}, fmt.Errorf("load employees: %w", err)
	}

	report := DedupeReport{Total: len(employees), DryRun: dryRun}
	seen := make(map[string]struct{}, len(employees))
	for _, e := range employees {
		key := e.Email + "-" + e.Phone
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			report.Kept = append(report.Kept, e)
			continue
		}
		report.Removed = append(report.Removed, e)
	}

	if dryRun {
		return report, nil
	}

	for _, e := range report.Removed {
		n, err := s.repo.RemoveByID(ctx, e.ID)
		if err != nil {
			return report, fmt.Errorf("remove duplicate %s: %w", e.ID, err)
		}
		if n == 0 {
			s.logger.Warn("duplicate already removed", zap.String("employee_id", e.ID))
			continue
		}
		s.publishEvent(ctx, events.EventEmployeeDeleted, e.ID, nil)
	}
	return report, nil
}

func duplicateMessage(other, field string) string {
	return fmt.Sprintf("Já existe %sfuncionário cadastrado com este %s", other, field)
}

func employeePayload(fields domain.EmployeeFields) events.EmployeePayload {
	return events.EmployeePayload{Name: fields.Name, Email: fields.Email, Phone: fields.Phone}
}

func (s *EmployeeService) publishEvent(ctx context.Context, eventType events.EventType, employeeID string, payload interface{}) {
	s.metrics.RecordMutation(string(eventType))
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Timestamp:  s.now().UTC(),
		Payload:    payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(eventType)),
			zap.String("employee_id", employeeID),
			zap.Error(err))
	}
}
