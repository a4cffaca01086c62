package dto

import (
	"encoding/json"
	"time"

	"github.com/spec-kit/employee-registry/internal/domain"
)

// EmployeeRequest is the create/update payload.
type EmployeeRequest struct {
	Name  string     `json:"nome"`
	Email string     `json:"email"`
	Phone PhoneValue `json:"telefone"`
}

// Fields converts the payload to domain input.
func (r EmployeeRequest) Fields() domain.EmployeeFields {
	return domain.EmployeeFields{Name: r.Name, Email: r.Email, Phone: string(r.Phone)}
}

// PhoneValue is a telefone sent either as a JSON string or as a bare number.
type PhoneValue string

func (p *PhoneValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PhoneValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PhoneValue(n.String())
	return nil
}

// EmployeeResponse is a stored employee as returned to clients.
type EmployeeResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// MessageResponse confirms an update or delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorListResponse carries validation and duplicate failures.
type ErrorListResponse struct {
	Errors []string `json:"erros"`
}

// ErrorResponse carries not-found and server failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"detalhes,omitempty"`
}
