package domain

import "time"

// EmployeeFields is the client-supplied part of an employee record.
type EmployeeFields struct {
	Name  string
	Email string
	Phone string
}

// Employee is a registry entry. Phone holds digits only once stored.
type Employee struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields returns the mutable fields of the employee.
func (e Employee) Fields() EmployeeFields {
	return EmployeeFields{Name: e.Name, Email: e.Email, Phone: e.Phone}
}
