// Package validation checks the shape of employee fields before they reach the store.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/employee-registry/internal/domain"
)

// Messages returned to clients, one per failing field.
const (
	MsgNameInvalid  = "Nome é obrigatório (mínimo 2 caracteres)"
	MsgEmailInvalid = "Email inválido. Use o formato: exemplo@dominio.com"
	MsgPhoneInvalid = "Telefone inválido. Deve conter 11 dígitos (DDD + 9 dígitos)"
)

// PhoneDigits is the length of a Brazilian mobile number including DDD.
const PhoneDigits = 11

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// Result is the outcome of ValidateEmployee.
type Result struct {
	Valid  bool
	Errors []string
}

type employeeInput struct {
	Name  string `validate:"name_min"`
	Email string `validate:"required,email_shape"`
	Phone string `validate:"br_mobile"`
}

var fieldOrder = []struct {
	field   string
	message string
}{
	{"Name", MsgNameInvalid},
	{"Email", MsgEmailInvalid},
	{"Phone", MsgPhoneInvalid},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "name_min", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= 2
	})
	mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "br_mobile", func(fl validator.FieldLevel) bool {
		return len(NormalizePhone(fl.Field().String())) == PhoneDigits
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateEmployee checks every field independently and collects all failures
// in name, email, phone order.
func ValidateEmployee(name, email, phone string) Result {
	err := validate.Struct(employeeInput{Name: name, Email: email, Phone: phone})
	if err == nil {
		return Result{Valid: true, Errors: []string{}}
	}

	failed := map[string]bool{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			failed[fe.StructField()] = true
		}
	}

	result := Result{Errors: []string{}}
	for _, f := range fieldOrder {
		if failed[f.field] {
			result.Errors = append(result.Errors, f.message)
		}
	}
	return result
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r < utf8.RuneSelf && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize returns the form in which fields are stored and compared.
// Email is kept as given: a value that passed validation has no whitespace.
func Normalize(fields domain.EmployeeFields) domain.EmployeeFields {
	return domain.EmployeeFields{
		Name:  strings.TrimSpace(fields.Name),
		Email: fields.Email,
		Phone: NormalizePhone(fields.Phone),
	}
}
