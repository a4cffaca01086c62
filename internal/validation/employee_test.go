package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/employee-registry/internal/domain"
	"github.com/spec-kit/employee-registry/internal/validation"
)

const (
	validName  = "Ana Souza"
	validEmail = "ana@empresa.com"
	validPhone = "11987654321"
)

func TestValidateEmployee_Valid(t *testing.T) {
	res := validation.ValidateEmployee(validName, validEmail, validPhone)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateEmployee_Name(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"single letter", "A", false},
		{"empty", "", false},
		{"whitespace padded single letter", "  A  ", false},
		{"three letters", "Ana", true},
		{"two letters", "Jo", true},
		{"accented two letters", "Íé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validation.ValidateEmployee(tt.input, validEmail, validPhone)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, []string{validation.MsgNameInvalid}, res.Errors)
			}
		})
	}
}

func TestValidateEmployee_Email(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"no at sign", "bad", false},
		{"empty", "", false},
		{"one letter tld", "a@b.c", false},
		{"space inside", "a b@c.com", false},
		{"two at signs", "a@@b.com", false},
		{"short valid", "a@b.co", true},
		{"subdomain", "ana.souza@rh.empresa.com.br", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validation.ValidateEmployee(validName, tt.input, validPhone)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, []string{validation.MsgEmailInvalid}, res.Errors)
			}
		})
	}
}

func TestValidateEmployee_Phone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"too short", "123", false},
		{"empty", "", false},
		{"twelve digits", "119876543210", false},
		{"letters only", "abcdefghijk", false},
		{"eleven digits", "11987654321", true},
		{"formatted", "(11) 98765-4321", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validation.ValidateEmployee(validName, validEmail, tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, []string{validation.MsgPhoneInvalid}, res.Errors)
			}
		})
	}
}

func TestValidateEmployee_CollectsAllErrorsInOrder(t *testing.T) {
	res := validation.ValidateEmployee("A", "bad", "123")

	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		validation.MsgNameInvalid,
		validation.MsgEmailInvalid,
		validation.MsgPhoneInvalid,
	}, res.Errors)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11987654321", validation.NormalizePhone("(11) 98765-4321"))
	assert.Equal(t, "", validation.NormalizePhone("abc"))
	assert.Equal(t, "3", validation.NormalizePhone("١٢3"))
}

func TestPaddedEmailIsRejected(t *testing.T) {
	res := validation.ValidateEmployee("Ana Souza", " ana@empresa.com ", "11987654321")

	assert.False(t, res.Valid)
	assert.Equal(t, []string{validation.MsgEmailInvalid}, res.Errors)
}

func TestNormalize(t *testing.T) {
	got := validation.Normalize(domain.EmployeeFields{
		Name:  "  Ana Souza ",
		Email: "ana@empresa.com",
		Phone: "(11) 98765-4321",
	})

	assert.Equal(t, domain.EmployeeFields{
		Name:  "Ana Souza",
		Email: "ana@empresa.com",
		Phone: "11987654321",
	}, got)
}
