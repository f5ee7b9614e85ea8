package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Add appends a field error
func (e *FieldValidationErrors) Add(field, message string) {
	*e = append(*e, FieldValidationError{Field: field, Message: message})
}

// Err returns nil when no field failed
func (e FieldValidationErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeString strips HTML tags and escapes what is left
func SanitizeString(input string) string {
	return html.EscapeString(htmlTagRegex.ReplaceAllString(input, ""))
}

// ValidateEmail checks the address shape
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidateName checks a display name or entity name is present and bounded
func ValidateName(name string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= min && n <= max
}

// ValidateContactForm checks the fields of a contact message
func ValidateContactForm(name, email, message string) error {
	var errs FieldValidationErrors
	if !ValidateName(name, 2, 100) {
		errs.Add("name", "El nombre es obligatorio")
	}
	if !ValidateEmail(email) {
		errs.Add("email", "Email inválido")
	}
	if !ValidateName(message, 1, MaxContactMessageLength) {
		errs.Add("message", fmt.Sprintf("El mensaje debe tener entre 1 y %d caracteres", MaxContactMessageLength))
	}
	return errs.Err()
}

// ValidateRegistration checks the fields sent to the backend on sign up
func ValidateRegistration(name, email, password string) error {
	var errs FieldValidationErrors
	if !ValidateName(name, 2, 50) {
		errs.Add("nombre", "El nombre debe tener entre 2 y 50 caracteres")
	}
	if !ValidateEmail(email) {
		errs.Add("email", "Email inválido")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs.Add("password", fmt.Sprintf("La contraseña debe tener al menos %d caracteres", MinPasswordLength))
	}
	return errs.Err()
}
