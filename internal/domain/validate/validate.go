// Package validate provides field-level validation shared by the checkout and
// reservation flows. Checks are advisory: they catch obvious mistakes before a
// form submission is accepted, not security-critical input sanitization.
package validate

import (
	"regexp"
	"strings"
)

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects field errors for one submission. It is returned as a single
// error value so callers can surface every problem at once.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Require adds a "required" error when value is empty or whitespace.
func (e *Errors) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "required")
	}
}

// ErrOrNil returns the collected errors as an error, or nil if there are none.
func (e Errors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email reports whether v looks like an email address.
func Email(v string) bool {
	return emailRe.MatchString(v)
}

// Phone reports whether v looks like a phone number: at least seven digits,
// ignoring common formatting characters.
func Phone(v string) bool {
	digits := 0
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+' || r == '.':
		default:
			return false
		}
	}
	return digits >= 7
}
