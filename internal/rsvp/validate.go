package rsvp

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation error")

// ValidationError lists the fields that failed the required-field checks.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid rsvp: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Validate enforces the checks that must pass before anything is sent.
// Fields are reported by their JSON key.
func (s Submission) Validate() error {
	var fields []string
	if strings.TrimSpace(s.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(s.Phone) == "" {
		fields = append(fields, "phone")
	}
	if !s.Attendance.Valid() {
		fields = append(fields, "attendance")
	}
	if s.Attendance == AttendanceYes && !s.GuestsCount.Valid() {
		fields = append(fields, "guestsCount")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
