package domain

import "fmt"

// NotFoundError reports that an identifier does not resolve to a live record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ValidationError reports malformed or missing input. It is surfaced before
// any store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError reports a uniqueness or restrict-delete violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ReferentialIntegrityError reports a create/update that references a
// nonexistent Project or ProjectManager.
type ReferentialIntegrityError struct {
	Entity string
	ID     string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Entity, e.ID)
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func BrokenReference(entity, id string) error {
	return &ReferentialIntegrityError{Entity: entity, ID: id}
}
