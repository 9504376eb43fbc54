package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUniqueViolation is returned by stores when the partial unique index rejects a write.
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrRecordNotFound  = errors.New("record not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

const (
	MsgSlotTaken         = "This date and slot are already booked, please choose another."
	MsgAlreadyConfirmed  = "Another booking is already confirmed for this date and slot."
	MsgSlotHeldByAnother = "Another active booking already holds this date and slot."
)

type ValidationError struct {
	fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.fields[field] = append(e.fields[field], msg)
}

func (e *ValidationError) Count() int {
	return len(e.fields)
}

func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.fields[name], "; ")))
	}
	return "Invalid booking request. " + strings.Join(parts, ", ")
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string {
	return e.Message
}

// StorageError wraps unexpected store failures. Its detail is for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) *ValidationError {
	var target *ValidationError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

func IsConflictError(err error) *ConflictError {
	var target *ConflictError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

func IsNotFoundError(err error) *NotFoundError {
	var target *NotFoundError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

func IsInvalidRangeError(err error) *InvalidRangeError {
	var target *InvalidRangeError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

func IsStorageError(err error) *StorageError {
	var target *StorageError
	if errors.As(err, &target) {
		return target
	}
	return nil
}
