package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotFound             = errors.New("resource not found")
	ErrConflict             = errors.New("resource already exists")
	ErrForbidden            = errors.New("access to resource is forbidden")
	ErrValidation           = errors.New("validation failed")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrImageNotFound        = errors.New("image not found")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// Entity names used in NotFoundError.
const (
	EntityProofOfPurchase = "proof of purchase"
	EntityProduct         = "product"
)

type NotFoundError struct {
	Entity string
	ID     any
}

func NewNotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a proof of purchase that already exists for the
// same owner, shop name and reference.
type ConflictError struct {
	Shop      string
	Reference string
}

func NewConflict(shop, reference string) *ConflictError {
	return &ConflictError{Shop: shop, Reference: reference}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("proof of purchase with shop name %s and reference %s already exists", e.Shop, e.Reference)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type ForbiddenError struct {
	Reason string
}

func NewForbidden(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StorageError wraps a failure of the backing store. The wrapped error is
// kept for logs and never rendered to clients.
type StorageError struct {
	Op  string
	Err error
}

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorageUnavailable }
