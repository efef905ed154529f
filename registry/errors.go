package registry

import (
	"errors"
	"fmt"
)

// Op names a registry operation.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpDelete Op = "delete"
	OpLogin  Op = "login"
	OpMe     Op = "me"
)

// Operation failures. Match them with errors.Is.
var (
	ErrFetch  = errors.New("failed to fetch sources")
	ErrCreate = errors.New("failed to create source")
	ErrDelete = errors.New("failed to delete source")
	ErrLogin  = errors.New("failed to log in")
	ErrMe     = errors.New("failed to load profile")
)

func (o Op) sentinel() error {
	switch o {
	case OpFetch:
		return ErrFetch
	case OpCreate:
		return ErrCreate
	case OpDelete:
		return ErrDelete
	case OpLogin:
		return ErrLogin
	case OpMe:
		return ErrMe
	default:
		return fmt.Errorf("registry %s failed", string(o))
	}
}

// OpError reports which operation failed and why.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op.sentinel(), e.Err)
}

// Unwrap exposes both the operation sentinel and the cause.
func (e *OpError) Unwrap() []error {
	return []error{e.Op.sentinel(), e.Err}
}

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
