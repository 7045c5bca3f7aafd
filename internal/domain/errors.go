package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned by actions that need a current user id.
	ErrNotAuthenticated = PreconditionError{Msg: "user not authenticated"}
	// ErrInvalidCredentials is returned when no listed user matches the login input.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// TransportError is a network failure or an HTTP error status from a remote service.
type TransportError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s returned status %d", e.Op, e.URL, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: transport failure", e.Op)
}

func (e TransportError) Unwrap() error { return e.Err }

// ResponseError is a well-formed response body carrying a non-success code.
type ResponseError struct {
	Op      string
	Code    int
	Message string
}

func (e ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s failed with code %d", e.Op, e.Code)
}

// PreconditionError means an action was invoked without the state it requires.
type PreconditionError struct {
	Msg string
}

func (e PreconditionError) Error() string {
	if e.Msg == "" {
		return "precondition failed"
	}
	return e.Msg
}

// StorageError wraps failures reading or writing persisted client state.
type StorageError struct {
	Key string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage %q: %v", e.Key, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsResponse(err error) bool {
	var target ResponseError
	return errors.As(err, &target)
}

func IsPrecondition(err error) bool {
	var target PreconditionError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target StorageError
	return errors.As(err, &target)
}

// Message returns the text recorded in client state for err. A
// server-supplied message wins over the local description.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var resp ResponseError
	if errors.As(err, &resp) && resp.Message != "" {
		return resp.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
