package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss  = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	// Placement rule violations. Caught before any mutation or upstream call.
	ErrRoomUnavailable   = New("ROOM_UNAVAILABLE", http.StatusConflict, "room is marked unavailable")
	ErrCellOccupied      = New("CELL_OCCUPIED", http.StatusConflict, "cell already holds an assignment")
	ErrShiftMismatch     = New("SHIFT_MISMATCH", http.StatusConflict, "class shift does not match the target slot")
	ErrDayMismatch       = New("DAY_MISMATCH", http.StatusConflict, "source and target cells are on different days")
	ErrMissingScheduleID = New("MISSING_SCHEDULE_ID", http.StatusUnprocessableEntity, "assignment has no schedule id")
	ErrCellPending       = New("CELL_PENDING", http.StatusConflict, "cell has a mutation in flight")
	ErrSwapRequired      = New("SWAP_REQUIRED", http.StatusConflict, "target cell is occupied; swap confirmation required")

	// ErrSyncFailed marks a rejected or failed upstream call; the local
	// grid has already been rolled back when this surfaces.
	ErrSyncFailed = New("SYNC_FAILED", http.StatusBadGateway, "upstream scheduling call failed")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
