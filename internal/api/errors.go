package api

import (
	"errors"
	"fmt"
)

// Error is a failed API request. Status 0 means the request never reached
// the server (connectivity failure); anything else is the HTTP status.
// Message carries the server-supplied message when the response body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: connection failed: %s", e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// CentrallyHandled reports whether the client already surfaced a
// notification for this failure. Containers must not notify again for
// these statuses; exactly one toast reaches the user per failure.
func (e *Error) CentrallyHandled() bool {
	switch e.Status {
	case 0, 401, 403, 404:
		return true
	}
	return false
}

// Validation reports whether the failure is a structured validation error.
func (e *Error) Validation() bool {
	return e.Status == 400 || e.Status == 422
}

// CentrallyHandled reports whether err is an *Error the client already
// notified the user about.
func CentrallyHandled(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.CentrallyHandled()
}

// ValidationMessage returns the server-supplied message for a validation
// failure (status 400 or 422), or "" when there is none.
func ValidationMessage(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Validation() {
		return apiErr.Message, true
	}
	return "", false
}
