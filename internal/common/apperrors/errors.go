package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Failure taxonomy for the approval engine. Every operation boundary returns one
// of these for recoverable conditions; anything else is treated as a storage
// failure for that single operation.
var (
	// ErrStaleState means a concurrent transition already advanced the request.
	// The caller should refresh, never retry blindly.
	ErrStaleState = errors.New("request was already acted upon")

	// ErrNotEligible means the actor is not in the eligible set for the
	// request's current rank.
	ErrNotEligible = errors.New("actor is not eligible to decide this rank")

	// ErrInvalidTransition means the attempted transition is not legal from the
	// request's current state.
	ErrInvalidTransition = errors.New("transition not allowed from current state")

	// ErrReasonRequired is returned by reject/cancel without a reason.
	ErrReasonRequired = errors.New("a reason is required for this action")

	// ErrAuthorizationDenied is the permission collaborator's denial.
	ErrAuthorizationDenied = errors.New("access denied")

	// ErrNotFound covers lookups of missing documents.
	ErrNotFound = errors.New("not found")
)

// ValidationError rejects malformed chain or delegation input before anything
// is persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HTTPStatus maps a failure to the status code controllers respond with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case IsValidation(err):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrStaleState), errors.Is(err, ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, ErrNotEligible), errors.Is(err, ErrAuthorizationDenied):
		return fiber.StatusForbidden
	case errors.Is(err, ErrReasonRequired):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
