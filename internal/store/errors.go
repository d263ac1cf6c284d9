package store

import (
	"errors"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// Lookup and category errors.
var (
	ErrSponsorNotFound  = errors.New("sponsor not found")
	ErrOfferingNotFound = errors.New("offering not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCategoryRequired = errors.New("required field: category name")
	ErrCategoryExists   = errors.New("invalid enum: category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGameIncomplete   = errors.New("required field: game date, home team and away team")
)

// RemoteError is returned when a remote sponsor operation fails. Error
// returns the notice shown to the user; Unwrap exposes the cause.
type RemoteError struct {
	Op     core.RemoteOp
	Notice string
	Err    error
}

func (e *RemoteError) Error() string { return e.Notice }

func (e *RemoteError) Unwrap() error { return e.Err }

func newRemoteError(op core.RemoteOp, err error) *RemoteError {
	return &RemoteError{Op: op, Notice: core.RemoteNotice(op, err), Err: err}
}

// validationErrors are input problems the caller can fix.
var validationErrors = []error{
	ErrCategoryRequired,
	ErrCategoryExists,
	ErrGameIncomplete,
	core.ErrSponsorOfferingRequired,
	core.ErrSponsorOfferingNotFound,
	core.ErrDateRangeRequired,
	core.ErrDatesRequired,
	core.ErrUnknownBookingMode,
	core.ErrOfferingNameRequired,
	core.ErrOfferingTypeInvalid,
	core.ErrSponsorNameRequired,
}

// IsValidation reports whether err is an input problem rather than a
// storage or remote failure.
func IsValidation(err error) bool {
	var ve core.ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err names a record that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSponsorNotFound) ||
		errors.Is(err, ErrOfferingNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrCategoryNotFound)
}
