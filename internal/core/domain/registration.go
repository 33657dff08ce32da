package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	// MinimumAge is the youngest age, in whole years, allowed to register.
	MinimumAge = 21
	// MinimumCreditLimit is the lowest credit limit a limited user may hold.
	MinimumCreditLimit = 500
	// ImportantClientMultiplier scales the credit bureau limit for important clients.
	ImportantClientMultiplier = 2
)

// ErrRejected is matched by every registration gate failure.
var ErrRejected = errors.New("registration rejected")

var (
	ErrInvalidFirstName  = errors.New("first name is required")
	ErrInvalidLastName   = errors.New("last name is required")
	ErrInvalidEmail      = errors.New("email must contain '@' and '.'")
	ErrUnderage          = errors.New("user is under the minimum age")
	ErrCreditLimitTooLow = errors.New("credit limit below minimum")
)

type rejection struct {
	cause error
}

// Reject marks cause as a registration rejection. The result matches both
// ErrRejected and cause under errors.Is.
func Reject(cause error) error {
	return &rejection{cause: cause}
}

func (r *rejection) Error() string { return ErrRejected.Error() + ": " + r.cause.Error() }

func (r *rejection) Unwrap() error { return r.cause }

func (r *rejection) Is(target error) bool { return target == ErrRejected }

// IsRejection reports whether err came from a registration gate rather than
// from a failing collaborator.
func IsRejection(err error) bool {
	return errors.Is(err, ErrRejected)
}

// RejectionReason returns a short machine-readable label for a rejection,
// or "" when err is not one.
func RejectionReason(err error) string {
	if !IsRejection(err) {
		return ""
	}
	switch {
	case errors.Is(err, ErrInvalidFirstName):
		return "invalid_first_name"
	case errors.Is(err, ErrInvalidLastName):
		return "invalid_last_name"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, ErrUnderage):
		return "underage"
	case errors.Is(err, ErrClientNotFound):
		return "client_not_found"
	case errors.Is(err, ErrUnknownClientType):
		return "unknown_client_type"
	case errors.Is(err, ErrCreditLimitTooLow):
		return "credit_limit_too_low"
	default:
		return "other"
	}
}

// LooksLikeEmail is the intentionally weak address check: an '@' and a '.'.
func LooksLikeEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// AgeAt returns the age in whole years of someone born on dob at the instant now.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
