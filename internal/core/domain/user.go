package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User is a registered (or about to be registered) account holder.
//
// HasCreditLimit is true when CreditLimit applies. When false the user has
// unlimited credit and CreditLimit carries no meaning.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	EmailAddress   string    `json:"email"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Client         Client    `json:"client"`
	HasCreditLimit bool      `json:"has_credit_limit"`
	CreditLimit    int       `json:"credit_limit"`
	CreatedAt      time.Time `json:"created_at"`
}

// UnlimitedCredit reports whether the user is exempt from the credit gate.
func (u *User) UnlimitedCredit() bool {
	return !u.HasCreditLimit
}
