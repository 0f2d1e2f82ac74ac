package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRecipient   = errors.New("recipient does not exist")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrSameAccount        = errors.New("sender and recipient are the same account")
)

// InvalidCredentialsError reports a failed password check together with the
// number of attempts left before the account locks. It matches
// ErrInvalidCredentials under errors.Is.
type InvalidCredentialsError struct {
	AttemptsRemaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials (%d attempts remaining)", e.AttemptsRemaining)
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}
