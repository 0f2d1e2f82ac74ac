package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// maxFailedLogins is the number of consecutive failed login attempts
// after which an account is locked.
const maxFailedLogins = 3

// Account models a wallet holder. The username is the identity key of the
// Directory; the balance never goes below zero.
type Account struct {
	Username            string          `json:"username"`
	Email               string          `json:"email,omitempty"`
	PasswordHash        string          `json:"-"`
	Balance             decimal.Decimal `json:"balance"`
	Ledger              *Ledger         `json:"-"`
	FailedLoginAttempts int             `json:"-"`
	Locked              bool            `json:"locked"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewAccount creates an account with a zero balance and an empty ledger.
func NewAccount(username, email, passwordHash string) *Account {
	now := time.Now().UTC()
	return &Account{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Balance:      decimal.Zero,
		Ledger:       NewLedger(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// RecordFailedLogin increments the failed-attempt counter and locks the
// account when the limit is reached. It returns the attempts remaining
// before lockout (0 when the account just locked).
func (a *Account) RecordFailedLogin() int {
	a.FailedLoginAttempts++
	if a.FailedLoginAttempts >= maxFailedLogins {
		a.Locked = true
	}
	a.UpdatedAt = time.Now().UTC()
	return maxFailedLogins - a.FailedLoginAttempts
}

// ResetFailedLogins clears the failed-attempt counter after a successful login.
func (a *Account) ResetFailedLogins() {
	a.FailedLoginAttempts = 0
	a.UpdatedAt = time.Now().UTC()
}

// Credit increases the balance by amount. The caller validates amount > 0.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
}

// Debit decreases the balance by amount, refusing any debit that would make
// it negative.
func (a *Account) Debit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}
