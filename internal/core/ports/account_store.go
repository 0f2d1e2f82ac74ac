package ports

import (
	"context"
	"time"
)

// AccountRecord is the persisted shape of an account, nested with its
// transaction records. Amounts travel as decimal strings so the stored form
// is independent of the in-memory representation.
type AccountRecord struct {
	Username            string
	Email               string
	PasswordHash        string
	Balance             string
	FailedLoginAttempts int
	Locked              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Transactions        []TransactionRecord
}

// TransactionRecord is the persisted shape of a single ledger entry.
type TransactionRecord struct {
	ID           string
	Username     string
	Kind         string
	Amount       string
	Counterparty string
	Timestamp    time.Time
}

// AccountStore is the persistence adapter contract. The core treats writes
// as fire-and-forget: a failed write is surfaced to the caller's logs but
// in-memory state is not rolled back.
type AccountStore interface {
	// LoadAll returns every stored account with its transaction records,
	// in no particular order.
	LoadAll(ctx context.Context) ([]AccountRecord, error)
	AppendAccount(ctx context.Context, rec AccountRecord) error
	// UpdateAccount overwrites the stored record for rec.Username
	// (balance, credential hash and lockout state changes).
	UpdateAccount(ctx context.Context, rec AccountRecord) error
	DeleteAccount(ctx context.Context, username string) error
	AppendTransaction(ctx context.Context, rec TransactionRecord) error
}
