package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransferResult reports both balances after a completed transfer.
type TransferResult struct {
	SenderBalance   decimal.Decimal
	ReceiverBalance decimal.Decimal
}

// HistoryEntry is one row of an account's transaction history, in the order
// the ledger exports it.
type HistoryEntry struct {
	ID           string
	Kind         string
	Amount       decimal.Decimal
	Counterparty string
	Timestamp    time.Time
}

// WalletService defines the balance-moving operations. Every operation
// either completes fully or leaves all accounts and ledgers untouched.
type WalletService interface {
	// AddCash credits amount to the account and returns the new balance.
	AddCash(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error)
	// Transfer moves amount from sender to receiver, appending a
	// transfer_out entry to the sender's ledger and a transfer_in entry
	// to the receiver's. Both entries are written or neither.
	Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) (*TransferResult, error)
	// PayBill debits amount and records a bill_payment entry tagged with
	// the category.
	PayBill(ctx context.Context, username, category string, amount decimal.Decimal) (decimal.Decimal, error)
	// History returns the account's transactions in ascending amount order.
	History(ctx context.Context, username string) ([]HistoryEntry, error)
}
