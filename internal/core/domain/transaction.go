package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "deposit"
	KindTransferOut TransactionKind = "transfer_out"
	KindTransferIn  TransactionKind = "transfer_in"
	KindBillPayment TransactionKind = "bill_payment"
)

// Transaction is a single immutable ledger entry. Seq is the per-ledger
// insertion sequence; it breaks ties between entries with equal amounts so
// the ledger never drops a record.
type Transaction struct {
	ID           string          `json:"id"`
	Kind         TransactionKind `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty"`
	Timestamp    time.Time       `json:"timestamp"`
	Seq          uint64          `json:"seq"`
}

// NewTransaction creates a ledger entry. Seq is assigned by the ledger on
// insert, not here.
func NewTransaction(kind TransactionKind, amount decimal.Decimal, counterparty string) Transaction {
	return Transaction{
		ID:           uuid.NewString(),
		Kind:         kind,
		Amount:       amount,
		Counterparty: counterparty,
		Timestamp:    time.Now().UTC(),
	}
}
