// Package dbbadger implements the account store on an embedded badger
// database through badgerhold. Accounts are keyed by username, transactions
// by their ID; both live in the same store and are told apart by type.
package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/branchbank/wallet-system/internal/core/ports"
)

type Store struct {
	db *badgerhold.Store
}

// New opens (or creates) the badger database under dataDir.
func New(dataDir string) (*Store, error) {
	opts := badger.DefaultOptions(filepath.Join(dataDir, "wallet"))
	opts.Logger = nil

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type accountRow struct {
	Username            string
	Email               string
	PasswordHash        string
	Balance             string
	FailedLoginAttempts int
	Locked              bool
	CreatedAt           int64
	UpdatedAt           int64
}

type transactionRow struct {
	ID           string
	Username     string `badgerhold:"index"`
	Kind         string
	Amount       string
	Counterparty string
	Timestamp    int64
}

// LoadAll returns every account with its transaction records nested.
func (s *Store) LoadAll(_ context.Context) ([]ports.AccountRecord, error) {
	var accounts []accountRow
	if err := s.db.Find(&accounts, nil); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	var txs []transactionRow
	if err := s.db.Find(&txs, nil); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	byUser := make(map[string][]ports.TransactionRecord)
	for _, t := range txs {
		byUser[t.Username] = append(byUser[t.Username], t.toRecord())
	}

	out := make([]ports.AccountRecord, 0, len(accounts))
	for _, a := range accounts {
		rec := a.toRecord()
		rec.Transactions = byUser[a.Username]
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) AppendAccount(_ context.Context, rec ports.AccountRecord) error {
	if err := s.db.Insert(rec.Username, fromAccountRecord(rec)); err != nil {
		return fmt.Errorf("insert account %s: %w", rec.Username, err)
	}
	return nil
}

func (s *Store) UpdateAccount(_ context.Context, rec ports.AccountRecord) error {
	if err := s.db.Upsert(rec.Username, fromAccountRecord(rec)); err != nil {
		return fmt.Errorf("update account %s: %w", rec.Username, err)
	}
	return nil
}

// DeleteAccount removes the account row and every transaction recorded
// under its username.
func (s *Store) DeleteAccount(_ context.Context, username string) error {
	if err := s.db.Delete(username, accountRow{}); err != nil {
		return fmt.Errorf("delete account %s: %w", username, err)
	}
	if err := s.db.DeleteMatching(&transactionRow{}, badgerhold.Where("Username").Eq(username)); err != nil {
		return fmt.Errorf("delete transactions of %s: %w", username, err)
	}
	return nil
}

func (s *Store) AppendTransaction(_ context.Context, rec ports.TransactionRecord) error {
	row := transactionRow{
		ID:           rec.ID,
		Username:     rec.Username,
		Kind:         rec.Kind,
		Amount:       rec.Amount,
		Counterparty: rec.Counterparty,
		Timestamp:    rec.Timestamp.UnixNano(),
	}
	if err := s.db.Insert(rec.ID, row); err != nil {
		return fmt.Errorf("insert transaction %s: %w", rec.ID, err)
	}
	return nil
}

func fromAccountRecord(rec ports.AccountRecord) accountRow {
	return accountRow{
		Username:            rec.Username,
		Email:               rec.Email,
		PasswordHash:        rec.PasswordHash,
		Balance:             rec.Balance,
		FailedLoginAttempts: rec.FailedLoginAttempts,
		Locked:              rec.Locked,
		CreatedAt:           rec.CreatedAt.UnixNano(),
		UpdatedAt:           rec.UpdatedAt.UnixNano(),
	}
}

func (a accountRow) toRecord() ports.AccountRecord {
	return ports.AccountRecord{
		Username:            a.Username,
		Email:               a.Email,
		PasswordHash:        a.PasswordHash,
		Balance:             a.Balance,
		FailedLoginAttempts: a.FailedLoginAttempts,
		Locked:              a.Locked,
		CreatedAt:           nanoToTime(a.CreatedAt),
		UpdatedAt:           nanoToTime(a.UpdatedAt),
	}
}

func nanoToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(0, ts).UTC()
}

func (t transactionRow) toRecord() ports.TransactionRecord {
	return ports.TransactionRecord{
		ID:           t.ID,
		Username:     t.Username,
		Kind:         t.Kind,
		Amount:       t.Amount,
		Counterparty: t.Counterparty,
		Timestamp:    nanoToTime(t.Timestamp),
	}
}
