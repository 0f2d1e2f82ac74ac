package service

import (
	"context"
	"errors"

	"github.com/branchbank/wallet-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubStore struct {
	accounts map[string]ports.AccountRecord
	txs      []ports.TransactionRecord
	writeErr error // if set, every write returns this error
}

func newStubStore() *stubStore {
	return &stubStore{accounts: make(map[string]ports.AccountRecord)}
}

func (s *stubStore) LoadAll(_ context.Context) ([]ports.AccountRecord, error) {
	out := make([]ports.AccountRecord, 0, len(s.accounts))
	for _, rec := range s.accounts {
		rec.Transactions = nil
		for _, tx := range s.txs {
			if tx.Username == rec.Username {
				rec.Transactions = append(rec.Transactions, tx)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *stubStore) AppendAccount(_ context.Context, rec ports.AccountRecord) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	if _, exists := s.accounts[rec.Username]; exists {
		return errors.New("stub: account already stored")
	}
	s.accounts[rec.Username] = rec
	return nil
}

func (s *stubStore) UpdateAccount(_ context.Context, rec ports.AccountRecord) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.accounts[rec.Username] = rec
	return nil
}

func (s *stubStore) DeleteAccount(_ context.Context, username string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	delete(s.accounts, username)
	kept := s.txs[:0]
	for _, tx := range s.txs {
		if tx.Username != username {
			kept = append(kept, tx)
		}
	}
	s.txs = kept
	return nil
}

func (s *stubStore) AppendTransaction(_ context.Context, rec ports.TransactionRecord) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.txs = append(s.txs, rec)
	return nil
}

// txCount returns how many stored transaction records belong to username.
func (s *stubStore) txCount(username string) int {
	n := 0
	for _, tx := range s.txs {
		if tx.Username == username {
			n++
		}
	}
	return n
}
