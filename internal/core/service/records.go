package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/branchbank/wallet-system/internal/core/domain"
	"github.com/branchbank/wallet-system/internal/core/ports"
)

func accountRecord(a *domain.Account) ports.AccountRecord {
	return ports.AccountRecord{
		Username:            a.Username,
		Email:               a.Email,
		PasswordHash:        a.PasswordHash,
		Balance:             a.Balance.String(),
		FailedLoginAttempts: a.FailedLoginAttempts,
		Locked:              a.Locked,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func transactionRecord(username string, tx *domain.Transaction) ports.TransactionRecord {
	return ports.TransactionRecord{
		ID:           tx.ID,
		Username:     username,
		Kind:         string(tx.Kind),
		Amount:       tx.Amount.String(),
		Counterparty: tx.Counterparty,
		Timestamp:    tx.Timestamp,
	}
}

// LoadDirectory replays the store into a fresh directory. Transaction
// records are replayed in (timestamp, id) order so that entries with equal
// amounts keep their original relative ordering in the rebuilt ledger.
func LoadDirectory(ctx context.Context, store ports.AccountStore, log zerolog.Logger) (*domain.Directory, error) {
	records, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	dir := domain.NewDirectory()
	for _, rec := range records {
		account, err := accountFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if err := dir.Insert(account); err != nil {
			return nil, fmt.Errorf("replay account %s: %w", rec.Username, err)
		}
	}

	log.Debug().Int("accounts", dir.Len()).Msg("directory loaded")
	return dir, nil
}

func accountFromRecord(rec ports.AccountRecord) (*domain.Account, error) {
	balance, err := decimal.NewFromString(rec.Balance)
	if err != nil {
		return nil, fmt.Errorf("account %s: bad balance %q: %w", rec.Username, rec.Balance, err)
	}

	account := domain.NewAccount(rec.Username, rec.Email, rec.PasswordHash)
	account.Balance = balance
	account.FailedLoginAttempts = rec.FailedLoginAttempts
	account.Locked = rec.Locked
	account.CreatedAt = rec.CreatedAt
	account.UpdatedAt = rec.UpdatedAt

	txs := append([]ports.TransactionRecord(nil), rec.Transactions...)
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].Timestamp.Before(txs[j].Timestamp)
		}
		return txs[i].ID < txs[j].ID
	})

	for _, tr := range txs {
		amount, err := decimal.NewFromString(tr.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: bad amount %q: %w", tr.ID, tr.Amount, err)
		}
		account.Ledger.Insert(domain.Transaction{
			ID:           tr.ID,
			Kind:         domain.TransactionKind(tr.Kind),
			Amount:       amount,
			Counterparty: tr.Counterparty,
			Timestamp:    tr.Timestamp,
		})
	}
	return account, nil
}
