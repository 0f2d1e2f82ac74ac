package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/branchbank/wallet-system/internal/core/domain"
	"github.com/branchbank/wallet-system/internal/core/ports"
)

// WalletService implements the balance-moving operations. A single mutex
// serialises every operation, so a transfer between two accounts is atomic
// to any observer: both ledger entries are written or neither.
type WalletService struct {
	mu       sync.Mutex
	accounts *domain.Directory
	store    ports.AccountStore
	log      zerolog.Logger
}

func NewWalletService(accounts *domain.Directory, store ports.AccountStore, log zerolog.Logger) *WalletService {
	return &WalletService{accounts: accounts, store: store, log: log}
}

// AddCash credits amount to the account, records a deposit entry and
// returns the new balance.
func (s *WalletService) AddCash(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.accounts.Find(username)
	if account == nil {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	account.Credit(amount)
	tx := account.Ledger.Record(domain.KindDeposit, amount, username)
	s.persist(ctx, account, tx)

	s.log.Info().Str("username", username).Str("amount", amount.String()).Msg("cash added")
	return account.Balance, nil
}

// Transfer moves amount from sender to receiver. All checks run before any
// mutation, so a failed transfer leaves both balances and both ledgers
// untouched.
func (s *WalletService) Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) (*ports.TransferResult, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if sender == receiver {
		return nil, domain.ErrSameAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.accounts.Find(sender)
	if from == nil {
		return nil, domain.ErrAccountNotFound
	}
	to := s.accounts.Find(receiver)
	if to == nil {
		return nil, domain.ErrUnknownRecipient
	}

	if err := from.Debit(amount); err != nil {
		return nil, err
	}
	to.Credit(amount)

	out := from.Ledger.Record(domain.KindTransferOut, amount, receiver)
	in := to.Ledger.Record(domain.KindTransferIn, amount, sender)
	s.persist(ctx, from, out)
	s.persist(ctx, to, in)

	s.log.Info().
		Str("sender", sender).
		Str("receiver", receiver).
		Str("amount", amount.String()).
		Msg("transfer completed")

	return &ports.TransferResult{
		SenderBalance:   from.Balance,
		ReceiverBalance: to.Balance,
	}, nil
}

// PayBill debits amount and records a bill_payment entry tagged with the
// category. Validation mirrors Transfer.
func (s *WalletService) PayBill(ctx context.Context, username, category string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.accounts.Find(username)
	if account == nil {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	if err := account.Debit(amount); err != nil {
		return decimal.Zero, err
	}
	tx := account.Ledger.Record(domain.KindBillPayment, amount, category)
	s.persist(ctx, account, tx)

	s.log.Info().
		Str("username", username).
		Str("category", category).
		Str("amount", amount.String()).
		Msg("bill paid")
	return account.Balance, nil
}

// History exports the account's ledger in ascending amount order.
func (s *WalletService) History(ctx context.Context, username string) ([]ports.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.accounts.Find(username)
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	entries := make([]ports.HistoryEntry, 0, account.Ledger.Len())
	for tx := range account.Ledger.InOrder() {
		entries = append(entries, ports.HistoryEntry{
			ID:           tx.ID,
			Kind:         string(tx.Kind),
			Amount:       tx.Amount,
			Counterparty: tx.Counterparty,
			Timestamp:    tx.Timestamp,
		})
	}
	return entries, nil
}

// persist forwards a balance update and the new ledger entry to the store.
// Failures are logged, not rolled back; the in-memory state stays authoritative.
func (s *WalletService) persist(ctx context.Context, account *domain.Account, tx *domain.Transaction) {
	if err := s.store.UpdateAccount(ctx, accountRecord(account)); err != nil {
		s.log.Error().Err(err).Str("username", account.Username).Msg("persist balance update")
	}
	if err := s.store.AppendTransaction(ctx, transactionRecord(account.Username, tx)); err != nil {
		s.log.Error().Err(err).Str("username", account.Username).Msg("persist transaction")
	}
}
