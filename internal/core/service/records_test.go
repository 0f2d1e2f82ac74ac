package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/branchbank/wallet-system/internal/core/ports"
)

func TestLoadDirectory_RebuildsState(t *testing.T) {
	now := time.Now().UTC()
	store := newStubStore()
	store.accounts["alice"] = ports.AccountRecord{
		Username: "alice", Email: "alice@example.com", PasswordHash: "digest-a",
		Balance: "60.25", CreatedAt: now, UpdatedAt: now,
	}
	store.accounts["bob"] = ports.AccountRecord{
		Username: "bob", PasswordHash: "digest-b",
		Balance: "0", FailedLoginAttempts: 3, Locked: true, CreatedAt: now, UpdatedAt: now,
	}
	// Equal amounts with distinct timestamps, stored out of order on
	// purpose: replay must keep the chronological tie-break.
	store.txs = []ports.TransactionRecord{
		{ID: "t2", Username: "alice", Kind: "transfer_out", Amount: "10", Counterparty: "bob", Timestamp: now.Add(2 * time.Minute)},
		{ID: "t1", Username: "alice", Kind: "deposit", Amount: "10", Counterparty: "alice", Timestamp: now.Add(time.Minute)},
		{ID: "t3", Username: "alice", Kind: "bill_payment", Amount: "5", Counterparty: "rent", Timestamp: now.Add(3 * time.Minute)},
	}

	dir, err := LoadDirectory(context.Background(), store, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDirectory returned error: %v", err)
	}
	if dir.Len() != 2 {
		t.Fatalf("expected 2 accounts, got %d", dir.Len())
	}

	alice := dir.Find("alice")
	if alice == nil || !alice.Balance.Equal(dec("60.25")) {
		t.Fatalf("alice not rebuilt correctly: %+v", alice)
	}
	if alice.Ledger.Len() != 3 {
		t.Fatalf("expected 3 ledger entries, got %d", alice.Ledger.Len())
	}

	var ids []string
	for tx := range alice.Ledger.InOrder() {
		ids = append(ids, tx.ID)
	}
	// Ascending amount order; the two 10s keep chronological order.
	want := []string{"t3", "t1", "t2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", ids, want)
		}
	}

	bob := dir.Find("bob")
	if bob == nil || !bob.Locked || bob.FailedLoginAttempts != 3 {
		t.Fatalf("bob's lockout state lost: %+v", bob)
	}
}

func TestLoadDirectory_BadBalance(t *testing.T) {
	store := newStubStore()
	store.accounts["alice"] = ports.AccountRecord{Username: "alice", Balance: "not-a-number"}

	if _, err := LoadDirectory(context.Background(), store, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for malformed balance")
	}
}

func TestLoadDirectory_Empty(t *testing.T) {
	dir, err := LoadDirectory(context.Background(), newStubStore(), zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDirectory returned error: %v", err)
	}
	if dir.Len() != 0 {
		t.Fatalf("expected empty directory, got %d", dir.Len())
	}
}
