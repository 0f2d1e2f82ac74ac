package dbbadger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/branchbank/wallet-system/internal/core/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func accountFixture(username string) ports.AccountRecord {
	now := time.Now().UTC()
	return ports.AccountRecord{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "digest",
		Balance:      "12.50",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestStore_AppendAndLoadAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendAccount(ctx, accountFixture("alice")))
	require.NoError(t, store.AppendAccount(ctx, accountFixture("bob")))

	ts := time.Now().UTC()
	require.NoError(t, store.AppendTransaction(ctx, ports.TransactionRecord{
		ID: "t1", Username: "alice", Kind: "deposit", Amount: "12.50", Counterparty: "alice", Timestamp: ts,
	}))
	require.NoError(t, store.AppendTransaction(ctx, ports.TransactionRecord{
		ID: "t2", Username: "alice", Kind: "bill_payment", Amount: "3", Counterparty: "water", Timestamp: ts.Add(time.Second),
	}))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byUser := map[string]ports.AccountRecord{}
	for _, rec := range records {
		byUser[rec.Username] = rec
	}
	alice := byUser["alice"]
	require.Equal(t, "12.50", alice.Balance)
	require.Len(t, alice.Transactions, 2)
	require.Empty(t, byUser["bob"].Transactions)

	// Timestamps survive the round trip.
	for _, tx := range alice.Transactions {
		require.False(t, tx.Timestamp.IsZero())
	}
}

func TestStore_AppendAccount_Duplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendAccount(ctx, accountFixture("alice")))
	require.Error(t, store.AppendAccount(ctx, accountFixture("alice")))
}

func TestStore_UpdateAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendAccount(ctx, accountFixture("alice")))

	rec := accountFixture("alice")
	rec.Balance = "99"
	rec.Locked = true
	rec.FailedLoginAttempts = 3
	require.NoError(t, store.UpdateAccount(ctx, rec))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "99", records[0].Balance)
	require.True(t, records[0].Locked)
	require.Equal(t, 3, records[0].FailedLoginAttempts)
}

func TestStore_DeleteAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendAccount(ctx, accountFixture("alice")))
	require.NoError(t, store.AppendAccount(ctx, accountFixture("bob")))
	require.NoError(t, store.AppendTransaction(ctx, ports.TransactionRecord{
		ID: "t1", Username: "alice", Kind: "deposit", Amount: "1", Counterparty: "alice", Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, store.AppendTransaction(ctx, ports.TransactionRecord{
		ID: "t2", Username: "bob", Kind: "deposit", Amount: "2", Counterparty: "bob", Timestamp: time.Now().UTC(),
	}))

	require.NoError(t, store.DeleteAccount(ctx, "alice"))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "bob", records[0].Username)
	require.Len(t, records[0].Transactions, 1)
}
