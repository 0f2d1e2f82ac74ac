package domain

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAccount(username string) *Account {
	return NewAccount(username, username+"@example.com", "digest")
}

func usernames(d *Directory) []string {
	var out []string
	for a := range d.InOrder() {
		out = append(out, a.Username)
	}
	return out
}

func TestDirectory_InsertAndFind(t *testing.T) {
	d := NewDirectory()
	for _, u := range []string{"mallory", "alice", "zed", "bob", "carol"} {
		require.NoError(t, d.Insert(newTestAccount(u)))
	}

	require.Equal(t, 5, d.Len())
	for _, u := range []string{"alice", "bob", "carol", "mallory", "zed"} {
		account := d.Find(u)
		require.NotNil(t, account, "find %s", u)
		require.Equal(t, u, account.Username)
	}
	require.Nil(t, d.Find("nobody"))
}

func TestDirectory_InsertDuplicate(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.Insert(newTestAccount("alice")))
	require.ErrorIs(t, d.Insert(newTestAccount("alice")), ErrDuplicateUsername)
	require.Equal(t, 1, d.Len())
}

func TestDirectory_InOrderSorted(t *testing.T) {
	d := NewDirectory()
	inserted := []string{"f", "b", "g", "a", "d", "i", "c", "e", "h"}
	for _, u := range inserted {
		require.NoError(t, d.Insert(newTestAccount(u)))
	}

	got := usernames(d)
	require.True(t, sort.StringsAreSorted(got))
	require.Len(t, got, len(inserted))
}

func TestDirectory_RemoveLeafAndSingleChild(t *testing.T) {
	d := NewDirectory()
	for _, u := range []string{"m", "d", "t", "b"} {
		require.NoError(t, d.Insert(newTestAccount(u)))
	}

	// "t" is a leaf.
	removed, ok := d.Remove("t")
	require.True(t, ok)
	require.Equal(t, "t", removed.Username)
	require.Nil(t, d.Find("t"))

	// "d" has a single child "b", which is spliced into its place.
	removed, ok = d.Remove("d")
	require.True(t, ok)
	require.Equal(t, "d", removed.Username)

	require.Equal(t, []string{"b", "m"}, usernames(d))
}

func TestDirectory_RemoveTwoChildren_PromotesSuccessor(t *testing.T) {
	d := NewDirectory()
	for _, u := range []string{"m", "d", "t", "p", "x", "q"} {
		require.NoError(t, d.Insert(newTestAccount(u)))
	}

	// "t" has two children ("p" and "x"); its in-order successor "x" is
	// promoted into the removed slot.
	removed, ok := d.Remove("t")
	require.True(t, ok)
	require.Equal(t, "t", removed.Username)

	require.Nil(t, d.Find("t"))
	require.Equal(t, []string{"d", "m", "p", "q", "x"}, usernames(d))
}

func TestDirectory_RemoveMissing(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.Insert(newTestAccount("alice")))

	_, ok := d.Remove("bob")
	require.False(t, ok)
	require.Equal(t, 1, d.Len())
}

func TestDirectory_RandomisedRemovals(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d := NewDirectory()

	var all []string
	for i := 0; i < 200; i++ {
		u := randomUsername(rng)
		if d.Find(u) != nil {
			continue
		}
		require.NoError(t, d.Insert(newTestAccount(u)))
		all = append(all, u)
	}

	// Remove a random half and verify the BST invariant after every removal.
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	half := len(all) / 2
	for _, u := range all[:half] {
		_, ok := d.Remove(u)
		require.True(t, ok, "remove %s", u)
		require.True(t, sort.StringsAreSorted(usernames(d)), "order broken after removing %s", u)
	}

	for _, u := range all[:half] {
		require.Nil(t, d.Find(u))
	}
	for _, u := range all[half:] {
		require.NotNil(t, d.Find(u), "lost %s", u)
	}
	require.Equal(t, len(all)-half, d.Len())
}

func randomUsername(rng *rand.Rand) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, 6)
	for i := range b {
		b[i] = letters[rng.Intn(len(letters))]
	}
	return string(b)
}
