package domain

import "iter"

// Directory is the username-ordered binary search tree that owns every
// Account. It is deliberately a plain BST: no rebalancing happens on insert
// or remove, so a pathological insertion order degrades lookups to O(n).
// Callers are expected to serialise access.
type Directory struct {
	root *directoryNode
	size int
}

type directoryNode struct {
	account *Account
	left    *directoryNode
	right   *directoryNode
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Len reports the number of accounts in the directory.
func (d *Directory) Len() int {
	return d.size
}

// Insert links account into the tree by username ordering: strictly-less
// goes left, everything else right. It fails with ErrDuplicateUsername when
// the username is already present.
func (d *Directory) Insert(account *Account) error {
	if d.Find(account.Username) != nil {
		return ErrDuplicateUsername
	}
	node := &directoryNode{account: account}
	if d.root == nil {
		d.root = node
	} else {
		d.root.insert(node)
	}
	d.size++
	return nil
}

func (n *directoryNode) insert(node *directoryNode) {
	if node.account.Username < n.account.Username {
		if n.left == nil {
			n.left = node
		} else {
			n.left.insert(node)
		}
		return
	}
	if n.right == nil {
		n.right = node
	} else {
		n.right.insert(node)
	}
}

// Find returns the account stored under username, or nil when absent.
func (d *Directory) Find(username string) *Account {
	n := d.root
	for n != nil {
		switch {
		case username == n.account.Username:
			return n.account
		case username < n.account.Username:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}

// Remove unlinks the account stored under username and returns it. The
// two-child case is resolved by promoting the in-order successor: the
// successor's entire payload moves into the removed slot and its original
// node is spliced out. The removed account, with its ledger, is handed back
// to the caller and no longer referenced by the tree.
func (d *Directory) Remove(username string) (*Account, bool) {
	removed := d.Find(username)
	if removed == nil {
		return nil, false
	}
	d.root = removeNode(d.root, username)
	d.size--
	return removed, true
}

func removeNode(n *directoryNode, username string) *directoryNode {
	if n == nil {
		return nil
	}
	switch {
	case username < n.account.Username:
		n.left = removeNode(n.left, username)
	case username > n.account.Username:
		n.right = removeNode(n.right, username)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.account = succ.account
		n.right = removeNode(n.right, succ.account.Username)
	}
	return n
}

// InOrder yields every account in ascending username order. The sequence is
// lazy and restartable; it must not be consumed across mutations.
func (d *Directory) InOrder() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		d.root.walk(yield)
	}
}

func (n *directoryNode) walk(yield func(*Account) bool) bool {
	if n == nil {
		return true
	}
	return n.left.walk(yield) && yield(n.account) && n.right.walk(yield)
}
