package domain

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Ledger holds one account's transaction history as a height-balanced (AVL)
// binary tree ordered by amount. Entries with equal amounts are ordered by
// their insertion sequence, so no record is ever dropped. Entries are
// immutable once recorded; the ledger supports no deletion.
type Ledger struct {
	root    *ledgerNode
	size    int
	nextSeq uint64
}

type ledgerNode struct {
	tx     Transaction
	height int
	left   *ledgerNode
	right  *ledgerNode
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Len reports the number of recorded transactions.
func (l *Ledger) Len() int {
	return l.size
}

// Height reports the height of the tree. An empty tree has height 0, a
// single entry height 1.
func (l *Ledger) Height() int {
	return height(l.root)
}

// Insert records tx, assigning it the next insertion sequence, and
// rebalances the tree. It returns a pointer to the stored entry.
func (l *Ledger) Insert(tx Transaction) *Transaction {
	l.nextSeq++
	tx.Seq = l.nextSeq
	var inserted *Transaction
	l.root = insertNode(l.root, tx, &inserted)
	l.size++
	return inserted
}

// Record creates a transaction and inserts it in one step.
func (l *Ledger) Record(kind TransactionKind, amount decimal.Decimal, counterparty string) *Transaction {
	return l.Insert(NewTransaction(kind, amount, counterparty))
}

// InOrder yields the transactions in ascending (amount, sequence) order.
// The sequence is lazy and restartable; re-invoking it produces the same
// ordering as long as the ledger is not mutated in between.
func (l *Ledger) InOrder() iter.Seq[*Transaction] {
	return func(yield func(*Transaction) bool) {
		l.root.walk(yield)
	}
}

func (n *ledgerNode) walk(yield func(*Transaction) bool) bool {
	if n == nil {
		return true
	}
	return n.left.walk(yield) && yield(&n.tx) && n.right.walk(yield)
}

// less orders entries by amount, breaking ties with the insertion sequence.
func (t Transaction) less(o Transaction) bool {
	if c := t.Amount.Cmp(o.Amount); c != 0 {
		return c < 0
	}
	return t.Seq < o.Seq
}

func height(n *ledgerNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor(n *ledgerNode) int {
	return height(n.left) - height(n.right)
}

func (n *ledgerNode) recalcHeight() {
	n.height = 1 + max(height(n.left), height(n.right))
}

func rotateRight(y *ledgerNode) *ledgerNode {
	x := y.left
	y.left = x.right
	x.right = y
	y.recalcHeight()
	x.recalcHeight()
	return x
}

func rotateLeft(x *ledgerNode) *ledgerNode {
	y := x.right
	x.right = y.left
	y.left = x
	x.recalcHeight()
	y.recalcHeight()
	return y
}

func insertNode(n *ledgerNode, tx Transaction, inserted **Transaction) *ledgerNode {
	if n == nil {
		node := &ledgerNode{tx: tx, height: 1}
		*inserted = &node.tx
		return node
	}
	if tx.less(n.tx) {
		n.left = insertNode(n.left, tx, inserted)
	} else {
		n.right = insertNode(n.right, tx, inserted)
	}
	n.recalcHeight()
	return rebalance(n, tx)
}

// rebalance applies the four AVL rotation cases. The (amount, seq) key is
// unique per entry, so comparing the freshly inserted key against the child
// key identifies the heavy grandchild unambiguously.
func rebalance(n *ledgerNode, tx Transaction) *ledgerNode {
	bf := balanceFactor(n)
	switch {
	case bf > 1 && tx.less(n.left.tx):
		return rotateRight(n)
	case bf > 1:
		n.left = rotateLeft(n.left)
		return rotateRight(n)
	case bf < -1 && !tx.less(n.right.tx):
		return rotateLeft(n)
	case bf < -1:
		n.right = rotateRight(n.right)
		return rotateLeft(n)
	}
	return n
}
