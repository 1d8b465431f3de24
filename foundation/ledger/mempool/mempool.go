// Package mempool maintains the pool of admitted, not yet mined
// transactions. Insertion order is preserved because it decides which
// transactions enter the next block.
package mempool

import (
	"sync"

	"github.com/forgecoin/forgecoin/foundation/ledger/database"
)

// Mempool represents the ordered pool of transactions waiting to be mined.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the pool and returns the new pool size.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Delete removes the first transaction in the pool matching the specified
// transaction by value.
func (mp *Mempool) Delete(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i, ptx := range mp.pool {
		if ptx == tx {
			mp.pool = append(mp.pool[:i], mp.pool[i+1:]...)
			return
		}
	}
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// PickBest returns up to howMany transactions in insertion order for the
// next block. Transactions beyond the cap stay in the pool for a later
// block. Passing -1 returns everything.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if howMany == -1 || howMany > len(mp.pool) {
		howMany = len(mp.pool)
	}

	trans := make([]database.Tx, howMany)
	copy(trans, mp.pool[:howMany])

	return trans
}

// Copy returns a copy of the full pool in insertion order.
func (mp *Mempool) Copy() []database.Tx {
	return mp.PickBest(-1)
}
