package state

import (
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
)

// QueryBalance returns the balance for the specified account, including
// the effect of the pending transactions in the mempool. It is a pure
// read and safe to call concurrently with other reads.
func (s *State) QueryBalance(accountID database.AccountID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balanceLocked(accountID)
}

// balanceLocked computes the committed balance for the account adjusted by
// the mempool in insertion order. The caller must hold the state mutex.
func (s *State) balanceLocked(accountID database.AccountID) uint64 {
	balance := s.db.Balance(accountID)

	for _, tx := range s.mempool.Copy() {
		if tx.FromID == accountID && !tx.IsReward() {
			debit := tx.Value + tx.Tip
			if debit > balance {
				debit = balance
			}
			balance -= debit
		}

		if tx.ToID == accountID {
			balance += tx.Value
		}
	}

	return balance
}
