package state

import (
	"fmt"
	"time"

	"github.com/forgecoin/forgecoin/foundation/events"
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
)

// UpsertMempool validates a transaction and admits it to the mempool. On
// any failure the pool is unchanged and no event is raised.
func (s *State) UpsertMempool(tx database.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !tx.FromID.IsAccountID() {
		return fmt.Errorf("from account is not properly formatted")
	}

	if !tx.ToID.IsAccountID() {
		return fmt.Errorf("to account is not properly formatted")
	}

	if tx.Value == 0 {
		return fmt.Errorf("transaction value must be greater than zero")
	}

	if tx.IsReward() {
		return fmt.Errorf("reward transactions can't be submitted")
	}

	// The sender needs to hold the value plus the tip against the balance
	// produced by the chain and the pending transactions already admitted
	// ahead of this one.
	balance := s.balanceLocked(tx.FromID)
	if balance < tx.Value+tx.Tip {
		return fmt.Errorf("insufficient funds, bal %d, needed %d", balance, tx.Value+tx.Tip)
	}

	if tx.TimeStamp == 0 {
		tx.TimeStamp = uint64(time.Now().UTC().UnixMilli())
	}

	count := s.mempool.Add(tx)
	s.evHandler("state: UpsertMempool: tx[%s] admitted: total[%d]", tx, count)

	s.send(events.NewTransactionAdmitted(tx))

	return nil
}
