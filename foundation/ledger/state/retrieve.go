package state

import (
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/ledger/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.LatestBlock()
}

// RetrieveMempool returns a copy of the mempool in insertion order.
func (s *State) RetrieveMempool() []database.Tx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Copy()
}

// RetrieveChain returns a read-only copy of the chain, genesis first.
func (s *State) RetrieveChain() ([]database.BlockData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.CopyChain()
}

// RetrieveAccounts returns a copy of the committed account balances.
func (s *State) RetrieveAccounts() []database.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.CopyAccounts()
}

// RetrieveDifficulty returns the difficulty currently in force.
func (s *State) RetrieveDifficulty() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.difficulty
}

// QueryMempoolLength returns the current number of pending transactions.
func (s *State) QueryMempoolLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Count()
}
