// Package database handles the lower level support for maintaining the
// chain in storage and maintaining an in-memory view of account balances.
package database

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/forgecoin/forgecoin/foundation/ledger/genesis"
)

// Serializer interface represents the behavior required to be implemented by
// any package providing support for storing and reading the chain.
type Serializer interface {
	Write(blockData BlockData) error
	GetBlock(num uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// Database manages the chain and the accounts who have transacted on it.
type Database struct {
	mu sync.RWMutex

	genesis     genesis.Genesis
	latestBlock BlockData
	blockCount  uint64
	transCount  uint64
	accounts    map[AccountID]uint64

	serializer Serializer
}

// New constructs a new database, applies the genesis balances and replays
// the chain from storage. A fresh store receives the genesis block.
func New(genesis genesis.Genesis, serializer Serializer, evHandler func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:    genesis,
		accounts:   make(map[AccountID]uint64),
		serializer: serializer,
	}

	for accountStr, balance := range genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}
		db.accounts[accountID] = balance
	}

	// Replay the chain from storage, validating every block on the way in.
	var prev Block
	var loaded bool

	iter := serializer.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		block := ToBlock(blockData)

		if blockData.Hash != block.Hash() {
			return nil, fmt.Errorf("stored block %d hash mismatch, got %s, exp %s", block.Header.Number, blockData.Hash, block.Hash())
		}

		if loaded {
			if err := block.ValidateBlock(prev, evHandler); err != nil {
				return nil, err
			}
		}

		db.applyBlock(block)
		db.latestBlock = blockData
		prev = block
		loaded = true
	}

	// A fresh store needs the genesis block before anything can be mined.
	if !loaded {
		genesisBlock := NewGenesisBlock(genesis.Date)
		blockData := NewBlockData(genesisBlock)
		if err := serializer.Write(blockData); err != nil {
			return nil, err
		}

		db.applyBlock(genesisBlock)
		db.latestBlock = blockData
	}

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() {
	db.serializer.Close()
}

// =============================================================================

// LatestBlock returns the block at the tip of the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return ToBlock(db.latestBlock)
}

// BlockCount returns the number of blocks in the chain, genesis included.
func (db *Database) BlockCount() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blockCount
}

// TransCount returns the number of transactions sealed into the chain.
func (db *Database) TransCount() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.transCount
}

// GenesisBlock returns the first block of the chain.
func (db *Database) GenesisBlock() (Block, error) {
	blockData, err := db.serializer.GetBlock(0)
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData), nil
}

// Balance returns the committed balance for the specified account.
func (db *Database) Balance(accountID AccountID) uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.accounts[accountID]
}

// CopyAccounts makes a copy of the current accounts and their committed
// balances, sorted by account id.
func (db *Database) CopyAccounts() []Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make([]Account, 0, len(db.accounts))
	for accountID, balance := range db.accounts {
		accounts = append(accounts, Account{AccountID: accountID, Balance: balance})
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountID < accounts[j].AccountID
	})

	return accounts
}

// CopyChain returns a copy of the chain from storage, genesis first.
func (db *Database) CopyChain() ([]BlockData, error) {
	var chain []BlockData

	iter := db.serializer.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		trans := make([]Tx, len(blockData.Trans))
		copy(trans, blockData.Trans)
		blockData.Trans = trans

		chain = append(chain, blockData)
	}

	return chain, nil
}

// =============================================================================

// Write appends a validated block to storage and applies its transactions
// to the account balances.
func (db *Database) Write(block Block) error {
	blockData := NewBlockData(block)
	if err := db.serializer.Write(blockData); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.applyBlock(block)
	db.latestBlock = blockData

	return nil
}

// applyBlock folds the transactions of a block into the balance view. The
// sender is debited value plus tip, the receiver is credited value and the
// reward sender is never debited. Admission already guaranteed funds.
func (db *Database) applyBlock(block Block) {
	for _, tx := range block.Trans {
		if !tx.IsReward() {
			debit := tx.Value + tx.Tip
			if debit > db.accounts[tx.FromID] {
				debit = db.accounts[tx.FromID]
			}
			db.accounts[tx.FromID] -= debit
		}
		db.accounts[tx.ToID] += tx.Value
	}

	db.blockCount++
	db.transCount += uint64(len(block.Trans))
}

// =============================================================================

// ValidateChain walks the chain in storage from genesis to tip and verifies
// every stored hash against recomputation, every parent link and every
// sealed block's difficulty. It is a read-only tamper check, not part of the
// admission or mining path.
func (db *Database) ValidateChain(evHandler func(v string, args ...any)) error {
	var prev Block
	var started bool

	iter := db.serializer.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return err
		}

		block := ToBlock(blockData)

		if blockData.Hash != block.Hash() {
			return fmt.Errorf("block %d stored hash disagrees with recomputation, got %s, exp %s", block.Header.Number, blockData.Hash, block.Hash())
		}

		if started {
			if err := block.ValidateBlock(prev, evHandler); err != nil {
				return err
			}
		}

		prev = block
		started = true
	}

	if !started {
		return errors.New("chain has no genesis block")
	}

	return nil
}
