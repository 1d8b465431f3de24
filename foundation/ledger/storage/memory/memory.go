// Package memory implements the database.Serializer interface entirely in
// memory. It exists for tests and throwaway nodes.
package memory

import (
	"errors"
	"sync"

	"github.com/forgecoin/forgecoin/foundation/ledger/database"
)

// ErrBlockNotFound is returned when a requested block number doesn't exist.
var ErrBlockNotFound = errors.New("block not found")

// Memory represents the storage implementation for keeping blocks in memory.
type Memory struct {
	mu     sync.RWMutex
	blocks map[uint64]database.BlockData
	latest uint64
	empty  bool
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{
		blocks: make(map[uint64]database.BlockData),
		empty:  true,
	}, nil
}

// Close in this implementation has nothing to do.
func (m *Memory) Close() error {
	return nil
}

// Write stores the specified block by its number. Writing an existing
// number replaces the block, which tests use to simulate tampering.
func (m *Memory) Write(blockData database.BlockData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks[blockData.Header.Number] = blockData
	if m.empty || blockData.Header.Number > m.latest {
		m.latest = blockData.Header.Number
	}
	m.empty = false

	return nil
}

// GetBlock returns the block stored under the specified number.
func (m *Memory) GetBlock(num uint64) (database.BlockData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blockData, exists := m.blocks[num]
	if !exists {
		return database.BlockData{}, ErrBlockNotFound
	}

	return blockData, nil
}

// ForEach returns an iterator to walk through all the blocks starting
// with the genesis block.
func (m *Memory) ForEach() database.Iterator {
	return &iterator{memory: m}
}

// Reset clears out all the stored blocks.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = make(map[uint64]database.BlockData)
	m.latest = 0
	m.empty = true

	return nil
}

// =============================================================================

// iterator represents the iteration implementation for walking through
// the in-memory blocks. This implements the database.Iterator interface.
type iterator struct {
	memory  *Memory
	current uint64
	eoc     bool
}

// Next retrieves the next block in number order.
func (it *iterator) Next() (database.BlockData, error) {
	if it.eoc {
		return database.BlockData{}, errors.New("end of chain")
	}

	blockData, err := it.memory.GetBlock(it.current)
	if errors.Is(err, ErrBlockNotFound) {
		it.eoc = true
	}
	it.current++

	return blockData, err
}

// Done returns the end of chain value.
func (it *iterator) Done() bool {
	return it.eoc
}
