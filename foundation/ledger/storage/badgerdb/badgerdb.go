// Package badgerdb implements the database.Serializer interface on top of
// a badger key/value store. Blocks are keyed by their big-endian number so
// iteration walks the chain in order.
package badgerdb

import (
	"encoding/binary"
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/forgecoin/forgecoin/foundation/ledger/database"
)

// ErrBlockNotFound is returned when a requested block number doesn't exist.
var ErrBlockNotFound = errors.New("block not found")

// Badger represents the storage implementation for keeping blocks inside
// a badger database.
type Badger struct {
	db *badger.DB
}

// New constructs a Badger value for use.
func New(dbPath string) (*Badger, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{db: db}, nil
}

// Close releases the underlying badger database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Write stores the specified block under its block number.
func (b *Badger) Write(blockData database.BlockData) error {
	data, err := json.Marshal(blockData)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(blockKey(blockData.Header.Number), data)
	})
}

// GetBlock returns the block stored under the specified number.
func (b *Badger) GetBlock(num uint64) (database.BlockData, error) {
	var blockData database.BlockData

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blockKey(num))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &blockData)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return database.BlockData{}, ErrBlockNotFound
	}
	if err != nil {
		return database.BlockData{}, err
	}

	return blockData, nil
}

// ForEach returns an iterator to walk through all the blocks starting
// with the genesis block.
func (b *Badger) ForEach() database.Iterator {
	return &iterator{badger: b}
}

// Reset drops all the stored blocks.
func (b *Badger) Reset() error {
	return b.db.DropAll()
}

// blockKey forms the big-endian key for the specified block number.
func blockKey(num uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, num)
	return key
}

// =============================================================================

// iterator represents the iteration implementation for walking through
// the stored blocks. This implements the database.Iterator interface.
type iterator struct {
	badger  *Badger
	current uint64
	eoc     bool
}

// Next retrieves the next block in number order.
func (it *iterator) Next() (database.BlockData, error) {
	if it.eoc {
		return database.BlockData{}, errors.New("end of chain")
	}

	blockData, err := it.badger.GetBlock(it.current)
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
