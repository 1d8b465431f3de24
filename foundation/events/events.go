// Package events allows for the registering and receiving of ledger
// lifecycle events. Events are typed values delivered over bounded
// channels, so a subscriber can observe the ledger but never reach back
// into its state from a notification.
package events

import (
	"fmt"
	"sync"

	"github.com/forgecoin/forgecoin/foundation/ledger/database"
)

// Kinds of lifecycle events. Each is emitted at most once per state
// transition, after the corresponding mutation commits.
const (
	KindTransactionAdmitted = "transaction.admitted"
	KindBlockMined          = "block.mined"
	KindBlockAppended       = "block.appended"
)

// Event represents one ledger state transition.
type Event struct {
	Kind  string              `json:"kind"`
	Tx    *database.Tx        `json:"tx,omitempty"`
	Block *database.BlockData `json:"block,omitempty"`
}

// NewTransactionAdmitted constructs the admission event for a transaction.
func NewTransactionAdmitted(tx database.Tx) Event {
	return Event{Kind: KindTransactionAdmitted, Tx: &tx}
}

// NewBlockMined constructs the event for a freshly sealed block.
func NewBlockMined(block database.Block) Event {
	blockData := database.NewBlockData(block)
	return Event{Kind: KindBlockMined, Block: &blockData}
}

// NewBlockAppended constructs the event for a block committed to the chain.
func NewBlockAppended(block database.Block) Event {
	blockData := database.NewBlockData(block)
	return Event{Kind: KindBlockAppended, Block: &blockData}
}

// =============================================================================

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]chan Event
	mu sync.RWMutex
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]chan Event),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	// A message is dropped for a receiver that isn't keeping up, so this
	// buffer gives a slow subscriber room before losing anything.
	const messageBuffer = 100

	evt.m[id] = make(chan Event, messageBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Send signals an event to every registered channel. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(ev Event) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- ev:
		default:
		}
	}
}
