// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"
	"time"

	"github.com/forgecoin/forgecoin/foundation/events"
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/ledger/difficulty"
	"github.com/forgecoin/forgecoin/foundation/ledger/genesis"
	"github.com/forgecoin/forgecoin/foundation/ledger/mempool"
)

// EventHandler defines a function that is called when significant
// events occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	BeneficiaryID database.AccountID
	Genesis       genesis.Genesis
	Storage       database.Serializer
	Events        *events.Events
	EvHandler     EventHandler
}

// State manages the ledger. It is the sole owner of the chain, the mempool
// and the difficulty; every mutation happens under its mutex.
type State struct {
	mu sync.RWMutex

	beneficiaryID database.AccountID
	genesis       genesis.Genesis
	evHandler     EventHandler

	difficulty   int
	lastSealedAt time.Time

	db       *database.Database
	mempool  *mempool.Mempool
	retarget difficulty.Controller
	events   *events.Events

	Worker Worker
}

// New constructs a new ledger for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	db, err := database.New(cfg.Genesis, cfg.Storage, ev)
	if err != nil {
		return nil, err
	}

	// Seed the retarget reference with the tip's timestamp when there is
	// mining history, otherwise with process start so an old genesis date
	// doesn't immediately lower the difficulty.
	lastSealedAt := time.Now().UTC()
	if latest := db.LatestBlock(); latest.Header.Number > 0 {
		lastSealedAt = time.UnixMilli(int64(latest.Header.TimeStamp)).UTC()
	}

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		genesis:       cfg.Genesis,
		evHandler:     ev,

		difficulty:   cfg.Genesis.Difficulty,
		lastSealedAt: lastSealedAt,

		db:       db,
		mempool:  mempool.New(),
		retarget: difficulty.NewController(cfg.Genesis.TargetBlockInterval()),
		events:   cfg.Events,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	defer func() {
		s.db.Close()
	}()

	// Stop any in-flight mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// send delivers a lifecycle event to subscribers if an events value was
// configured. Delivery happens after the corresponding mutation commits.
func (s *State) send(ev events.Event) {
	if s.events != nil {
		s.events.Send(ev)
	}
}
