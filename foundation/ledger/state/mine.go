package state

import (
	"context"
	"errors"
	"time"

	"github.com/forgecoin/forgecoin/foundation/events"
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no transactions in the mempool.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// MineNewBlock attempts to create a new block with a proper hash that can
// become the next block in the chain. The POW search runs outside the state
// mutex and honors context cancellation; on any failure nothing is mutated.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	trans, prevBlock, diff, err := s.beginMining()
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: perform POW: difficulty[%d]", diff)

	// Attempt to create a new block by solving the POW puzzle. This can be
	// cancelled at any point.
	block, err := database.POW(ctx, s.beneficiaryID, diff, prevBlock, trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	if err := s.commitBlock(block); err != nil {
		return database.Block{}, err
	}

	s.send(events.NewBlockMined(block))
	s.send(events.NewBlockAppended(block))

	return block, nil
}

// beginMining adjusts the difficulty for this attempt and snapshots the
// candidate transactions and the chain tip under the state mutex.
func (s *State) beginMining() ([]database.Tx, database.Block, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mempool.Count() == 0 {
		return nil, database.Block{}, 0, ErrNoTransactions
	}

	// Retarget against the single interval since the last sealed block.
	elapsed := time.Since(s.lastSealedAt)
	if adjusted := s.retarget.Adjust(s.difficulty, elapsed); adjusted != s.difficulty {
		s.evHandler("state: beginMining: MINING: difficulty retarget: elapsed[%v] old[%d] new[%d]", elapsed, s.difficulty, adjusted)
		s.difficulty = adjusted
	}

	// The candidate carries the pending transactions in insertion order,
	// capped by the block size, with the reward transaction appended last.
	trans := s.mempool.PickBest(s.genesis.TransPerBlock)
	trans = append(trans, database.NewRewardTx(s.beneficiaryID, s.genesis.MiningReward))

	return trans, s.db.LatestBlock(), s.difficulty, nil
}

// commitBlock validates the sealed block against the chain tip and, if it
// holds, appends it, removes exactly the mined transactions from the
// mempool and moves the retarget reference forward.
func (s *State) commitBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := block.ValidateBlock(s.db.LatestBlock(), s.evHandler); err != nil {
		return err
	}

	if err := s.db.Write(block); err != nil {
		return err
	}

	for _, tx := range block.Trans {
		if tx.IsReward() {
			continue
		}
		s.mempool.Delete(tx)
	}

	s.lastSealedAt = time.Now().UTC()

	return nil
}
