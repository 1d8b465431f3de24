// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date           time.Time         `json:"date"`
	ChainName      string            `json:"chain_name"`      // A human readable name for this running instance.
	TransPerBlock  int               `json:"trans_per_block"` // The maximum number of transactions that can be in a block.
	Difficulty     int               `json:"difficulty"`      // How many leading zero characters a sealed block hash needs.
	MiningReward   uint64            `json:"mining_reward"`   // Reward credited to the miner of a block.
	TargetInterval int               `json:"target_interval"` // Seconds between blocks the difficulty retarget aims for.
	HashAlgorithm  string            `json:"hash_algorithm"`  // Algorithm used to hash blocks and transactions.
	Balances       map[string]uint64 `json:"balances"`        // Accounts seeded with funds before the first block.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis configuration holds workable values.
func (g Genesis) Validate() error {
	if g.Difficulty < 1 {
		return fmt.Errorf("difficulty must be 1 or greater, got %d", g.Difficulty)
	}

	if g.TargetInterval < 0 {
		return fmt.Errorf("target interval can't be negative, got %d", g.TargetInterval)
	}

	if g.TransPerBlock < 1 {
		return fmt.Errorf("trans per block must be 1 or greater, got %d", g.TransPerBlock)
	}

	return nil
}

// TargetBlockInterval returns the retarget interval as a duration.
func (g Genesis) TargetBlockInterval() time.Duration {
	return time.Duration(g.TargetInterval) * time.Second
}
