package state

import (
	"math"
	"time"
)

// Stats represents derived, read-only figures about the ledger.
type Stats struct {
	BlockCount        uint64        `json:"block_count"`
	TransactionCount  uint64        `json:"transaction_count"`
	PendingCount      int           `json:"pending_count"`
	AverageBlockTime  time.Duration `json:"average_block_time"`
	CurrentDifficulty int           `json:"current_difficulty"`
	EstimatedHashRate float64       `json:"estimated_hash_rate"` // Heuristic, informational only.
}

// RetrieveStats returns the current ledger statistics.
func (s *State) RetrieveStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		BlockCount:        s.db.BlockCount(),
		TransactionCount:  s.db.TransCount(),
		PendingCount:      s.mempool.Count(),
		CurrentDifficulty: s.difficulty,
	}

	// Average time between blocks across the whole chain.
	if stats.BlockCount > 1 {
		genesisBlock, err := s.db.GenesisBlock()
		if err == nil {
			latest := s.db.LatestBlock()
			total := time.Duration(latest.Header.TimeStamp-genesisBlock.Header.TimeStamp) * time.Millisecond
			stats.AverageBlockTime = total / time.Duration(stats.BlockCount-1)
		}
	}

	// 2^difficulty hashes expected per block over the time since the last
	// one. Not used for any correctness decision.
	if elapsed := time.Since(s.lastSealedAt).Seconds(); elapsed > 0 {
		stats.EstimatedHashRate = math.Pow(2, float64(s.difficulty)) / elapsed
	}

	return stats
}
