// Package difficulty implements the retarget rule applied before each
// mining attempt. It is a bang-bang controller reacting to exactly one
// prior block interval, not a moving average.
package difficulty

import "time"

// MinDifficulty is the floor the retarget can never go below.
const MinDifficulty = 1

// Controller adjusts the difficulty toward a target block interval.
type Controller struct {
	targetInterval time.Duration
}

// NewController constructs a controller for the specified target interval.
func NewController(targetInterval time.Duration) Controller {
	return Controller{targetInterval: targetInterval}
}

// Adjust returns the difficulty to use for the next sealing attempt based
// on the time elapsed since the previous block was sealed. Mining faster
// than half the target raises the cost by one, mining slower than twice
// the target lowers it by one, anything in between leaves it alone.
func (c Controller) Adjust(current int, elapsed time.Duration) int {
	if current < MinDifficulty {
		current = MinDifficulty
	}

	switch {
	case elapsed < c.targetInterval/2:
		return current + 1

	case elapsed > c.targetInterval*2:
		if current > MinDifficulty {
			return current - 1
		}
		return MinDifficulty

	default:
		return current
	}
}
