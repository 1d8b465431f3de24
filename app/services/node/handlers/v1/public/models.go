package public

import (
	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/validate"
)

// submitTx is what a client sends to admit a transaction to the mempool.
type submitTx struct {
	FromID string `json:"from" validate:"required"`
	ToID   string `json:"to" validate:"required"`
	Value  uint64 `json:"value" validate:"required"`
	Tip    uint64 `json:"tip"`
}

// Validate checks the data in the model is considered clean.
func (tx submitTx) Validate() error {
	if err := validate.Check(tx); err != nil {
		return err
	}
	return nil
}

// =============================================================================

type actBalance struct {
	Account database.AccountID `json:"account"`
	Balance uint64             `json:"balance"`
}

type balances struct {
	LatestBlock string       `json:"latest_block"`
	Uncommitted int          `json:"uncommitted"`
	Balances    []actBalance `json:"balances"`
}
