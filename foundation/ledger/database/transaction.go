package database

import (
	"fmt"
	"time"
)

// Tx is the transactional information between two parties.
type Tx struct {
	FromID    AccountID `json:"from"`      // Account sending the funds.
	ToID      AccountID `json:"to"`        // Account receiving the benefit of the transaction.
	Value     uint64    `json:"value"`     // Monetary value received from this transaction.
	Tip       uint64    `json:"tip"`       // Fee offered by the sender as an incentive to mine this transaction.
	TimeStamp uint64    `json:"timestamp"` // The time the transaction was admitted to the mempool.
}

// NewTx constructs a new transaction and validates the basic rules every
// transaction needs to comply with. Balance checks are the ledger's concern.
func NewTx(fromID AccountID, toID AccountID, value uint64, tip uint64) (Tx, error) {
	if !fromID.IsAccountID() {
		return Tx{}, fmt.Errorf("from account is not properly formatted")
	}

	if !toID.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}

	if value == 0 {
		return Tx{}, fmt.Errorf("transaction value must be greater than zero")
	}

	tx := Tx{
		FromID: fromID,
		ToID:   toID,
		Value:  value,
		Tip:    tip,
	}

	return tx, nil
}

// NewRewardTx constructs the mining issuance transaction for the
// specified beneficiary. The reward always mines with a zero tip and is
// appended last inside its block.
func NewRewardTx(beneficiaryID AccountID, reward uint64) Tx {
	return Tx{
		FromID:    ZeroAccountID,
		ToID:      beneficiaryID,
		Value:     reward,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}
}

// IsReward reports whether this transaction represents mining issuance.
func (tx Tx) IsReward() bool {
	return tx.FromID == ZeroAccountID
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s:%d", tx.FromID, tx.ToID, tx.Value)
}
