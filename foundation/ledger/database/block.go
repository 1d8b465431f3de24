package database

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/forgecoin/forgecoin/foundation/ledger/digest"
)

// ErrCancelled is returned when the POW search is interrupted before a
// nonce is found. No partial block is ever produced.
var ErrCancelled = errors.New("mining cancelled")

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64    `json:"number"`          // Block number in the chain, genesis is 0.
	PrevBlockHash string    `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64    `json:"timestamp"`       // Time the block was mined, in milliseconds.
	BeneficiaryID AccountID `json:"beneficiary"`     // The account receiving the mining reward.
	Difficulty    int       `json:"difficulty"`      // Number of leading 0's needed to solve the hash solution.
	Nonce         uint64    `json:"nonce"`           // Value identified to solve the hash solution.
}

// Block represents a group of transactions batched together.
type Block struct {
	Header BlockHeader
	Trans  []Tx
}

// NewGenesisBlock constructs the fixed first block of the chain. The genesis
// block carries no transactions, links to a zero hash and is never mined, so
// its hash is exempt from the difficulty rule.
func NewGenesisBlock(date time.Time) Block {
	if date.IsZero() {
		date = time.Now().UTC()
	}

	return Block{
		Header: BlockHeader{
			Number:        0,
			PrevBlockHash: digest.ZeroHash,
			TimeStamp:     uint64(date.UnixMilli()),
		},
	}
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, beneficiaryID AccountID, difficulty int, prevBlock Block, trans []Tx, evHandler func(v string, args ...any)) (Block, error) {
	nb := Block{
		Header: BlockHeader{
			Number:        prevBlock.Header.Number + 1,
			PrevBlockHash: prevBlock.Hash(),
			TimeStamp:     uint64(time.Now().UTC().UnixMilli()),
			BeneficiaryID: beneficiaryID,
			Difficulty:    difficulty,
		},
		Trans: trans,
	}

	if err := nb.performPOW(ctx, evHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started: difficulty[%d]", b.Header.Difficulty)
	defer ev("database: performPOW: MINING: completed")

	for _, tx := range b.Trans {
		ev("database: performPOW: MINING: tx[%s]", tx)
	}

	// Choose a random starting point for the nonce. After this, the nonce
	// will be incremented by 1 until a solution is found.
	nBig, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return err
	}
	b.Header.Nonce = nBig.Uint64()

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ErrCancelled
		}

		hash := b.Hash()
		if !isHashSolved(b.Header.Difficulty, hash) {
			b.Header.Nonce++
			continue
		}

		ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: performPOW: MINING: attempts[%d]", attempts)

		return nil
	}
}

// Hash returns the unique hash for the Block. The hash covers the header and
// the ordered set of transactions, so any mutation of either is detectable.
func (b Block) Hash() string {
	return digest.Hash(b)
}

// ValidateBlock takes a block and validates it to be included into the chain
// after the specified previous block.
func (b Block) ValidateBlock(prevBlock Block, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: blk[%d]: check: block number is the next number", b.Header.Number)

	nextNumber := prevBlock.Header.Number + 1
	if b.Header.Number != nextNumber {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", b.Header.Number, nextNumber)
	}

	evHandler("database: ValidateBlock: blk[%d]: check: parent hash does match parent block", b.Header.Number)

	if b.Header.PrevBlockHash != prevBlock.Hash() {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.Header.PrevBlockHash, prevBlock.Hash())
	}

	evHandler("database: ValidateBlock: blk[%d]: check: block hash has been solved", b.Header.Number)

	if !isHashSolved(b.Header.Difficulty, b.Hash()) {
		return fmt.Errorf("%s invalid block hash", b.Hash())
	}

	evHandler("database: ValidateBlock: blk[%d]: check: block's timestamp is not before parent block's timestamp", b.Header.Number)

	parentTime := time.UnixMilli(int64(prevBlock.Header.TimeStamp))
	blockTime := time.UnixMilli(int64(b.Header.TimeStamp))
	if blockTime.Before(parentTime) {
		return fmt.Errorf("block timestamp is before parent block, parent %s, block %s", parentTime, blockTime)
	}

	return nil
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty int, hash string) bool {
	const match = "0x00000000000000000"

	if len(hash) != 66 {
		return false
	}

	if difficulty > len(match)-2 {
		return false
	}

	return hash[:2+difficulty] == match[:2+difficulty]
}

// =============================================================================

// BlockData represents what is serialized to storage. The sealed hash is kept
// alongside the contents so tampering with a stored block is detectable by
// recomputation.
type BlockData struct {
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"block"`
	Trans  []Tx        `json:"trans"`
}

// NewBlockData constructs the value to serialize to storage.
func NewBlockData(block Block) BlockData {
	return BlockData{
		Hash:   block.Hash(),
		Header: block.Header,
		Trans:  block.Trans,
	}
}

// ToBlock converts a BlockData into a Block.
func ToBlock(blockData BlockData) Block {
	return Block{
		Header: blockData.Header,
		Trans:  blockData.Trans,
	}
}
