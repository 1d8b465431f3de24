// Package digest provides the hashing support for the ledger. The algorithm
// is selected once at startup and every block and transaction hash in the
// system is produced through this package.
package digest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Supported hash algorithm names for the genesis hash_algorithm setting.
const (
	SHA256    = "sha256"
	Keccak256 = "keccak256"
)

// hashFn is the selected algorithm. Hashing defaults to sha256 until
// Select is called.
var hashFn = sha256Hash

// Select configures the hash algorithm by name. It is called once during
// startup before any hashing takes place.
func Select(algorithm string) error {
	switch algorithm {
	case SHA256, "":
		hashFn = sha256Hash
	case Keccak256:
		hashFn = keccakHash
	default:
		return fmt.Errorf("unknown hash algorithm %q", algorithm)
	}

	return nil
}

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	return hexutil.Encode(hashFn(data))
}

// =============================================================================

func sha256Hash(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

func keccakHash(data []byte) []byte {
	return crypto.Keccak256(data)
}
