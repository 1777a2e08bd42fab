// Package hash provides the Keccak-256 digest used for selectors, EIP-712
// hashing and address derivation.
package hash

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 returns the legacy (pre-NIST padding) Keccak-256 digest of the
// concatenated inputs. It keeps no state between calls.
func Keccak256(data ...[]byte) common.Hash {
	return crypto.Keccak256Hash(data...)
}

// Keccak256String hashes the ASCII bytes of s.
func Keccak256String(s string) common.Hash {
	return Keccak256([]byte(s))
}
