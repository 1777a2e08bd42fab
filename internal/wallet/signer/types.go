package signer

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrSigningFailure is returned when the curve library rejects the digest or
// key. Signing is deterministic, so retrying with the same inputs fails again.
var ErrSigningFailure = errors.New("signing failed")

// Service provides digest signing with keys derived from the loaded seed
type Service interface {
	// SignDigest derives the key at path, signs digest and wipes the key
	SignDigest(ctx context.Context, digest common.Hash, path string) (Signature, error)
}

// Signature is a recoverable secp256k1 signature in electrum notation.
type Signature struct {
	// V is the recovery id plus 27 (27 or 28).
	V uint8
	// R is the big-endian r value.
	R [32]byte
	// S is the big-endian, low-s normalised s value.
	S [32]byte
}

// Bytes returns the 65-byte r || s || v encoding.
func (s Signature) Bytes() []byte {
	out := make([]byte, 0, signatureLength)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// String renders the signature as 0x{r}{s}{v}.
func (s Signature) String() string {
	return fmt.Sprintf("0x%s%s%02x", hex.EncodeToString(s.R[:]), hex.EncodeToString(s.S[:]), s.V)
}
