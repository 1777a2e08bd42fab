// Package secret holds secp256k1 private keys whose memory is wiped once the
// owning operation ends.
//
// A PrivateKey is owned by exactly one logical signing operation. It is not
// safe to share between goroutines; callers are expected to
//
//	key, err := ...
//	if err != nil { ... }
//	defer key.Wipe()
//
// right after it is created.
package secret

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/crypto/hash"
)

// KeyLength is the size of a secp256k1 scalar in bytes.
const KeyLength = 32

// uncompressedTag prefixes every uncompressed SEC1 public key.
const uncompressedTag = 0x04

// ErrInvalidKey is returned for scalars that are zero or not below the curve order.
var ErrInvalidKey = errors.New("invalid secp256k1 private key")

// PrivateKey is a 32-byte secp256k1 scalar. The zero value is not a usable
// key; obtain one from FromBytes.
type PrivateKey struct {
	key   [KeyLength]byte
	wiped bool
}

// FromBytes copies b into a new PrivateKey. b itself is not modified; callers
// still own and must clear it.
func FromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != KeyLength {
		return nil, errors.Wrapf(ErrInvalidKey, "expected %d bytes, got %d", KeyLength, len(b))
	}

	if isZero(b) {
		return nil, errors.Wrap(ErrInvalidKey, "zero scalar")
	}

	k := &PrivateKey{}
	copy(k.key[:], b)

	// ToECDSA performs the range check against the curve order.
	if err := k.WithECDSA(func(*ecdsa.PrivateKey) error { return nil }); err != nil {
		k.Wipe()
		return nil, err
	}

	return k, nil
}

// WithECDSA hands fn a go-ethereum view of the key. The big.Int copy is wiped
// when fn returns, whatever fn returns.
func (k *PrivateKey) WithECDSA(fn func(priv *ecdsa.PrivateKey) error) error {
	k.mustBeLive()

	priv, err := crypto.ToECDSA(k.key[:])
	if err != nil {
		return errors.Wrap(ErrInvalidKey, err.Error())
	}
	defer wipeECDSA(priv)

	return fn(priv)
}

// Address returns the Ethereum address of the key: the low 20 bytes of the
// Keccak-256 hash of the uncompressed public key without its 0x04 tag.
// It does not modify the key.
func (k *PrivateKey) Address() common.Address {
	var address common.Address

	err := k.WithECDSA(func(priv *ecdsa.PrivateKey) error {
		pub := crypto.FromECDSAPub(&priv.PublicKey)
		if len(pub) != 65 || pub[0] != uncompressedTag {
			panic("secret: unexpected public key encoding")
		}

		digest := hash.Keccak256(pub[1:])
		address = common.BytesToAddress(digest[12:])
		return nil
	})
	if err != nil {
		// Only reachable for keys not built by FromBytes.
		panic("secret: " + err.Error())
	}

	return address
}

// Wipe overwrites the scalar with zeros. It is safe to call more than once.
func (k *PrivateKey) Wipe() {
	if k == nil {
		return
	}
	ZeroBytes(k.key[:])
	k.wiped = true
}

// Wiped reports whether Wipe has been called.
func (k *PrivateKey) Wiped() bool {
	return k.wiped
}

func (k *PrivateKey) mustBeLive() {
	if k.wiped {
		panic("secret: use of wiped private key")
	}
	if isZero(k.key[:]) {
		panic("secret: use of uninitialized private key")
	}
}

func isZero(b []byte) bool {
	var acc byte
	for _, c := range b {
		acc |= c
	}
	return acc == 0
}

// ZeroBytes overwrites b with zeros.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func wipeECDSA(priv *ecdsa.PrivateKey) {
	if priv == nil || priv.D == nil {
		return
	}
	words := priv.D.Bits()
	for i := range words {
		words[i] = 0
	}
	priv.D.SetInt64(0)
}
