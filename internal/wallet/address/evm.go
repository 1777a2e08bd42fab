package address

import (
	"context"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github/chapool/safe-migrate/internal/wallet/secret"
)

// hardenedOffset is added to an index marked with ' (BIP-32 hardened child).
const hardenedOffset = 0x80000000

// DeriveAddress derives an EVM address from seed and BIP44 path
func (s *service) DeriveAddress(ctx context.Context, seed []byte, path string) (common.Address, error) {
	privateKey, err := s.DerivePrivateKey(ctx, seed, path)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to derive private key")
	}
	defer privateKey.Wipe()

	return privateKey.Address(), nil
}

// DerivePrivateKey derives a private key from seed and BIP44 path
// WARNING: Caller must Wipe the private key after use
func (s *service) DerivePrivateKey(_ context.Context, seed []byte, path string) (*secret.PrivateKey, error) {
	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse BIP44 path")
	}

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrapf(ErrDerivationFailure, "master key: %v", err)
	}

	derivedKey, err := deriveKeyFromPath(masterKey, indices)
	if err != nil {
		return nil, err
	}
	defer wipeKey(derivedKey)

	scalar := leftPad(derivedKey.Key, secret.KeyLength)
	defer secret.ZeroBytes(scalar)

	privateKey, err := secret.FromBytes(scalar)
	if err != nil {
		return nil, errors.Wrapf(ErrDerivationFailure, "derived key: %v", err)
	}

	return privateKey, nil
}

// deriveKeyFromPath walks indices from masterKey. Every intermediate key is
// wiped before returning; the returned key belongs to the caller.
func deriveKeyFromPath(masterKey *bip32.Key, indices []uint32) (*bip32.Key, error) {
	key := masterKey
	for _, index := range indices {
		child, err := key.NewChildKey(index)
		wipeKey(key)
		if err != nil {
			return nil, errors.Wrapf(ErrDerivationFailure, "child key at index %d: %v", index, err)
		}
		key = child
	}

	return key, nil
}

// parseBIP44Path parses a BIP44 path string into indices
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parseBIP44Path(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, errors.Errorf("invalid BIP44 path: %s", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || index >= hardenedOffset {
			return nil, errors.Errorf("invalid path segment: %s", part)
		}

		if hardened {
			index += hardenedOffset
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}

// leftPad returns a copy of b left-padded with zeros to size bytes.
func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return append([]byte(nil), b...)
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}

func wipeKey(key *bip32.Key) {
	if key == nil {
		return
	}
	secret.ZeroBytes(key.Key)
	secret.ZeroBytes(key.ChainCode)
}
