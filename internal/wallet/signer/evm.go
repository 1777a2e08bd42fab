package signer

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/wallet/secret"
)

const (
	signatureLength = 65
	recoveryIDIndex = 64

	// electrumOffset maps recovery id 0/1 to v 27/28.
	electrumOffset = 27
)

// Sign produces a recoverable ECDSA signature over digest. Nonces follow
// RFC 6979 and s is normalised to the lower half of the curve order, so the
// same digest and key always give the same signature.
func Sign(digest common.Hash, key *secret.PrivateKey) (Signature, error) {
	var signature Signature

	err := key.WithECDSA(func(priv *ecdsa.PrivateKey) error {
		raw, err := crypto.Sign(digest[:], priv)
		if err != nil {
			return errors.Wrap(ErrSigningFailure, err.Error())
		}
		defer secret.ZeroBytes(raw)

		if len(raw) != signatureLength || raw[recoveryIDIndex] > 1 {
			return errors.Wrap(ErrSigningFailure, "unexpected signature encoding")
		}

		copy(signature.R[:], raw[:32])
		copy(signature.S[:], raw[32:64])
		signature.V = raw[recoveryIDIndex] + electrumOffset

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSigningFailure) {
			return Signature{}, err
		}
		return Signature{}, errors.Wrap(ErrSigningFailure, err.Error())
	}

	return signature, nil
}

// RecoverAddress returns the address whose key produced signature over digest.
func RecoverAddress(digest common.Hash, signature Signature) (common.Address, error) {
	raw := signature.Bytes()
	if signature.V < electrumOffset {
		return common.Address{}, errors.Errorf("invalid signature v value: %d", signature.V)
	}
	raw[recoveryIDIndex] -= electrumOffset

	pub, err := crypto.SigToPub(digest[:], raw)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to recover public key")
	}

	return crypto.PubkeyToAddress(*pub), nil
}
