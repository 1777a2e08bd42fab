package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/wallet/address"
	"github/chapool/safe-migrate/internal/wallet/seed"
	"github/chapool/safe-migrate/internal/wallet/secret"
)

type service struct {
	seedManager    seed.Manager
	addressService address.Service
}

// NewService creates a new signer Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(seedManager seed.Manager, addressService address.Service) Service {
	return &service{
		seedManager:    seedManager,
		addressService: addressService,
	}
}

// SignDigest signs digest with the key at path. The key only lives for the
// duration of the call.
func (s *service) SignDigest(ctx context.Context, digest common.Hash, path string) (Signature, error) {
	seedBytes := s.seedManager.GetSeed()
	if seedBytes == nil {
		return Signature{}, errors.New("seed not initialized")
	}
	defer secret.ZeroBytes(seedBytes)

	privateKey, err := s.addressService.DerivePrivateKey(ctx, seedBytes, path)
	if err != nil {
		return Signature{}, errors.Wrap(err, "failed to derive private key")
	}
	defer privateKey.Wipe()

	return Sign(digest, privateKey)
}
