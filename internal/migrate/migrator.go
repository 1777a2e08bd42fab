// Package migrate adds a new owner to a legacy Safe using the Safe's
// recovery phrase, after a series of operator confirmations.
package migrate

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/etherscan"
	"github/chapool/safe-migrate/internal/safe"
	"github/chapool/safe-migrate/internal/safe/abi"
	"github/chapool/safe-migrate/internal/safe/data"
	"github/chapool/safe-migrate/internal/safe/tx"
	"github/chapool/safe-migrate/internal/util"
	"github/chapool/safe-migrate/internal/wallet/address"
	"github/chapool/safe-migrate/internal/wallet/secret"
	"github/chapool/safe-migrate/internal/wallet/seed"
	"github/chapool/safe-migrate/internal/wallet/signer"
)

// Migrator runs the interactive migration flow.
type Migrator struct {
	relay          Relay
	prompter       Prompter
	out            io.Writer
	seedManager    seed.Manager
	addressService address.Service
	signerService  signer.Service
}

// New returns a Migrator writing operator output to out.
func New(relay Relay, prompter Prompter, out io.Writer) *Migrator {
	seedManager := seed.NewManager()
	addressService := address.NewService()

	return &Migrator{
		relay:          relay,
		prompter:       prompter,
		out:            out,
		seedManager:    seedManager,
		addressService: addressService,
		signerService:  signer.NewService(seedManager, addressService),
	}
}

// Run executes the migration and returns the relayed transaction. The
// recovery seed is cleared before Run returns, whatever the outcome.
func (m *Migrator) Run(ctx context.Context, params Params) (*data.ExecutedTransaction, error) {
	logger := util.LogFromContext(ctx).With().
		Str("component", "migrate").
		Str("run_id", uuid.New().String()).
		Str("network", params.Network.String()).
		Uint64("chain_id", params.Network.ChainID()).
		Str("safe", params.Safe.Hex()).
		Logger()
	ctx = logger.WithContext(ctx)

	defer m.seedManager.Clear()

	phrase, err := m.prompter.ReadPassword("Legacy Safe recovery phrase")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read recovery phrase")
	}
	if err := m.seedManager.Initialize(phrase, ""); err != nil {
		return nil, errors.Wrap(err, "failed to load recovery phrase")
	}

	recovery, err := m.RecoveryAddresses(ctx)
	if err != nil {
		return nil, err
	}

	m.printf("Using Safe %s\n", params.Safe.Hex())
	m.printf("Using Recovery accounts:\n")
	m.printf("  - %s\n", recovery.Primary.Hex())
	m.printf("  - %s\n", recovery.Secondary.Hex())

	info, err := m.relay.GetSafe(ctx, params.Safe)
	if err != nil {
		return nil, err
	}
	if err := CheckSafe(info, recovery); err != nil {
		return nil, err
	}
	logger.Debug().Uint64("nonce", info.Nonce).Msg("Safe is eligible for migration")

	callData := abi.AddOwnerWithThreshold(params.NewOwner, newThreshold)

	estimate, err := m.relay.EstimateSafeTransaction(ctx, &data.EstimateParameters{
		Safe:      params.Safe,
		To:        params.Safe,
		Value:     data.NewQuantity(0),
		Data:      callData,
		Operation: safe.OperationCall,
		GasToken:  params.GasToken,
	})
	if err != nil {
		return nil, err
	}
	if next := estimate.NextNonce(info.Nonce); next != info.Nonce {
		logger.Warn().Uint64("safe_nonce", info.Nonce).Uint64("relay_nonce", next).Msg("Relay nonce differs from Safe nonce")
	}

	if err := m.confirmAll(
		fmt.Sprintf("About to add %s as an owner (yes to continue)", params.NewOwner.Hex()),
		fmt.Sprintf("Are you sure, this will add a new owner to the Safe %s", params.Safe.Hex()),
		"Are you absolutely sure!",
	); err != nil {
		return nil, err
	}

	transaction := &tx.Transaction{
		To:             params.Safe,
		Value:          data.NewQuantity(0),
		Data:           callData,
		Operation:      safe.OperationCall,
		SafeTxGas:      estimate.SafeTxGas,
		BaseGas:        estimate.BaseGas,
		GasPrice:       estimate.GasPrice,
		GasToken:       estimate.GasToken,
		RefundReceiver: estimate.RefundReceiver,
		Nonce:          info.Nonce,
	}
	if err := transaction.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid safe transaction")
	}

	digest := transaction.Hash(params.Safe)
	renderSummary(m.out, transaction, digest)

	if err := m.prompter.Confirm("Are you still 100% sure"); err != nil {
		return nil, err
	}

	signature, err := m.signerService.SignDigest(ctx, digest, m.addressService.GetBIP44Path(primaryRecoveryIndex))
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign safe transaction")
	}
	m.printf("Using signature %s\n", signature)

	if err := m.prompter.Confirm("Are absolutely positively undoubtedly sure"); err != nil {
		return nil, err
	}

	executed, err := m.relay.PostTransaction(ctx, transaction.Signed(params.Safe, signature))
	if err != nil {
		return nil, err
	}
	logger.Info().Str("transaction_hash", executed.TransactionHash.Hex()).Msg("Transaction relayed")

	m.printf("Transaction successfully relayed:\n")
	m.printf("%s\n", explorerLink(params, executed.TransactionHash))

	return executed, nil
}

// RecoveryAddresses derives the primary and secondary recovery owners from
// the loaded recovery phrase. Keys are wiped as soon as their address is known.
func (m *Migrator) RecoveryAddresses(ctx context.Context) (RecoveryAddresses, error) {
	seedBytes := m.seedManager.GetSeed()
	if seedBytes == nil {
		return RecoveryAddresses{}, errors.New("seed not initialized")
	}
	defer secret.ZeroBytes(seedBytes)

	primary, err := m.addressService.DeriveAddress(ctx, seedBytes, m.addressService.GetBIP44Path(primaryRecoveryIndex))
	if err != nil {
		return RecoveryAddresses{}, errors.Wrap(err, "failed to derive primary recovery address")
	}

	secondary, err := m.addressService.DeriveAddress(ctx, seedBytes, m.addressService.GetBIP44Path(secondaryRecoveryIndex))
	if err != nil {
		return RecoveryAddresses{}, errors.Wrap(err, "failed to derive secondary recovery address")
	}

	return RecoveryAddresses{Primary: primary, Secondary: secondary}, nil
}

// CheckSafe verifies info describes a legacy Safe controlled by recovery.
// Ownership is checked by membership only; the owner slots are not inspected.
func CheckSafe(info *data.SafeInfo, recovery RecoveryAddresses) error {
	if info.Version != SupportedVersion {
		return errors.Wrapf(ErrUnsupportedVersion, "version %s", info.Version)
	}
	if len(info.Owners) != supportedOwnerCount || info.Threshold != supportedThreshold {
		return errors.Wrapf(ErrUnsupportedConfiguration, "%d owners with threshold %d", len(info.Owners), info.Threshold)
	}
	if !info.HasOwner(recovery.Primary) || !info.HasOwner(recovery.Secondary) {
		return ErrRecoveryPhraseMismatch
	}

	return nil
}

func (m *Migrator) confirmAll(prompts ...string) error {
	for _, prompt := range prompts {
		if err := m.prompter.Confirm(prompt); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func explorerLink(params Params, txHash common.Hash) string {
	if params.ExplorerURL != "" {
		return etherscan.RenderLinkWithBase(params.ExplorerURL, txHash)
	}
	return etherscan.RenderLink(params.Network, txHash)
}
