// Package data holds the JSON shapes exchanged with the Safe relay service.
package data

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github/chapool/safe-migrate/internal/safe"
	"github/chapool/safe-migrate/internal/util"
	"github/chapool/safe-migrate/internal/wallet/signer"
)

// SafeInfo is the relay's view of a deployed Safe.
type SafeInfo struct {
	Address    common.Address   `json:"address"`
	MasterCopy common.Address   `json:"masterCopy"`
	Nonce      uint64           `json:"nonce"`
	Threshold  int              `json:"threshold"`
	Owners     []common.Address `json:"owners"`
	Version    string           `json:"version"`
}

// HasOwner reports whether owner is in the owner set.
func (s *SafeInfo) HasOwner(owner common.Address) bool {
	for _, o := range s.Owners {
		if o == owner {
			return true
		}
	}
	return false
}

// EstimateParameters is the body of a transaction estimate request.
type EstimateParameters struct {
	Safe      common.Address
	To        common.Address
	Value     Quantity
	Data      []byte
	Operation safe.Operation
	GasToken  *common.Address
}

type estimateParametersJSON struct {
	Safe      string         `json:"safe"`
	To        string         `json:"to"`
	Value     Quantity       `json:"value"`
	Data      string         `json:"data"`
	Operation safe.Operation `json:"operation"`
	GasToken  *string        `json:"gasToken,omitempty"`
}

// MarshalJSON renders the estimate request with checksummed addresses and
// hex-encoded data.
func (p EstimateParameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(estimateParametersJSON{
		Safe:      p.Safe.Hex(),
		To:        p.To.Hex(),
		Value:     p.Value,
		Data:      hexutil.Encode(p.Data),
		Operation: p.Operation,
		GasToken:  checksummed(p.GasToken),
	})
}

// Estimate is the relay's gas estimate for a Safe transaction.
type Estimate struct {
	SafeTxGas      Quantity        `json:"safeTxGas"`
	BaseGas        Quantity        `json:"baseGas"`
	GasPrice       Quantity        `json:"gasPrice"`
	LastUsedNonce  *uint64         `json:"lastUsedNonce"`
	GasToken       *common.Address `json:"gasToken"`
	RefundReceiver *common.Address `json:"refundReceiver"`
}

// NextNonce returns the nonce following the last one the relay saw used, or
// fallback when the Safe has not executed a transaction yet.
func (e *Estimate) NextNonce(fallback uint64) uint64 {
	if e.LastUsedNonce == nil {
		return fallback
	}
	return *e.LastUsedNonce + 1
}

// SignedTransaction is a fully populated Safe transaction with its owner
// signatures, ready to be relayed.
type SignedTransaction struct {
	Safe           common.Address
	To             common.Address
	Value          Quantity
	Data           []byte
	Operation      safe.Operation
	GasToken       *common.Address
	SafeTxGas      Quantity
	BaseGas        Quantity
	GasPrice       Quantity
	RefundReceiver *common.Address
	Nonce          uint64
	Signatures     []signer.Signature
}

type signedTransactionJSON struct {
	Safe           string          `json:"safe"`
	To             string          `json:"to"`
	Value          Quantity        `json:"value"`
	Data           string          `json:"data"`
	Operation      safe.Operation  `json:"operation"`
	GasToken       *string         `json:"gasToken"`
	SafeTxGas      Quantity        `json:"safeTxGas"`
	DataGas        Quantity        `json:"dataGas"`
	GasPrice       Quantity        `json:"gasPrice"`
	RefundReceiver *string         `json:"refundReceiver"`
	Nonce          uint64          `json:"nonce"`
	Signatures     []signatureJSON `json:"signatures"`
}

// signatureJSON carries r and s as base-10 strings; both exceed the range of
// a JSON number the relay accepts.
type signatureJSON struct {
	V uint8  `json:"v"`
	R string `json:"r"`
	S string `json:"s"`
}

// MarshalJSON renders the relay's wire format. Base gas travels under its
// legacy name dataGas.
func (t SignedTransaction) MarshalJSON() ([]byte, error) {
	signatures := make([]signatureJSON, 0, len(t.Signatures))
	for _, sig := range t.Signatures {
		signatures = append(signatures, signatureJSON{
			V: sig.V,
			R: util.BigEndianToDecimal(sig.R[:]),
			S: util.BigEndianToDecimal(sig.S[:]),
		})
	}

	return json.Marshal(signedTransactionJSON{
		Safe:           t.Safe.Hex(),
		To:             t.To.Hex(),
		Value:          t.Value,
		Data:           hexutil.Encode(t.Data),
		Operation:      t.Operation,
		GasToken:       checksummed(t.GasToken),
		SafeTxGas:      t.SafeTxGas,
		DataGas:        t.BaseGas,
		GasPrice:       t.GasPrice,
		RefundReceiver: checksummed(t.RefundReceiver),
		Nonce:          t.Nonce,
		Signatures:     signatures,
	})
}

// ExecutedTransaction is the relay's answer to a posted transaction.
type ExecutedTransaction struct {
	TransactionHash common.Hash `json:"transactionHash"`

	// Raw is the complete response body.
	Raw json.RawMessage `json:"-"`
}

func checksummed(addr *common.Address) *string {
	if addr == nil {
		return nil
	}
	s := addr.Hex()
	return &s
}
