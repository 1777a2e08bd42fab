// Package tx computes the EIP-712 digest a Safe owner signs to approve a
// transaction. Buffers are laid out by hand at fixed offsets.
package tx

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/crypto/hash"
	"github/chapool/safe-migrate/internal/safe"
	"github/chapool/safe-migrate/internal/safe/data"
	"github/chapool/safe-migrate/internal/wallet/secret"
	"github/chapool/safe-migrate/internal/wallet/signer"
)

// EIP-712 type strings of a v1.1.1 Safe. The domain has no chain id.
const (
	DomainType = "EIP712Domain(address verifyingContract)"
	SafeTxType = "SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)"
)

// Byte offsets into the domain, struct and digest buffers.
const (
	domainLength           = 64
	domainTypeHashOffset   = 0
	domainContractOffset   = 44
	domainContractEnd      = 64
	structLength           = 352
	structTypeHashOffset   = 0
	structToOffset         = 44
	structValueOffset      = 80
	structDataHashOffset   = 96
	structOperationOffset  = 159
	structSafeTxGasOffset  = 176
	structBaseGasOffset    = 208
	structGasPriceOffset   = 240
	structGasTokenOffset   = 268
	structRefundOffset     = 300
	structNonceOffset      = 344
	quantityWidth          = 16
	digestLength           = 66
	digestDomainOffset     = 2
	digestStructHashOffset = 34
)

// Keccak-256 type hashes of DomainType and SafeTxType.
var (
	DomainTypeHash = hash.Keccak256String(DomainType)
	SafeTxTypeHash = hash.Keccak256String(SafeTxType)
)

// ErrUnsupportedOperation is returned for any operation other than a call.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Transaction is a pending Safe transaction. Absent gas token and refund
// receiver are hashed as the zero address.
type Transaction struct {
	To             common.Address
	Value          data.Quantity
	Data           []byte
	Operation      safe.Operation
	SafeTxGas      data.Quantity
	BaseGas        data.Quantity
	GasPrice       data.Quantity
	GasToken       *common.Address
	RefundReceiver *common.Address
	Nonce          uint64
}

// Validate checks the fields the digest cannot represent.
func (t *Transaction) Validate() error {
	if !t.Operation.Valid() {
		return errors.Wrap(ErrUnsupportedOperation, t.Operation.String())
	}
	return nil
}

// DomainSeparator returns the EIP-712 domain separator of the Safe at
// verifyingContract. The domain has no chain id.
func DomainSeparator(verifyingContract common.Address) common.Hash {
	var buf [domainLength]byte

	copy(buf[domainTypeHashOffset:], DomainTypeHash[:])
	copy(buf[domainContractOffset:domainContractEnd], verifyingContract[:])

	return hash.Keccak256(buf[:])
}

// StructHash returns the EIP-712 hash of the SafeTx struct.
func (t *Transaction) StructHash() common.Hash {
	var buf [structLength]byte

	copy(buf[structTypeHashOffset:], SafeTxTypeHash[:])
	copy(buf[structToOffset:], t.To[:])
	putQuantity(buf[structValueOffset:], t.Value)

	dataHash := hash.Keccak256(t.Data)
	copy(buf[structDataHashOffset:], dataHash[:])

	buf[structOperationOffset] = byte(t.Operation)
	putQuantity(buf[structSafeTxGasOffset:], t.SafeTxGas)
	putQuantity(buf[structBaseGasOffset:], t.BaseGas)
	putQuantity(buf[structGasPriceOffset:], t.GasPrice)

	putOptionalAddress(buf[structGasTokenOffset:], t.GasToken)
	putOptionalAddress(buf[structRefundOffset:], t.RefundReceiver)

	binary.BigEndian.PutUint64(buf[structNonceOffset:], t.Nonce)

	return hash.Keccak256(buf[:])
}

// Hash returns the digest owners of safeAddress sign to approve t.
func (t *Transaction) Hash(safeAddress common.Address) common.Hash {
	var buf [digestLength]byte

	buf[0] = 0x19
	buf[1] = 0x01

	domain := DomainSeparator(safeAddress)
	copy(buf[digestDomainOffset:], domain[:])

	structHash := t.StructHash()
	copy(buf[digestStructHashOffset:], structHash[:])

	return hash.Keccak256(buf[:])
}

// Signed attaches signatures to t for submission to the relay.
func (t *Transaction) Signed(safeAddress common.Address, signatures ...signer.Signature) *data.SignedTransaction {
	return &data.SignedTransaction{
		Safe:           safeAddress,
		To:             t.To,
		Value:          t.Value,
		Data:           append([]byte(nil), t.Data...),
		Operation:      t.Operation,
		GasToken:       t.GasToken,
		SafeTxGas:      t.SafeTxGas,
		BaseGas:        t.BaseGas,
		GasPrice:       t.GasPrice,
		RefundReceiver: t.RefundReceiver,
		Nonce:          t.Nonce,
		Signatures:     signatures,
	}
}

// Sign hashes t for safeAddress and signs the digest with key.
func (t *Transaction) Sign(safeAddress common.Address, key *secret.PrivateKey) (*data.SignedTransaction, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	signature, err := signer.Sign(t.Hash(safeAddress), key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign safe transaction")
	}

	return t.Signed(safeAddress, signature), nil
}

// putQuantity writes q as 16 big-endian bytes at the start of dst.
func putQuantity(dst []byte, q data.Quantity) {
	word := q.Int().Bytes32()
	copy(dst[:quantityWidth], word[32-quantityWidth:])
}

func putOptionalAddress(dst []byte, addr *common.Address) {
	if addr == nil {
		return
	}
	copy(dst[:common.AddressLength], addr[:])
}
