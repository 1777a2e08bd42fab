package data_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/safe-migrate/internal/safe"
	"github/chapool/safe-migrate/internal/safe/data"
	"github/chapool/safe-migrate/internal/wallet/signer"
)

var (
	safeAddress  = common.HexToAddress("0x0b54478f3a29BfAD2b67a0d7Dbe23e8f61B1EbC6")
	ownerAddress = common.HexToAddress("0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1")
)

func TestSafeInfoUnmarshal(t *testing.T) {
	body := `{
		"address": "0x0b54478f3a29bfad2b67a0d7dbe23e8f61b1ebc6",
		"masterCopy": "0x34CfAC646f301356fAa8B21e94227e3583Fe3F5F",
		"nonce": 12,
		"threshold": 1,
		"owners": [
			"0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1",
			"0xffcf8fdee72ac11b5c542428b35eef5769c409f0",
			"0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"
		],
		"version": "1.1.1"
	}`

	var info data.SafeInfo
	require.NoError(t, json.Unmarshal([]byte(body), &info))

	assert.Equal(t, safeAddress, info.Address)
	assert.Equal(t, uint64(12), info.Nonce)
	assert.Equal(t, 1, info.Threshold)
	assert.Equal(t, "1.1.1", info.Version)
	require.Len(t, info.Owners, 3)
	assert.True(t, info.HasOwner(common.HexToAddress("0xFFcf8FDEE72ac11b5c542428B35EEF5769C409f0")))
	assert.False(t, info.HasOwner(safeAddress))
}

func TestEstimateParametersMarshal(t *testing.T) {
	params := data.EstimateParameters{
		Safe:      safeAddress,
		To:        safeAddress,
		Value:     data.NewQuantity(0),
		Data:      []byte{0x0d, 0x58, 0x2f, 0x13},
		Operation: safe.OperationCall,
	}

	b, err := json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"safe": "0x0b54478f3a29BfAD2b67a0d7Dbe23e8f61B1EbC6",
		"to": "0x0b54478f3a29BfAD2b67a0d7Dbe23e8f61B1EbC6",
		"value": "0",
		"data": "0x0d582f13",
		"operation": 0
	}`, string(b))

	gasToken := common.HexToAddress("0x0707070707070707070707070707070707070707")
	params.GasToken = &gasToken

	b, err = json.Marshal(params)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"gasToken":"0x0707070707070707070707070707070707070707"`)
}

func TestEstimateUnmarshal(t *testing.T) {
	body := `{
		"safeTxGas": "58048",
		"baseGas": "42904",
		"dataGas": "42904",
		"operationalGas": "0",
		"gasPrice": "340282366920938463463374607431768211455",
		"lastUsedNonce": 3,
		"gasToken": "0x0000000000000000000000000000000000000000",
		"refundReceiver": "0x07F455f30E862E13e3e3D960762cB11c4f744d52"
	}`

	var estimate data.Estimate
	require.NoError(t, json.Unmarshal([]byte(body), &estimate))

	assert.Equal(t, data.NewQuantity(58048), estimate.SafeTxGas)
	assert.Equal(t, data.NewQuantity(42904), estimate.BaseGas)
	assert.Equal(t, "340282366920938463463374607431768211455", estimate.GasPrice.String())
	assert.Equal(t, uint64(4), estimate.NextNonce(0))
	require.NotNil(t, estimate.GasToken)
	assert.Equal(t, common.Address{}, *estimate.GasToken)
	require.NotNil(t, estimate.RefundReceiver)
	assert.Equal(t, common.HexToAddress("0x07F455f30E862E13e3e3D960762cB11c4f744d52"), *estimate.RefundReceiver)
}

func TestEstimateUnmarshalWithoutOptionals(t *testing.T) {
	var estimate data.Estimate
	require.NoError(t, json.Unmarshal([]byte(`{"safeTxGas":"1","baseGas":"2","gasPrice":"3","lastUsedNonce":null}`), &estimate))

	assert.Nil(t, estimate.LastUsedNonce)
	assert.Nil(t, estimate.GasToken)
	assert.Nil(t, estimate.RefundReceiver)
	assert.Equal(t, uint64(7), estimate.NextNonce(7))
}

func TestEstimateRejectsWideGas(t *testing.T) {
	var estimate data.Estimate
	err := json.Unmarshal([]byte(`{"safeTxGas":"340282366920938463463374607431768211456","baseGas":"0","gasPrice":"0"}`), &estimate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, data.ErrQuantityOverflow))
}

func TestQuantity(t *testing.T) {
	var q data.Quantity
	assert.True(t, q.IsZero())
	assert.Equal(t, "0", q.String())

	require.NoError(t, json.Unmarshal([]byte(`21000`), &q))
	assert.Equal(t, "21000", q.String())
	assert.Equal(t, uint256.NewInt(21000), q.Int())

	require.Error(t, json.Unmarshal([]byte(`"0x10"`), &q))
	require.Error(t, json.Unmarshal([]byte(`"-1"`), &q))
	require.Error(t, json.Unmarshal([]byte(`null`), &q))

	q, err := data.QuantityFromInt(nil)
	require.NoError(t, err)
	assert.True(t, q.IsZero())

	_, err = data.QuantityFromInt(new(uint256.Int).Lsh(uint256.NewInt(1), 128))
	assert.True(t, errors.Is(err, data.ErrQuantityOverflow))

	max128 := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	q, err = data.QuantityFromInt(max128)
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", q.String())
}

func TestSignedTransactionMarshal(t *testing.T) {
	var sig signer.Signature
	sig.V = 27
	copy(sig.R[:], common.FromHex("0x4219012af844056582bc69399c238dd2089815a4164d46b9c43ce315852c5aee"))
	sig.S[31] = 0x01

	signed := data.SignedTransaction{
		Safe:      safeAddress,
		To:        safeAddress,
		Value:     data.NewQuantity(0),
		Data:      []byte{0xde, 0xad, 0xbe, 0xef},
		Operation: safe.OperationCall,
		SafeTxGas: data.NewQuantity(58048),
		BaseGas:   data.NewQuantity(42904),
		GasPrice:  data.NewQuantity(1000000000),
		Nonce:     4,
		Signatures: []signer.Signature{
			sig,
		},
	}

	b, err := json.Marshal(signed)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"safe": "0x0b54478f3a29BfAD2b67a0d7Dbe23e8f61B1EbC6",
		"to": "0x0b54478f3a29BfAD2b67a0d7Dbe23e8f61B1EbC6",
		"value": "0",
		"data": "0xdeadbeef",
		"operation": 0,
		"gasToken": null,
		"safeTxGas": "58048",
		"dataGas": "42904",
		"gasPrice": "1000000000",
		"refundReceiver": null,
		"nonce": 4,
		"signatures": [{
			"v": 27,
			"r": "29896827243324578634929412110615083579682215894261272964879659419979876162286",
			"s": "1"
		}]
	}`, string(b))
}

func TestSignedTransactionMarshalAddresses(t *testing.T) {
	refund := ownerAddress
	gasToken := common.Address{}

	signed := data.SignedTransaction{
		Safe:           safeAddress,
		To:             ownerAddress,
		GasToken:       &gasToken,
		RefundReceiver: &refund,
	}

	b, err := json.Marshal(signed)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Equal(t, "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1", decoded["to"])
	assert.Equal(t, "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1", decoded["refundReceiver"])
	assert.Equal(t, "0x0000000000000000000000000000000000000000", decoded["gasToken"])
	assert.Equal(t, "0x", decoded["data"])
	assert.Equal(t, []any{}, decoded["signatures"])
}

func TestExecutedTransactionUnmarshal(t *testing.T) {
	var executed data.ExecutedTransaction
	require.NoError(t, json.Unmarshal([]byte(`{"transactionHash":"0x59485d05fff460e1687ea64c018781e440cbd8cb6a14c82d1ee2c7756fe4f7cb","txHash":"0x01"}`), &executed))

	assert.Equal(t, common.HexToHash("0x59485d05fff460e1687ea64c018781e440cbd8cb6a14c82d1ee2c7756fe4f7cb"), executed.TransactionHash)
}
