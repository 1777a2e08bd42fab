package abi_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/safe-migrate/internal/crypto/hash"
	"github/chapool/safe-migrate/internal/safe/abi"
)

const ownerManagerABI = `[{
	"type": "function",
	"name": "addOwnerWithThreshold",
	"inputs": [
		{"name": "owner", "type": "address"},
		{"name": "_threshold", "type": "uint256"}
	],
	"outputs": []
}]`

func TestSelectorMatchesSignature(t *testing.T) {
	digest := hash.Keccak256String(abi.AddOwnerWithThresholdSignature)
	assert.Equal(t, digest[:4], abi.AddOwnerWithThresholdSelector[:])
}

func TestAddOwnerWithThreshold(t *testing.T) {
	owner := common.BytesToAddress(bytes.Repeat([]byte{0xee}, 20))

	data := abi.AddOwnerWithThreshold(owner, 0x42)
	require.Len(t, data, 68)

	expected := common.FromHex(
		"0x0d582f13" +
			"000000000000000000000000eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee" +
			"0000000000000000000000000000000000000000000000000000000000000042",
	)
	assert.Equal(t, expected, data)
}

func TestAddOwnerWithThresholdBigEndian(t *testing.T) {
	data := abi.AddOwnerWithThreshold(common.Address{}, 0x01020304)

	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data[64:68])
	assert.Equal(t, make([]byte, 60), data[4:64])
}

func TestAddOwnerWithThresholdMatchesGethABI(t *testing.T) {
	parsed, err := gethabi.JSON(strings.NewReader(ownerManagerABI))
	require.NoError(t, err)

	owners := []common.Address{
		{},
		common.HexToAddress("0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"),
		common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff"),
	}
	thresholds := []uint32{0, 1, 2, 0xffffffff}

	for _, owner := range owners {
		for _, threshold := range thresholds {
			expected, err := parsed.Pack("addOwnerWithThreshold", owner, new(big.Int).SetUint64(uint64(threshold)))
			require.NoError(t, err)

			assert.Equal(t, expected, abi.AddOwnerWithThreshold(owner, threshold), "owner %s threshold %d", owner.Hex(), threshold)
		}
	}
}

func TestAddOwnerWithThresholdFreshBuffer(t *testing.T) {
	owner := common.HexToAddress("0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b")

	first := abi.AddOwnerWithThreshold(owner, 1)
	first[0] = 0xff

	assert.Equal(t, byte(0x0d), abi.AddOwnerWithThreshold(owner, 1)[0])
}

func FuzzAddOwnerWithThreshold(f *testing.F) {
	f.Add(make([]byte, 20), uint32(1))
	f.Add(bytes.Repeat([]byte{0xee}, 20), uint32(0x42))

	f.Fuzz(func(t *testing.T, b []byte, threshold uint32) {
		if len(b) < 20 {
			return
		}
		owner := common.BytesToAddress(b[:20])

		data := abi.AddOwnerWithThreshold(owner, threshold)
		require.Len(t, data, abi.AddOwnerWithThresholdLength)
		require.Equal(t, abi.AddOwnerWithThresholdSelector[:], data[:4])
		require.Equal(t, owner.Bytes(), data[16:36])
		require.Equal(t, new(big.Int).SetUint64(uint64(threshold)), new(big.Int).SetBytes(data[36:68]))
	})
}
