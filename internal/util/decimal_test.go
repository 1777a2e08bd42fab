package util_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/safe-migrate/internal/util"
)

func TestBigEndianToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"nil", nil, "0"},
		{"empty", []byte{}, "0"},
		{"single zero", []byte{0x00}, "0"},
		{"wide zero", make([]byte, 32), "0"},
		{"one", []byte{0x01}, "1"},
		{"byte max", []byte{0xff}, "255"},
		{"carry into new digit", []byte{0x0a}, "10"},
		{"two bytes", []byte{0x13, 0x37}, "4919"},
		{"leading zeros ignored", []byte{0x00, 0x00, 0x13, 0x37}, "4919"},
		{"uint64 max", common.FromHex("0xffffffffffffffff"), "18446744073709551615"},
		{
			"word",
			common.FromHex("0x4219012af844056582bc69399c238dd2089815a4164d46b9c43ce315852c5aee"),
			"29896827243324578634929412110615083579682215894261272964879659419979876162286",
		},
		{
			"word with leading zero byte",
			common.FromHex("0x004219012af844056582bc69399c238dd2089815a4164d46b9c43ce315852c5aee"),
			"29896827243324578634929412110615083579682215894261272964879659419979876162286",
		},
		{
			"uint256 max",
			common.FromHex("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
			"115792089237316195423570985008687907853269984665640564039457584007913129639935",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, util.BigEndianToDecimal(tt.in))
		})
	}
}

func TestBigEndianToDecimalDoesNotMutateInput(t *testing.T) {
	in := []byte{0x13, 0x37}
	_ = util.BigEndianToDecimal(in)
	assert.Equal(t, []byte{0x13, 0x37}, in)
}

func TestBigEndianToDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{
		"1",
		"9",
		"100",
		"340282366920938463463374607431768211455",
		"18446744073709551616",
	} {
		n, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)

		assert.Equal(t, s, util.BigEndianToDecimal(n.Bytes()))
	}
}

func FuzzBigEndianToDecimal(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x01})
	f.Add([]byte{0x13, 0x37})
	f.Add(common.FromHex("0x4219012af844056582bc69399c238dd2089815a4164d46b9c43ce315852c5aee"))

	f.Fuzz(func(t *testing.T, b []byte) {
		got := util.BigEndianToDecimal(b)
		require.Equal(t, new(big.Int).SetBytes(b).String(), got)

		if got != "0" {
			require.NotEqual(t, byte('0'), got[0])
		}
	})
}
