// Package abi lays out the single Safe owner-manager call the migration needs.
// Offsets are fixed by the Solidity ABI for addOwnerWithThreshold(address,uint256).
package abi

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// AddOwnerWithThresholdSignature is hashed to form the call's selector.
	AddOwnerWithThresholdSignature = "addOwnerWithThreshold(address,uint256)"

	// AddOwnerWithThresholdLength is the encoded call size: selector plus two words.
	AddOwnerWithThresholdLength = 68

	selectorOffset  = 0
	ownerOffset     = 16
	thresholdOffset = 64
)

// AddOwnerWithThresholdSelector is the first four bytes of
// keccak256(AddOwnerWithThresholdSignature).
var AddOwnerWithThresholdSelector = [4]byte{0x0d, 0x58, 0x2f, 0x13}

// AddOwnerWithThreshold returns call data for
// addOwnerWithThreshold(owner, threshold). The address is right-aligned in
// the first 32-byte word and the threshold is big-endian in the last four
// bytes of the second word.
func AddOwnerWithThreshold(owner common.Address, threshold uint32) []byte {
	buf := make([]byte, AddOwnerWithThresholdLength)

	copy(buf[selectorOffset:], AddOwnerWithThresholdSelector[:])
	copy(buf[ownerOffset:ownerOffset+common.AddressLength], owner[:])
	binary.BigEndian.PutUint32(buf[thresholdOffset:], threshold)

	return buf
}
