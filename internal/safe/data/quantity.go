package data

import (
	"bytes"
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/util"
)

// MaxQuantityBits bounds value and gas quantities exchanged with the relay.
const MaxQuantityBits = 128

var ErrQuantityOverflow = errors.New("quantity exceeds 128 bits")

// Quantity is an unsigned integer carried on the wire as a base-10 string.
// The zero value is 0.
type Quantity struct {
	v uint256.Int
}

// NewQuantity returns a Quantity holding v.
func NewQuantity(v uint64) Quantity {
	var q Quantity
	q.v.SetUint64(v)
	return q
}

// QuantityFromInt copies v into a Quantity, rejecting values wider than
// MaxQuantityBits. A nil v is zero.
func QuantityFromInt(v *uint256.Int) (Quantity, error) {
	var q Quantity
	if v == nil {
		return q, nil
	}
	if v.BitLen() > MaxQuantityBits {
		return q, errors.Wrapf(ErrQuantityOverflow, "%d bits", v.BitLen())
	}
	q.v.Set(v)
	return q, nil
}

// Int returns a copy of the quantity as a uint256.Int.
func (q Quantity) Int() *uint256.Int {
	return new(uint256.Int).Set(&q.v)
}

// IsZero reports whether q is 0.
func (q Quantity) IsZero() bool {
	return q.v.IsZero()
}

func (q Quantity) String() string {
	return util.BigEndianToDecimal(q.v.Bytes())
}

// MarshalJSON encodes q as a decimal string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.String())
}

// UnmarshalJSON accepts a decimal string or a bare JSON number.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		return errors.Errorf("invalid quantity %s", b)
	}

	var v uint256.Int
	if err := v.SetFromDecimal(s); err != nil {
		return errors.Wrapf(err, "invalid quantity %s", b)
	}
	if v.BitLen() > MaxQuantityBits {
		return errors.Wrapf(ErrQuantityOverflow, "quantity %s", s)
	}

	q.v = v
	return nil
}
