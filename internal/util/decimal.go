package util

// BigEndianToDecimal renders an unsigned big-endian integer of any width as a
// base-10 string without leading zeros. Empty and all-zero inputs give "0".
//
// Bits are consumed from the most significant end; for each bit the running
// decimal digit array is doubled and the bit added, carrying through every
// digit. Digits are kept least significant first.
func BigEndianToDecimal(b []byte) string {
	// Each input byte adds at most log10(256) < 3 decimal digits.
	digits := make([]byte, 0, len(b)*3+1)

	for _, octet := range b {
		for bit := 7; bit >= 0; bit-- {
			carry := (octet >> uint(bit)) & 1

			for i := range digits {
				d := digits[i]*2 + carry
				if d >= 10 {
					digits[i] = d - 10
					carry = 1
				} else {
					digits[i] = d
					carry = 0
				}
			}

			if carry != 0 {
				digits = append(digits, carry)
			}
		}
	}

	if len(digits) == 0 {
		return "0"
	}

	out := make([]byte, len(digits))
	for i, d := range digits {
		out[len(digits)-1-i] = '0' + d
	}

	return string(out)
}
