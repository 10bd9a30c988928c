package crypto

import "math/bits"

// mulMod returns a*b mod m using a full 128-bit product. A zero m stands
// for 2^64, so the product simply wraps.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if m == 0 {
		return lo
	}
	return bits.Rem64(hi, lo, m)
}

// ModPow computes base^exp mod m by square-and-multiply.
// An exponent of zero yields 1 regardless of the modulus, and a zero
// modulus means arithmetic mod 2^64.
func ModPow(base, exp, m uint64) uint64 {
	result := uint64(1)
	if m != 0 {
		base %= m
	}
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		base = mulMod(base, base, m)
		exp >>= 1
	}
	return result
}
