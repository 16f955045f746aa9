package math

import (
	"fmt"

	"github.com/holiman/uint256"
)

// ModPow256 is the fixed-width counterpart of ModPow for moduli below 2^256.
// It uses plain square-and-multiply over the bits of exponent.
func ModPow256(base *uint256.Int, exponent uint64, modulus *uint256.Int) (*uint256.Int, error) {
	if modulus.IsZero() {
		return nil, ErrNonPositiveModulus
	}
	var (
		result = new(uint256.Int).Mod(uint256.NewInt(1), modulus)
		sq     = new(uint256.Int).Mod(base, modulus)
	)
	for e := exponent; e > 0; e >>= 1 {
		if e&1 == 1 {
			result.MulMod(result, sq, modulus)
		}
		if e > 1 {
			sq.MulMod(sq, sq, modulus)
		}
	}
	return result, nil
}

// ModInverse256 is the fixed-width counterpart of ModInverse. The Bezout
// coefficient is tracked modulo the modulus so no signed arithmetic is needed.
func ModInverse256(value, modulus *uint256.Int) (*uint256.Int, error) {
	if modulus.IsZero() {
		return nil, ErrNonPositiveModulus
	}
	var (
		r0 = new(uint256.Int).Mod(value, modulus)
		r1 = new(uint256.Int).Set(modulus)
		s0 = new(uint256.Int).Mod(uint256.NewInt(1), modulus)
		s1 = new(uint256.Int)
		q  = new(uint256.Int)
		t  = new(uint256.Int)
	)
	// Invariant: s_i * value ≡ r_i (mod modulus).
	for !r1.IsZero() {
		q.Div(r0, r1)

		t.Mul(q, r1)
		t.Sub(r0, t)
		r0, r1 = r1, r0
		r1.Set(t)

		t.MulMod(q, s1, modulus)
		subMod256(t, s0, t, modulus)
		s0, s1 = s1, s0
		s1.Set(t)
	}
	if !r0.Eq(uint256.NewInt(1)) {
		return nil, fmt.Errorf("%w: gcd(%v, %v) = %v", ErrInvalidInverse, value.ToBig(), modulus.ToBig(), r0.ToBig())
	}
	return s0, nil
}

// subMod256 sets z = x - y mod m for x, y < m.
func subMod256(z, x, y, m *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		gap := new(uint256.Int).Sub(m, y)
		return z.Add(x, gap)
	}
	return z.Sub(x, y)
}
