// Package math provides modular arithmetic helpers for the discrete log solver.
package math

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrNonPositiveModulus = errors.New("modulus must be positive")
	ErrNegativeExponent   = errors.New("exponent must be non-negative")
	ErrInvalidInverse     = errors.New("value has no inverse modulo modulus")
)

var big1 = big.NewInt(1)

// ModPow returns base^exponent mod modulus as a fresh integer in [0, modulus).
// Negative bases are reduced first; the inputs are never modified.
func ModPow(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, ErrNonPositiveModulus
	}
	if exponent.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	b := new(big.Int).Mod(base, modulus)
	return b.Exp(b, exponent, modulus), nil
}

// ModInverse returns v such that value*v ≡ 1 (mod modulus), computed with the
// extended Euclidean algorithm. It fails with ErrInvalidInverse whenever
// gcd(value, modulus) != 1, which includes value ≡ 0.
func ModInverse(value, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, ErrNonPositiveModulus
	}
	var (
		v   = new(big.Int).Mod(value, modulus)
		x   = new(big.Int)
		gcd = new(big.Int).GCD(x, nil, v, modulus)
	)
	if gcd.Cmp(big1) != 0 {
		return nil, fmt.Errorf("%w: gcd(%v, %v) = %v", ErrInvalidInverse, value, modulus, gcd)
	}
	// Bezout coefficient may be negative
	return x.Mod(x, modulus), nil
}
