package dlog

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/tos-network/bsgs/common/math"
)

// group is the arithmetic the search loops need from Z*_p. E is the element
// representation and K the comparable form used as a table key.
type group[E any, K comparable] interface {
	pow(base E, exp uint64) (E, error)
	inverse(v E) (E, error)
	mul(a, b E) E
	key(v E) K
}

// bigGroup works for any modulus. big.Int is not comparable, so table keys
// are the big-endian bytes of the reduced residue.
type bigGroup struct {
	p *big.Int
}

func (gr bigGroup) pow(base *big.Int, exp uint64) (*big.Int, error) {
	return math.ModPow(base, new(big.Int).SetUint64(exp), gr.p)
}

func (gr bigGroup) inverse(v *big.Int) (*big.Int, error) {
	return math.ModInverse(v, gr.p)
}

func (gr bigGroup) mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, gr.p)
}

func (gr bigGroup) key(v *big.Int) string {
	return string(v.Bytes())
}

// u256Group keeps every residue in four machine words and keys the table
// with the value itself.
type u256Group struct {
	p *uint256.Int
}

func (gr u256Group) pow(base *uint256.Int, exp uint64) (*uint256.Int, error) {
	return math.ModPow256(base, exp, gr.p)
}

func (gr u256Group) inverse(v *uint256.Int) (*uint256.Int, error) {
	return math.ModInverse256(v, gr.p)
}

func (gr u256Group) mul(a, b *uint256.Int) *uint256.Int {
	return new(uint256.Int).MulMod(a, b, gr.p)
}

func (gr u256Group) key(v *uint256.Int) uint256.Int {
	return *v
}
