// Package dlog is a differential fuzzer for the two search backends.
package dlog

import (
	"context"
	"fmt"
	"math/big"

	fuzz "github.com/google/gofuzz"
	"github.com/tos-network/bsgs/crypto/dlog"
)

var primes = []int64{3, 13, 1019, 65521, 2147483647}

func solver(backend dlog.Backend, bound uint64, acceptZero bool) *dlog.Solver {
	s, err := dlog.New(dlog.Config{
		Bound:           bound,
		Backend:         backend,
		AcceptZeroIndex: acceptZero,
		CheckInterval:   dlog.DefaultCheckInterval,
	})
	if err != nil {
		panic(err)
	}
	return s
}

func Fuzz(input []byte) int {
	var (
		fuzzer     = fuzz.NewFromGoFuzz(input)
		pIndex     uint8
		gRaw, hRaw uint64
		boundRaw   uint8
		acceptZero bool
	)
	fuzzer.Fuzz(&pIndex)
	fuzzer.Fuzz(&gRaw)
	fuzzer.Fuzz(&hRaw)
	fuzzer.Fuzz(&boundRaw)
	fuzzer.Fuzz(&acceptZero)

	p := big.NewInt(primes[int(pIndex)%len(primes)])
	g := new(big.Int).Mod(new(big.Int).SetUint64(gRaw), p)
	h := new(big.Int).Mod(new(big.Int).SetUint64(hRaw), p)
	if g.Sign() == 0 {
		return 0
	}
	bound := uint64(boundRaw) + 1

	resA, errA := solver(dlog.BackendBig, bound, acceptZero).Solve(context.Background(), p, g, h)
	resB, errB := solver(dlog.BackendU256, bound, acceptZero).Solve(context.Background(), p, g, h)
	if (errA == nil) != (errB == nil) {
		panic(fmt.Sprintf("error mismatch: big %v, u256 %v", errA, errB))
	}
	if errA != nil {
		return 0
	}
	if resA.Found != resB.Found || resA.Matched != resB.Matched ||
		resA.GiantStep != resB.GiantStep || resA.BabyStep != resB.BabyStep ||
		resA.TableSize != resB.TableSize || resA.Collisions != resB.Collisions {
		panic(fmt.Sprintf("p=%v g=%v h=%v B=%d: big %+v, u256 %+v", p, g, h, bound, resA, resB))
	}
	if !resA.Found {
		return 0
	}
	if new(big.Int).Exp(g, resA.X, p).Cmp(h) != 0 {
		panic(fmt.Sprintf("p=%v g=%v h=%v B=%d: %v is not a solution", p, g, h, bound, resA.X))
	}
	return 1
}
