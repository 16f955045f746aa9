package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"time"

	"github.com/tos-network/bsgs/cmd/utils"
	"github.com/tos-network/bsgs/crypto/dlog"
)

type result struct {
	name    string
	backend dlog.Backend
	solveMS float64
	stepNS  float64
	solves  float64
}

type group struct {
	name string
	p, g *big.Int
}

func mustInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		utils.Fatalf("Invalid benchmark integer %q", s)
	}
	return n
}

var groups = []group{
	{"mersenne61", mustInt("0x1fffffffffffffff"), big.NewInt(3)},
	{"mersenne127", mustInt("0x7fffffffffffffffffffffffffffffff"), big.NewInt(3)},
	{"curve25519", mustInt("0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed"), big.NewInt(2)},
	{"sample512",
		mustInt("13407807929942597099574024998205846127479365820592393377723561443721764030073546976801874298166903427690031858186486050853753882811946569946433649006084171"),
		mustInt("11717829880366207009516117596335367088558084999998952205599979459063929499736583746670572176471460312928594829675428279466566527115212748467589894601965568")},
}

func bench(n int, fn func() error) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < n; i++ {
		if err := fn(); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

func main() {
	bound := flag.Uint64("bound", 1<<12, "baby-step table size")
	runs := flag.Int("runs", 3, "number of solves per group and backend")
	flag.Parse()

	if err := run(os.Stdout, *bound, *runs); err != nil {
		utils.Fatalf("Benchmark failed: %v", err)
	}
}

// run times a worst case search, where the match is on the last giant step,
// for every group and backend and prints the results to w.
func run(w io.Writer, bound uint64, runs int) error {
	if bound < 2 || bound > dlog.MaxBound || runs <= 0 {
		return fmt.Errorf("bound must be in [2, %d] and runs > 0", uint64(dlog.MaxBound))
	}
	x := new(big.Int).SetUint64((bound-1)*bound + 1)

	out := make([]result, 0, 2*len(groups))
	for _, grp := range groups {
		h := new(big.Int).Exp(grp.g, x, grp.p)
		for _, backend := range []dlog.Backend{dlog.BackendBig, dlog.BackendU256} {
			if backend == dlog.BackendU256 && grp.p.BitLen() > 256 {
				continue
			}
			solver, err := dlog.New(dlog.Config{Bound: bound, Backend: backend, CheckInterval: dlog.DefaultCheckInterval})
			if err != nil {
				return err
			}
			d, err := bench(runs, func() error {
				res, err := solver.Solve(context.Background(), grp.p, grp.g, h)
				if err != nil {
					return err
				}
				if !res.Found || new(big.Int).Exp(grp.g, res.X, grp.p).Cmp(h) != 0 {
					return fmt.Errorf("%s/%s: wrong result %v", grp.name, backend, res.X)
				}
				return nil
			})
			if err != nil {
				return err
			}
			out = append(out, result{
				name:    grp.name,
				backend: backend,
				solveMS: float64(d.Microseconds()) / 1000 / float64(runs),
				stepNS:  float64(d.Nanoseconds()) / float64(2*bound) / float64(runs),
				solves:  float64(runs) / d.Seconds(),
			})
		}
	}

	fmt.Fprintf(w, "Discrete log benchmark on this machine (bound=%d, runs=%d)\n", bound, runs)
	fmt.Fprintln(w, "- Worst case search; the match is found on the last giant step")
	fmt.Fprintf(w, "%-12s %-8s %12s %10s %10s\n", "Group", "Backend", "solve ms", "step ns", "solves/s")
	for _, r := range out {
		fmt.Fprintf(w, "%-12s %-8s %12.2f %10.0f %10.2f\n", r.name, r.backend, r.solveMS, r.stepNS, r.solves)
	}

	ranked := append([]result(nil), out...)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].stepNS < ranked[j].stepNS })
	fmt.Fprint(w, "\nStep speed rank (fast -> slow): ")
	for i, r := range ranked {
		if i > 0 {
			fmt.Fprint(w, " > ")
		}
		fmt.Fprintf(w, "%s/%s", r.name, r.backend)
	}
	fmt.Fprintln(w)
	return nil
}
