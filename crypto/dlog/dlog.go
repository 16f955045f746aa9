// Package dlog computes bounded discrete logarithms in Z*_p with the
// baby-step giant-step method.
package dlog

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

var big1 = big.NewInt(1)

// maxTableHint caps the initial map allocation; larger tables grow on demand.
const maxTableHint = 1 << 24

// Result describes the outcome of a single search.
type Result struct {
	X     *big.Int // g^X ≡ h (mod p), nil unless Found
	Found bool

	// Matched reports whether a giant step hit the table at all. A match
	// with a zero index is only accepted with Config.AcceptZeroIndex.
	Matched   bool
	GiantStep uint64 // x0 of the first match
	BabyStep  uint64 // x1 of the first match

	Bound      uint64
	TableSize  int
	Collisions uint64 // baby steps that overwrote an earlier table entry
	Backend    Backend
}

// Solver runs baby-step giant-step searches with a fixed configuration. A
// Solver holds no state between calls. It may be shared between goroutines
// only if its Tracker is nil or safe for concurrent use, since every Solve
// call reports to the same Tracker.
type Solver struct {
	config Config
}

// New creates a solver from the given configuration.
func New(config Config) (*Solver, error) {
	conf, err := config.sanitize()
	if err != nil {
		return nil, err
	}
	return &Solver{config: conf}, nil
}

// Config returns the sanitized configuration of the solver.
func (s *Solver) Config() Config {
	return s.config
}

// DiscreteLog finds x in [0, bound²) with g^x ≡ h (mod p) using the default
// configuration. A nil bound selects DefaultBound. It returns (x, true, nil)
// on success, (nil, false, nil) if no solution was found in range, or
// (nil, false, err) for unusable parameters.
func DiscreteLog(p, g, h, bound *big.Int) (*big.Int, bool, error) {
	config := DefaultConfig
	if bound != nil {
		if bound.Sign() <= 0 {
			return nil, false, ErrInvalidBound
		}
		if !bound.IsUint64() {
			return nil, false, ErrBoundTooLarge
		}
		config.Bound = bound.Uint64()
	}
	s, err := New(config)
	if err != nil {
		return nil, false, err
	}
	res, err := s.Solve(context.Background(), p, g, h)
	if err != nil {
		return nil, false, err
	}
	return res.X, res.Found, nil
}

// Solve searches for x in [0, B*B) with g^x ≡ h (mod p). Primality of p is
// assumed, not checked. The context is polled between loop iterations.
func (s *Solver) Solve(ctx context.Context, p, g, h *big.Int) (*Result, error) {
	if p == nil || g == nil || h == nil {
		return nil, ErrMissingInput
	}
	if p.Cmp(big1) <= 0 {
		return nil, ErrInvalidModulus
	}
	if g.Sign() < 0 || h.Sign() < 0 {
		return nil, ErrNegativeInput
	}
	backend, err := s.backendFor(p)
	if err != nil {
		return nil, err
	}
	var (
		gr = new(big.Int).Mod(g, p)
		hr = new(big.Int).Mod(h, p)
	)
	log.Debug("Starting discrete log search", "bits", p.BitLen(), "bound", s.config.Bound, "backend", backend)

	var res *Result
	switch backend {
	case BackendU256:
		p256, _ := uint256.FromBig(p)
		g256, _ := uint256.FromBig(gr)
		h256, _ := uint256.FromBig(hr)
		res, err = search[*uint256.Int, uint256.Int](ctx, s.config, u256Group{p: p256}, g256, h256)
	default:
		res, err = search[*big.Int, string](ctx, s.config, bigGroup{p: p}, gr, hr)
	}
	if err != nil {
		return nil, err
	}
	res.Backend = backend
	return res, nil
}

func (s *Solver) backendFor(p *big.Int) (Backend, error) {
	fits := p.BitLen() <= 256
	switch s.config.Backend {
	case BackendBig:
		return BackendBig, nil
	case BackendU256:
		if !fits {
			return "", fmt.Errorf("%w: %s needs %d bits", ErrBackendUnsupported, BackendU256, p.BitLen())
		}
		return BackendU256, nil
	default:
		if fits {
			return BackendU256, nil
		}
		return BackendBig, nil
	}
}

// search runs the two phases. The baby-step table maps h·g^-x1 to x1 and is
// discarded when the call returns.
func search[E any, K comparable](ctx context.Context, config Config, grp group[E, K], g, h E) (*Result, error) {
	var (
		bound = config.Bound
		res   = &Result{Bound: bound}
		m     = newMeter(ctx, config.Tracker, config.CheckInterval)
	)
	hint := bound
	if hint > maxTableHint {
		hint = maxTableHint
	}
	table := make(map[K]uint64, hint)

	log.Debug("Calculating l-value table", "entries", bound)
	m.begin(PhaseBabySteps, bound)
	for x1 := uint64(0); x1 < bound; x1++ {
		if err := m.tick(x1); err != nil {
			return nil, err
		}
		gx1, err := grp.pow(g, x1)
		if err != nil {
			return nil, fmt.Errorf("baby step %d: %w", x1, err)
		}
		inv, err := grp.inverse(gx1)
		if err != nil {
			return nil, fmt.Errorf("baby step %d: %w", x1, err)
		}
		k := grp.key(grp.mul(h, inv))
		if _, ok := table[k]; ok {
			res.Collisions++
		}
		// Last write wins on collision.
		table[k] = x1
	}
	m.finish(bound)
	res.TableSize = len(table)
	if res.Collisions > 0 {
		log.Warn("Baby-step table collisions, base is not a generator of a large enough subgroup", "collisions", res.Collisions)
	}

	log.Debug("Looking up r-value in l-value table", "steps", bound)
	gB, err := grp.pow(g, bound)
	if err != nil {
		return nil, err
	}
	m.begin(PhaseGiantSteps, bound)
	var x0 uint64
	for ; x0 < bound; x0++ {
		if err := m.tick(x0); err != nil {
			return nil, err
		}
		r, err := grp.pow(gB, x0)
		if err != nil {
			return nil, fmt.Errorf("giant step %d: %w", x0, err)
		}
		if x1, ok := table[grp.key(r)]; ok {
			res.Matched, res.GiantStep, res.BabyStep = true, x0, x1
			log.Debug("Found", "x0", x0, "x1", x1)
			break
		}
	}
	m.finish(x0)

	if !res.Matched {
		return res, nil
	}
	if !config.AcceptZeroIndex && (res.GiantStep == 0 || res.BabyStep == 0) {
		log.Debug("Discarding match with zero index", "x0", res.GiantStep, "x1", res.BabyStep)
		return res, nil
	}
	res.Found = true
	res.X = new(big.Int).SetUint64(res.GiantStep*bound + res.BabyStep)
	return res, nil
}

// meter polls the context and feeds the tracker every interval iterations.
type meter struct {
	ctx      context.Context
	tracker  Tracker
	interval uint64
	reported uint64
}

func newMeter(ctx context.Context, tracker Tracker, interval uint64) *meter {
	if tracker == nil {
		tracker = nopTracker{}
	}
	return &meter{ctx: ctx, tracker: tracker, interval: interval}
}

func (m *meter) begin(phase Phase, total uint64) {
	m.reported = 0
	m.tracker.Begin(phase, total)
}

func (m *meter) tick(done uint64) error {
	if done%m.interval != 0 {
		return nil
	}
	if err := m.ctx.Err(); err != nil {
		return err
	}
	if done > m.reported {
		m.tracker.Advance(done - m.reported)
		m.reported = done
	}
	return nil
}

func (m *meter) finish(done uint64) {
	if done > m.reported {
		m.tracker.Advance(done - m.reported)
		m.reported = done
	}
	m.tracker.Finish()
}
