package dlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/log"
)

const (
	// DefaultBound is the table size used when none is configured; the
	// searched exponent range is then [0, 2^40).
	DefaultBound = 1 << 20

	// MaxBound keeps both table indices and x0*B+x1 inside uint64.
	MaxBound = 1 << 32

	// DefaultCheckInterval is the number of loop iterations between
	// cancellation checks and progress updates.
	DefaultCheckInterval = 4096
)

var (
	ErrInvalidModulus     = errors.New("dlog: modulus must be greater than 1")
	ErrNegativeInput      = errors.New("dlog: base and target must be non-negative")
	ErrMissingInput       = errors.New("dlog: modulus, base and target are required")
	ErrInvalidBound       = errors.New("dlog: bound must be positive")
	ErrBoundTooLarge      = fmt.Errorf("dlog: bound exceeds %d", uint64(MaxBound))
	ErrBackendUnsupported = errors.New("dlog: backend cannot represent the modulus")
)

// Backend selects the integer representation used by the search loops.
type Backend string

const (
	BackendAuto Backend = "auto"
	BackendBig  Backend = "big"  // math/big, any modulus size
	BackendU256 Backend = "u256" // holiman/uint256, modulus below 2^256
)

// ParseBackend converts a user supplied backend name.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "big", "bigint":
		return BackendBig, nil
	case "u256", "uint256":
		return BackendU256, nil
	default:
		return BackendAuto, fmt.Errorf("dlog: unknown backend %q", s)
	}
}

// Config contains the tunables of a Solver.
type Config struct {
	Bound   uint64  // table size B; exponents in [0, B*B) are searched
	Backend Backend `toml:",omitempty"`

	// AcceptZeroIndex also accepts matches where the giant or baby step
	// index is zero. Off by default: such matches are reported as not found.
	AcceptZeroIndex bool `toml:",omitempty"`

	CheckInterval uint64  `toml:",omitempty"`
	Tracker       Tracker `toml:"-"`
}

// DefaultConfig contains the default settings of the solver.
var DefaultConfig = Config{
	Bound:         DefaultBound,
	Backend:       BackendAuto,
	CheckInterval: DefaultCheckInterval,
}

// sanitize checks the provided user configuration and changes anything that's
// unreasonable or unworkable.
func (config *Config) sanitize() (Config, error) {
	conf := *config
	if conf.Bound == 0 {
		return conf, ErrInvalidBound
	}
	if conf.Bound > MaxBound {
		return conf, ErrBoundTooLarge
	}
	backend, err := ParseBackend(string(conf.Backend))
	if err != nil {
		return conf, err
	}
	conf.Backend = backend
	if conf.CheckInterval == 0 {
		log.Warn("Sanitizing invalid dlog check interval", "provided", conf.CheckInterval, "updated", DefaultCheckInterval)
		conf.CheckInterval = DefaultCheckInterval
	}
	return conf, nil
}
