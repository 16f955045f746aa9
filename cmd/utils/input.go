package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/urfave/cli/v2"
)

var big2 = big.NewInt(2)

// InputError reports malformed or out-of-range user input. Commands map it to
// a dedicated exit status so scripts can tell it apart from search failures.
type InputError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Value, e.Reason)
}

// IsInputError reports whether err wraps an *InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// ParseInteger parses a non-negative integer of arbitrary size. Decimal is the
// default; a 0x prefix selects hexadecimal.
func ParseInteger(name, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &InputError{Name: name, Reason: "missing value"}
	}
	var (
		n  *big.Int
		ok bool
	)
	if hex := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"); hex != s {
		n, ok = new(big.Int).SetString(hex, 16)
	} else {
		n, ok = new(big.Int).SetString(s, 10)
	}
	if !ok {
		return nil, &InputError{Name: name, Value: s, Reason: "not an integer"}
	}
	if n.Sign() < 0 {
		return nil, &InputError{Name: name, Value: s, Reason: "must be non-negative"}
	}
	return n, nil
}

// ValidateGroup checks p > 2 and that g and h are residues in [0, p).
// Primality of p is not verified here.
func ValidateGroup(p, g, h *big.Int) error {
	if p.Cmp(big2) <= 0 {
		return &InputError{Name: "p", Value: p.String(), Reason: "modulus must be greater than 2"}
	}
	if g.Cmp(p) >= 0 {
		return &InputError{Name: "g", Value: g.String(), Reason: "must be smaller than p"}
	}
	if h.Cmp(p) >= 0 {
		return &InputError{Name: "h", Value: h.String(), Reason: "must be smaller than p"}
	}
	return nil
}

// GroupFromFlags reads p, g and h from the command line, falling back to the
// given defaults (typically from a config file) for flags that are not set.
func GroupFromFlags(ctx *cli.Context, defP, defG, defH string) (p, g, h *big.Int, err error) {
	pick := func(flag *cli.StringFlag, def string) string {
		if ctx.IsSet(flag.Name) {
			return ctx.String(flag.Name)
		}
		return def
	}
	if p, err = ParseInteger("p", pick(ModulusFlag, defP)); err != nil {
		return nil, nil, nil, err
	}
	if g, err = ParseInteger("g", pick(BaseFlag, defG)); err != nil {
		return nil, nil, nil, err
	}
	if h, err = ParseInteger("h", pick(TargetFlag, defH)); err != nil {
		return nil, nil, nil, err
	}
	return p, g, h, ValidateGroup(p, g, h)
}
