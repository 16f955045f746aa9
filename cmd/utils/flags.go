// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// Package utils contains internal helper functions for bsgs commands.
package utils

import (
	"fmt"

	"github.com/tos-network/bsgs/crypto/dlog"
	"github.com/tos-network/bsgs/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Group parameters
	ModulusFlag = &cli.StringFlag{
		Name:     "p",
		Usage:    "Prime modulus p (decimal, or 0x-prefixed hex)",
		Category: flags.GroupCategory,
	}
	BaseFlag = &cli.StringFlag{
		Name:     "g",
		Usage:    "Base g in [0, p)",
		Category: flags.GroupCategory,
	}
	TargetFlag = &cli.StringFlag{
		Name:     "h",
		Usage:    "Target h in [0, p); the search looks for x with g^x = h mod p",
		Category: flags.GroupCategory,
	}
	CheckPrimeFlag = &cli.BoolFlag{
		Name:     "check-prime",
		Usage:    "Warn when p fails a probabilistic primality test",
		Category: flags.GroupCategory,
	}

	// Search settings
	BoundFlag = &cli.Uint64Flag{
		Name:     "bound",
		Aliases:  []string{"B"},
		Usage:    "Baby-step table size B; exponents in [0, B*B) are searched",
		Value:    dlog.DefaultConfig.Bound,
		Category: flags.SearchCategory,
	}
	BackendFlag = &cli.StringFlag{
		Name:     "backend",
		Usage:    "Integer backend for the search loops (auto|big|u256)",
		Value:    string(dlog.DefaultConfig.Backend),
		Category: flags.SearchCategory,
	}
	AcceptZeroIndexFlag = &cli.BoolFlag{
		Name:     "accept-zero-index",
		Usage:    "Also accept matches whose giant or baby step index is zero (x < B or B | x)",
		Category: flags.SearchCategory,
	}
	CheckIntervalFlag = &cli.Uint64Flag{
		Name:     "check-interval",
		Usage:    "Loop iterations between cancellation checks and progress updates",
		Value:    dlog.DefaultConfig.CheckInterval,
		Category: flags.SearchCategory,
	}
	TimeoutFlag = &cli.DurationFlag{
		Name:     "timeout",
		Usage:    "Abort the search after this long (0 = no limit)",
		Category: flags.SearchCategory,
	}
	ConfigFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.SearchCategory,
	}

	// Output
	JSONFlag = &cli.BoolFlag{
		Name:     "json",
		Usage:    "Output JSON instead of human-readable format",
		Category: flags.OutputCategory,
	}
	StatsFlag = &cli.BoolFlag{
		Name:     "stats",
		Usage:    "Print a summary table of the search",
		Category: flags.OutputCategory,
	}
	ProgressFlag = &cli.BoolFlag{
		Name:     "progress",
		Usage:    "Show progress bars on stderr while searching",
		Category: flags.OutputCategory,
	}
)

// GroupFlags are the flags carrying the group parameters.
var GroupFlags = []cli.Flag{ModulusFlag, BaseFlag, TargetFlag, CheckPrimeFlag}

// SearchFlags tune the solver.
var SearchFlags = []cli.Flag{BoundFlag, BackendFlag, AcceptZeroIndexFlag, CheckIntervalFlag, TimeoutFlag, ConfigFileFlag}

// OutputFlags control how results are presented.
var OutputFlags = []cli.Flag{JSONFlag, StatsFlag, ProgressFlag}

// SetSolverConfig applies the search flags that were explicitly set on top of cfg.
func SetSolverConfig(ctx *cli.Context, cfg *dlog.Config) error {
	if ctx.IsSet(BoundFlag.Name) {
		cfg.Bound = ctx.Uint64(BoundFlag.Name)
	}
	if ctx.IsSet(BackendFlag.Name) {
		backend, err := dlog.ParseBackend(ctx.String(BackendFlag.Name))
		if err != nil {
			return &InputError{Name: "backend", Value: ctx.String(BackendFlag.Name), Reason: err.Error()}
		}
		cfg.Backend = backend
	}
	if ctx.IsSet(AcceptZeroIndexFlag.Name) {
		cfg.AcceptZeroIndex = ctx.Bool(AcceptZeroIndexFlag.Name)
	}
	if ctx.IsSet(CheckIntervalFlag.Name) {
		cfg.CheckInterval = ctx.Uint64(CheckIntervalFlag.Name)
	}
	if cfg.Bound == 0 {
		return &InputError{Name: "bound", Value: "0", Reason: "must be positive"}
	}
	if cfg.Bound > dlog.MaxBound {
		return &InputError{Name: "bound", Value: fmt.Sprint(cfg.Bound), Reason: dlog.ErrBoundTooLarge.Error()}
	}
	return nil
}
