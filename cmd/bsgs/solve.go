package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/tos-network/bsgs/cmd/utils"
	"github.com/tos-network/bsgs/crypto/dlog"
	"github.com/tos-network/bsgs/internal/flags"
	"github.com/tos-network/bsgs/metrics"
	"github.com/urfave/cli/v2"
)

var solveCommand = &cli.Command{
	Action:    solve,
	Name:      "solve",
	Usage:     "Find x with g^x = h (mod p) in [0, B*B)",
	ArgsUsage: " ",
	Flags:     flags.Merge(utils.GroupFlags, utils.SearchFlags, utils.OutputFlags),
	Description: `
Search for the discrete logarithm of h to the base g modulo the prime p.

The baby-step table holds B entries, so exponents in [0, B*B) are covered.
A match whose giant step or baby step index is zero is reported as not
found unless --accept-zero-index is given.

Example:
    bsgs solve --p 13 --g 2 --h 6 --bound 4
`,
	OnUsageError: usageError,
}

type solveOutput struct {
	Found     bool        `json:"found"`
	X         string      `json:"x,omitempty"`
	GiantStep *uint64     `json:"giantStep,omitempty"`
	BabyStep  *uint64     `json:"babyStep,omitempty"`
	Stats     *solveStats `json:"stats,omitempty"`
}

type solveStats struct {
	Backend    dlog.Backend `json:"backend"`
	Bound      uint64       `json:"bound"`
	TableSize  int          `json:"tableSize"`
	Collisions uint64       `json:"collisions"`
	Matched    bool         `json:"matched"`
	Elapsed    string       `json:"elapsed"`
	CPU        string       `json:"cpu"`
	Memory     string       `json:"memory"`
	Growth     string       `json:"memoryGrowth"`
}

// solve is the solve command.
func solve(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	p, g, h, err := utils.GroupFromFlags(ctx, cfg.Group.P, cfg.Group.G, cfg.Group.H)
	if err != nil {
		return err
	}
	return runSearch(ctx, cfg.Solver, p, g, h)
}

// runSearch solves a single validated instance and prints the outcome.
func runSearch(ctx *cli.Context, config dlog.Config, p, g, h *big.Int) error {
	if ctx.Bool(utils.CheckPrimeFlag.Name) && !p.ProbablyPrime(20) {
		log.Warn("Modulus is not prime, the result may be meaningless", "p", p)
	}
	if ctx.Bool(utils.ProgressFlag.Name) {
		config.Tracker = newProgressTracker(ctx.App.ErrWriter)
	}
	solver, err := dlog.New(config)
	if err != nil {
		return err
	}
	searchCtx := ctx.Context
	if searchCtx == nil {
		searchCtx = context.Background()
	}
	timeout := ctx.Duration(utils.TimeoutFlag.Name)
	if timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(searchCtx, timeout)
		defer cancel()
	}

	start := metrics.Now()
	res, err := solver.Solve(searchCtx, p, g, h)
	usage := start.Since()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("search aborted after %v: %w", timeout, err)
		}
		return err
	}
	log.Info("Search finished", "found", res.Found, "backend", res.Backend, "bound", res.Bound,
		"elapsed", usage.Elapsed, "cpu", usage.CPU, "memory", common.StorageSize(usage.Memory))

	out := ctx.App.Writer
	if ctx.Bool(utils.JSONFlag.Name) {
		result := newSolveOutput(res)
		if ctx.Bool(utils.StatsFlag.Name) {
			result.Stats = newSolveStats(res, usage)
		}
		return printJSON(out, result)
	}
	printResult(out, res)
	if ctx.Bool(utils.StatsFlag.Name) {
		renderStats(out, newSolveStats(res, usage))
	}
	return nil
}

func newSolveOutput(res *dlog.Result) *solveOutput {
	out := &solveOutput{Found: res.Found}
	if res.Found {
		x0, x1 := res.GiantStep, res.BabyStep
		out.X, out.GiantStep, out.BabyStep = res.X.String(), &x0, &x1
	}
	return out
}

func newSolveStats(res *dlog.Result, usage metrics.Usage) *solveStats {
	return &solveStats{
		Backend:    res.Backend,
		Bound:      res.Bound,
		TableSize:  res.TableSize,
		Collisions: res.Collisions,
		Matched:    res.Matched,
		Elapsed:    usage.Elapsed.String(),
		CPU:        usage.CPU.String(),
		Memory:     common.StorageSize(usage.Memory).String(),
		Growth:     signedSize(usage.MemoryGrowth),
	}
}

func signedSize(n int64) string {
	if n < 0 {
		return "-" + common.StorageSize(-n).String()
	}
	return common.StorageSize(n).String()
}

func printResult(w io.Writer, res *dlog.Result) {
	if !res.Found {
		fmt.Fprintf(w, "no solution found in [0, %d²)\n", res.Bound)
		return
	}
	highlight := color.New(color.FgGreen, color.Bold)
	if w != os.Stdout {
		highlight.DisableColor()
	}
	fmt.Fprintf(w, "x = %s\n", highlight.Sprint(res.X))
}

func renderStats(w io.Writer, stats *solveStats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Backend", string(stats.Backend)},
		{"Bound", fmt.Sprint(stats.Bound)},
		{"Table size", fmt.Sprint(stats.TableSize)},
		{"Collisions", fmt.Sprint(stats.Collisions)},
		{"Matched", fmt.Sprint(stats.Matched)},
		{"Elapsed", stats.Elapsed},
		{"CPU time", stats.CPU},
		{"Resident memory", stats.Memory},
		{"Memory growth", stats.Growth},
	})
	table.Render()
}

func printJSON(w io.Writer, v interface{}) error {
	str, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON object: %w", err)
	}
	_, err = fmt.Fprintln(w, string(str))
	return err
}
