package main

import (
	"fmt"
	"math/big"
	"runtime"
	"strings"

	"github.com/tos-network/bsgs/cmd/utils"
	"github.com/tos-network/bsgs/common/math"
	"github.com/tos-network/bsgs/internal/flags"
	"github.com/tos-network/bsgs/params"
	"github.com/urfave/cli/v2"
)

var (
	promptCommand = &cli.Command{
		Action:    promptSolve,
		Name:      "prompt",
		Usage:     "Read p, g and h interactively and solve",
		ArgsUsage: " ",
		Flags:     flags.Merge(utils.SearchFlags, utils.OutputFlags, []cli.Flag{utils.CheckPrimeFlag}),
		Description: `
Prompt for the group parameters p, g and h, then search as solve does.

Only the [Solver] section of a --config file is used; its [Group] values are
ignored because the group is always read from the prompt.
`,
		OnUsageError: usageError,
	}
	modpowCommand = &cli.Command{
		Action:       modpow,
		Name:         "modpow",
		Usage:        "Compute base^exponent mod modulus",
		ArgsUsage:    "<base> <exponent> <modulus>",
		OnUsageError: usageError,
	}
	modinvCommand = &cli.Command{
		Action:       modinv,
		Name:         "modinv",
		Usage:        "Compute the inverse of value mod modulus",
		ArgsUsage:    "<value> <modulus>",
		OnUsageError: usageError,
	}
	versionCommand = &cli.Command{
		Action:    version,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Description: `
The output of this command is supposed to be machine-readable.
`,
	}
)

// newPrompter opens the prompter used by the prompt command.
var newPrompter = utils.NewTerminalPrompter

// promptSolve is the prompt command.
func promptSolve(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	prompter := newPrompter()
	defer prompter.Close()

	p, g, h, err := utils.ReadGroup(prompter)
	if err != nil {
		return err
	}
	if err := utils.ValidateGroup(p, g, h); err != nil {
		return err
	}
	return runSearch(ctx, cfg.Solver, p, g, h)
}

func modpow(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return &utils.InputError{Name: "arguments", Reason: "usage: bsgs modpow <base> <exponent> <modulus>"}
	}
	args, err := parseArgs(ctx, "base", "exponent", "modulus")
	if err != nil {
		return err
	}
	r, err := math.ModPow(args[0], args[1], args[2])
	if err != nil {
		return &utils.InputError{Name: "modulus", Value: args[2].String(), Reason: err.Error()}
	}
	fmt.Fprintln(ctx.App.Writer, r)
	return nil
}

func modinv(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return &utils.InputError{Name: "arguments", Reason: "usage: bsgs modinv <value> <modulus>"}
	}
	args, err := parseArgs(ctx, "value", "modulus")
	if err != nil {
		return err
	}
	r, err := math.ModInverse(args[0], args[1])
	if err != nil {
		return &utils.InputError{Name: "value", Value: args[0].String(), Reason: err.Error()}
	}
	fmt.Fprintln(ctx.App.Writer, r)
	return nil
}

func parseArgs(ctx *cli.Context, names ...string) ([]*big.Int, error) {
	vals := make([]*big.Int, len(names))
	for i, name := range names {
		v, err := utils.ParseInteger(name, ctx.Args().Get(i))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func version(ctx *cli.Context) error {
	w := ctx.App.Writer
	fmt.Fprintln(w, strings.Title(clientIdentifier))
	fmt.Fprintln(w, "Version:", params.VersionWithMeta)
	if gitCommit != "" {
		fmt.Fprintln(w, "Git Commit:", gitCommit)
	}
	if gitDate != "" {
		fmt.Fprintln(w, "Git Commit Date:", gitDate)
	}
	fmt.Fprintln(w, "Architecture:", runtime.GOARCH)
	fmt.Fprintln(w, "Go Version:", runtime.Version())
	fmt.Fprintln(w, "Operating System:", runtime.GOOS)
	return nil
}
