// Package debug interfaces the logging subsystem with the command line.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tos-network/bsgs/internal/flags"
	"github.com/urfave/cli/v2"
)

var (
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	LogFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (json|logfmt|terminal)",
		Value:    "terminal",
		Category: flags.LoggingCategory,
	}
	LogNoColorFlag = &cli.BoolFlag{
		Name:     "log.nocolor",
		Usage:    "Disable terminal colors in log output",
		Category: flags.LoggingCategory,
	}
)

// Flags holds all command-line flags required for debugging.
var Flags = []cli.Flag{
	VerbosityFlag,
	LogFormatFlag,
	LogNoColorFlag,
}

// Setup initializes logging based on the CLI flags. It should be called as
// early as possible in the program.
func Setup(ctx *cli.Context) error {
	var (
		output   = io.Writer(os.Stderr)
		useColor = !ctx.Bool(LogNoColorFlag.Name) && os.Getenv("TERM") != "dumb" &&
			(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	return setup(output, ctx.String(LogFormatFlag.Name), ctx.Int(VerbosityFlag.Name), useColor)
}

func setup(output io.Writer, format string, verbosity int, useColor bool) error {
	if verbosity < 0 || verbosity > 5 {
		return fmt.Errorf("invalid verbosity %d, want 0-5", verbosity)
	}
	var (
		handler slog.Handler
		level   = log.FromLegacyLevel(verbosity)
	)
	switch format {
	case "json":
		handler = log.JSONHandlerWithLevel(output, level)
	case "logfmt":
		handler = log.LogfmtHandlerWithLevel(output, level)
	case "", "terminal":
		handler = log.NewTerminalHandlerWithLevel(output, level, useColor)
	default:
		return fmt.Errorf("unknown log format: %v", format)
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}
