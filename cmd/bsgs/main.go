// bsgs finds bounded discrete logarithms in Z*_p with baby-step giant-step.
package main

import (
	"fmt"
	"os"

	"github.com/tos-network/bsgs/cmd/utils"
	"github.com/tos-network/bsgs/internal/debug"
	"github.com/tos-network/bsgs/internal/flags"
	"github.com/urfave/cli/v2"
)

const clientIdentifier = "bsgs"

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp(gitCommit, gitDate, "bounded discrete logarithm solver")
	app.Commands = []*cli.Command{
		solveCommand,
		promptCommand,
		modpowCommand,
		modinvCommand,
		dumpConfigCommand,
		versionCommand,
	}
	app.Flags = debug.Flags
	app.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	app.OnUsageError = usageError
	return app
}

// usageError turns flag parsing failures into input errors.
func usageError(_ *cli.Context, err error, _ bool) error {
	return &utils.InputError{Name: "arguments", Reason: err.Error()}
}

// exitCode maps a command error to the process exit status: 2 for malformed
// or out-of-range input, 1 for everything else.
func exitCode(err error) int {
	if utils.IsInputError(err) {
		return 2
	}
	return 1
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
