package flags

import "github.com/urfave/cli/v2"

const (
	GroupCategory   = "GROUP PARAMETERS"
	SearchCategory  = "SEARCH"
	OutputCategory  = "OUTPUT"
	LoggingCategory = "LOGGING AND DEBUGGING"
	MiscCategory    = "MISC"
)

func init() {
	// -h is the target residue, so help only answers to --help.
	cli.HelpFlag = &cli.BoolFlag{
		Name:               "help",
		Usage:              "show help",
		DisableDefaultText: true,
		Category:           MiscCategory,
	}
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}
