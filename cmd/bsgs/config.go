package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/tos-network/bsgs/cmd/utils"
	"github.com/tos-network/bsgs/crypto/dlog"
	"github.com/tos-network/bsgs/internal/flags"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "[dumpfile]",
	Flags:       flags.Merge(utils.GroupFlags, utils.SearchFlags),
	Description: `The dumpconfig command shows configuration values.`,

	OnUsageError: usageError,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// groupConfig keeps the group parameters as text so that hex and decimal
// spellings survive a dumpconfig round trip.
type groupConfig struct {
	P string `toml:",omitempty"`
	G string `toml:",omitempty"`
	H string `toml:",omitempty"`
}

type bsgsConfig struct {
	Group  groupConfig
	Solver dlog.Config
}

func loadConfig(file string, cfg *bsgsConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the command
// line flags on top of it.
func makeConfig(ctx *cli.Context) (bsgsConfig, error) {
	cfg := bsgsConfig{Solver: dlog.DefaultConfig}

	if file := ctx.String(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, &utils.InputError{Name: "config", Value: file, Reason: err.Error()}
		}
	}
	for _, f := range []struct {
		flag *cli.StringFlag
		dst  *string
	}{
		{utils.ModulusFlag, &cfg.Group.P},
		{utils.BaseFlag, &cfg.Group.G},
		{utils.TargetFlag, &cfg.Group.H},
	} {
		if ctx.IsSet(f.flag.Name) {
			*f.dst = ctx.String(f.flag.Name)
		}
	}
	if err := utils.SetSolverConfig(ctx, &cfg.Solver); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
