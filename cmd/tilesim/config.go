package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/djdv/go-tilequeue/internal/sim"
)

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

func loadConfig(file string, cfg *sim.Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	var lineErr *toml.LineError
	if errors.As(err, &lineErr) {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig layers the defaults, the config file, and any flags set
// on the command line, in that order.
func makeConfig(ctx *cli.Context) (sim.Config, error) {
	cfg := sim.DefaultConfig
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return sim.Config{}, fmt.Errorf("loading config: %w", err)
		}
	}
	setInt(ctx, framesFlag, &cfg.Frames)
	setInt(ctx, tilesFlag, &cfg.Tiles)
	setInt(ctx, visibleFlag, &cfg.Visible)
	setInt(ctx, stepFlag, &cfg.Step)
	setInt(ctx, maxCountFlag, &cfg.MaxCount)
	if ctx.GlobalIsSet(inFlightFlag.Name) {
		cfg.InFlight = ctx.GlobalFloat64(inFlightFlag.Name)
	}
	if ctx.GlobalIsSet(seedFlag.Name) {
		seed := ctx.GlobalInt(seedFlag.Name)
		if seed < 0 {
			return sim.Config{}, fmt.Errorf("%w: seed must be >=0 but got %d",
				sim.ErrInvalidConfig, seed)
		}
		cfg.Seed = uint64(seed)
	}
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

func setInt(ctx *cli.Context, flag cli.IntFlag, target *int) {
	if ctx.GlobalIsSet(flag.Name) {
		*target = ctx.GlobalInt(flag.Name)
	}
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
	_, err = ctx.App.Writer.Write(out)
	return err
}
