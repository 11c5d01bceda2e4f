// Command tilesim drives the tile replacement queue through a simulated
// panning camera and reports how the queue kept up.
package main

import (
	"fmt"
	"log/slog"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/djdv/go-tilequeue/internal/sim"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Value: "info",
		Usage: "log level (debug, info, warn, error)",
	}
	framesFlag = cli.IntFlag{
		Name:  "frames",
		Value: sim.DefaultConfig.Frames,
		Usage: "number of frames to render",
	}
	tilesFlag = cli.IntFlag{
		Name:  "tiles",
		Value: sim.DefaultConfig.Tiles,
		Usage: "size of the tile ring the camera pans across",
	}
	visibleFlag = cli.IntFlag{
		Name:  "visible",
		Value: sim.DefaultConfig.Visible,
		Usage: "tiles rendered per frame",
	}
	stepFlag = cli.IntFlag{
		Name:  "step",
		Value: sim.DefaultConfig.Step,
		Usage: "tiles the camera pans per frame",
	}
	maxCountFlag = cli.IntFlag{
		Name:  "max-count",
		Value: sim.DefaultConfig.MaxCount,
		Usage: "tile ceiling passed to every trim",
	}
	inFlightFlag = cli.Float64Flag{
		Name:  "in-flight",
		Value: sim.DefaultConfig.InFlight,
		Usage: "chance per resident tile and frame of an imagery reprojection",
	}
	seedFlag = cli.IntFlag{
		Name:  "seed",
		Value: int(sim.DefaultConfig.Seed),
		Usage: "seed for the reprojection RNG",
	}

	simFlags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		framesFlag,
		tilesFlag,
		visibleFlag,
		stepFlag,
		maxCountFlag,
		inFlightFlag,
		seedFlag,
	}

	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		Description: `The dumpconfig command shows the effective simulation configuration as TOML.`,
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "tilesim"
	app.Usage = "simulate tile replacement under a panning camera"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = simFlags
	app.Commands = []cli.Command{dumpConfigCommand}
	app.Action = simulate
	return app
}

func simulate(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	logger, err := makeLogger(ctx)
	if err != nil {
		return err
	}
	result, err := sim.Run(cfg, logger)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	writeReport(ctx.App.Writer, cfg, result)
	if result.Violations != 0 {
		return fmt.Errorf("%d rendered tiles were evicted", result.Violations)
	}
	return nil
}

func makeLogger(ctx *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	name := ctx.GlobalString(verbosityFlag.Name)
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("invalid verbosity %q: %w", name, err)
	}
	handler := slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler), nil
}
