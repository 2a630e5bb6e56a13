// Copyright 2024 The Evochora Authors
// This file is part of Evochora.
//
// Evochora is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Evochora is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Evochora. If not, see <http://www.gnu.org/licenses/>.

// Command evochora is a thin reference harness around the simulation
// core, in the cmd/gprobe idiom: a urfave/cli.v1 app with global flags
// merged into per-command flags, a dumpconfig command that round-trips
// the effective configuration through TOML, and a run command that
// advances the tick scheduler and prints periodic snapshots. It is not
// the full data-pipeline CLI — no storage, message broker, or visualizer
// surface lives here, only what is needed to exercise the runtime
// end-to-end.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/evochora/evochora/config"
	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/plugins"
	"github.com/evochora/evochora/prng"
	"github.com/evochora/evochora/sim"
	"github.com/evochora/evochora/xlog"
)

var configFileFlag = cli.StringFlag{
	Name:  "config",
	Usage: "TOML configuration file",
}

func main() {
	app := cli.NewApp()
	app.Name = "evochora"
	app.Usage = "reference harness for the evochora simulation core"
	app.Flags = []cli.Flag{configFileFlag}
	app.Commands = []cli.Command{
		runCommand,
		dumpConfigCommand,
		seedCommand,
	}

	if err := app.Run(os.Args); err != nil {
		xlog.Crit("evochora: fatal", "err", err)
	}
}

var runCommand = cli.Command{
	Name:      "run",
	Usage:     "advance the simulation and print periodic snapshots",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		configFileFlag,
		cli.IntFlag{Name: "ticks", Value: 100, Usage: "number of ticks to run"},
		cli.IntFlag{Name: "print-every", Value: 10, Usage: "print a snapshot every N ticks"},
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		s := buildSimulation(cfg)
		ticks := ctx.Int("ticks")
		printEvery := ctx.Int("print-every")
		if printEvery <= 0 {
			printEvery = ticks + 1
		}

		for i := 0; i < ticks; i++ {
			if err := s.Tick(); err != nil {
				return fmt.Errorf("evochora: tick %d: %w", s.CurrentTick(), err)
			}
			if s.CurrentTick()%uint64(printEvery) == 0 {
				printSnapshot(s)
			}
		}
		printSnapshot(s)
		return nil
	},
}

var dumpConfigCommand = cli.Command{
	Name:      "dumpconfig",
	Usage:     "show the effective configuration as TOML",
	ArgsUsage: " ",
	Flags:     []cli.Flag{configFileFlag},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		out, err := config.Dump(cfg)
		if err != nil {
			return fmt.Errorf("evochora: marshaling config: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

var seedCommand = cli.Command{
	Name:      "seed",
	Usage:     "write a starter TOML configuration with every default key",
	ArgsUsage: "[output-file]",
	Action: func(ctx *cli.Context) error {
		out, err := config.Dump(config.Default())
		if err != nil {
			return fmt.Errorf("evochora: marshaling default config: %w", err)
		}
		path := "evochora.toml"
		if ctx.NArg() > 0 {
			path = ctx.Args().Get(0)
		}
		header := "# evochora starter configuration: every recognized key,\n" +
			"# set to its default. Edit in place and pass --config to evochora run.\n\n"
		return os.WriteFile(path, []byte(header+string(out)), 0o644)
	},
}

// loadConfig applies the same defaults-then-TOML-overlay order
// config.Load already encodes; the CLI layer's only job is locating the
// file named by --config, mirroring cmd/gprobe/config.go's
// makeConfigNode.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	file := ctx.GlobalString(configFileFlag.Name)
	if file == "" {
		file = ctx.String(configFileFlag.Name)
	}
	if file == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(file)
	if err != nil {
		return nil, fmt.Errorf("evochora: loading %s: %w", file, err)
	}
	return cfg, nil
}

func buildSimulation(cfg *config.Config) *sim.Simulation {
	grid := env.New(cfg.Shape, cfg.Toroidal)
	rng := prng.New(cfg.Seed)
	policy := cfg.Policy()
	banks := cfg.BankSizes()
	plugs := plugins.BuildDefaultSet(cfg.Plugins, banks)

	s := sim.New(grid, rng, policy, banks, plugs)
	xlog.Info("simulation initialized", "run_id", s.RunID, "shape", cfg.Shape, "toroidal", cfg.Toroidal)
	return s
}

// printSnapshot renders the organism population as a colorized table,
// the way cmd/gprobe's console prints peer/chain summaries via
// tablewriter with fatih/color-highlighted columns.
func printSnapshot(s *sim.Simulation) {
	fmt.Printf("%s tick %d\n", color.New(color.FgCyan, color.Bold).Sprint("=="), s.CurrentTick())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Parent", "Alive", "IP", "Energy", "Entropy"})

	for _, o := range s.SnapshotOrganisms() {
		alive := color.New(color.FgGreen).Sprint("yes")
		if !o.Alive {
			alive = color.New(color.FgRed).Sprint("no")
		}
		table.Append([]string{
			strconv.FormatUint(uint64(o.ID), 10),
			strconv.FormatUint(uint64(o.ParentID), 10),
			alive,
			fmt.Sprint(o.IP),
			strconv.FormatInt(o.Energy, 10),
			strconv.FormatInt(o.Entropy, 10),
		})
	}
	table.Render()
}
