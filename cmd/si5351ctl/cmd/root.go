/*
 * Copyright 2025 Ted Dunning
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cmd provides the command-line interface for si5351ctl.
package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"periph.io/x/host/v3"

	"si5351mcu/src/bus"
	"si5351mcu/src/config"
	"si5351mcu/src/console"
	"si5351mcu/src/si5351"
)

var (
	configPath string
	dryRun     bool
	dump       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "si5351ctl",
	Short: "Program a Si5351 clock generator.",
	Long: `si5351ctl programs a Si5351 clock generator, either directly on a ` +
		`host I2C bus or through a board running the console firmware ` +
		`(see "remote").`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.String("bus", "", "I2C bus name, e.g. 1 or /dev/i2c-1")
	flags.Uint16("addr", si5351.DefaultAddress, "7-bit I2C address of the Si5351")
	flags.Uint32("xtal", si5351.DefaultReference, "crystal frequency in Hz")
	flags.Int32("correction", 0, "crystal correction in Hz, applied to every frequency")
	flags.BoolVar(&dryRun, "dry-run", false, "print register writes instead of using the bus")
	flags.BoolVar(&dump, "dump", false, "with --dry-run, print the final value of every register written")
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("bus") {
		c.Bus, _ = flags.GetString("bus")
	}
	if flags.Changed("addr") {
		c.Address, _ = flags.GetUint16("addr")
	}
	if flags.Changed("xtal") {
		c.ReferenceHz, _ = flags.GetUint32("xtal")
	}
	if flags.Changed("correction") {
		c.CorrectionHz, _ = flags.GetInt32("correction")
	}
	return c, nil
}

// openDevice connects a driver to the configured bus. The returned function
// releases the bus.
func openDevice(cmd *cobra.Command) (*si5351.Device, func(), error) {
	c, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	devConfig, err := c.Device()
	if err != nil {
		return nil, nil, err
	}

	var w si5351.RegisterWriter
	release := func() {}
	if dryRun {
		rec := &bus.Recorder{Trace: cmd.OutOrStdout()}
		if dump {
			release = func() { printRegisters(cmd.OutOrStdout(), rec.Registers()) }
		}
		w = rec
	} else {
		if _, err := host.Init(); err != nil {
			return nil, nil, fmt.Errorf("load host drivers: %w", err)
		}
		p, err := bus.OpenPeriph(c.Bus, c.Address)
		if err != nil {
			return nil, nil, err
		}
		w = p
		release = func() { _ = p.Close() }
	}

	d := si5351.New(w, devConfig)
	if c.CorrectionHz != 0 {
		if err := d.SetCorrection(c.CorrectionHz); err != nil {
			release()
			return nil, nil, err
		}
	}
	return d, release, nil
}

func printRegisters(out io.Writer, regs map[uint8]uint8) {
	keys := make([]uint8, 0, len(regs))
	for reg := range regs {
		keys = append(keys, reg)
	}
	slices.Sort(keys)
	for _, reg := range keys {
		fmt.Fprintf(out, "reg %3d = 0x%02x\n", reg, regs[reg])
	}
}

// runLine executes one console command against a freshly opened device.
func runLine(cmd *cobra.Command, words ...string) error {
	d, release, err := openDevice(cmd)
	if err != nil {
		return err
	}
	defer release()
	return console.New(d, cmd.OutOrStdout()).Exec(strings.Join(words, " "))
}
