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

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// consoleCommand wraps a console command as a cobra subcommand.
func consoleCommand(use, short string, args cobra.PositionalArgs) *cobra.Command {
	name, _, _ := strings.Cut(use, " ")
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLine(cmd, append([]string{name}, args...)...)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		consoleCommand("init [xtal]", "Set the crystal load and turn every output off.", cobra.MaximumNArgs(1)),
		consoleCommand("freq <clk> <hz>", "Tune an output, e.g. freq 0 14.074M.", cobra.ExactArgs(2)),
		consoleCommand("enable <clk>", "Turn an output on.", cobra.ExactArgs(1)),
		consoleCommand("disable <clk>", "Turn an output off.", cobra.ExactArgs(1)),
		consoleCommand("power <clk> <level>", "Set the drive strength (0-3 or 2mA-8mA) and turn the output on.", cobra.ExactArgs(2)),
		consoleCommand("reset", "Soft reset both PLLs.", cobra.NoArgs),
		consoleCommand("off", "Turn every output off.", cobra.NoArgs),
	)
}
