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
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"si5351mcu/src/console"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Read console commands from stdin against one device.",
	Long: `shell keeps one driver open for a whole session, so the PLL reset ` +
		`policy works across commands. Type "help" for the command list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, release, err := openDevice(cmd)
		if err != nil {
			return err
		}
		defer release()

		out := cmd.OutOrStdout()
		shell := console.New(d, out)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		fmt.Fprint(out, "> ")
		for scanner.Scan() {
			shell.Handle(scanner.Text())
			fmt.Fprint(out, "> ")
		}
		fmt.Fprintln(out)
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
