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
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

const remoteTimeout = 2 * time.Second

var errNoReply = errors.New("no reply from board")

var remoteCmd = &cobra.Command{
	Use:   "remote <command> [args...]",
	Short: "Send one console command to a board running the firmware.",
	Long: `remote sends a console command (for example "freq 0 14.074M" or ` +
		`"status") over the board's USB serial port and prints the reply.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			c.Serial.Port = port
		}
		if baud, _ := cmd.Flags().GetInt("baud"); baud != 0 {
			c.Serial.Baud = baud
		}

		port, err := serial.Open(c.Serial.Port, &serial.Mode{BaudRate: c.Serial.Baud})
		if err != nil {
			return fmt.Errorf("open %s: %w", c.Serial.Port, err)
		}
		defer port.Close()
		if err := port.SetReadTimeout(remoteTimeout); err != nil {
			return err
		}
		return exchange(port, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.Flags().String("port", "", "serial port of the board (default from config)")
	remoteCmd.Flags().Int("baud", 0, "baud rate (default from config)")
}

// exchange writes one command line and copies reply lines to out until the
// firmware answers "ok" or "error: ...". A read returning no data counts as
// a timeout.
func exchange(rw io.ReadWriter, line string, out io.Writer) error {
	if _, err := io.WriteString(rw, line+"\r\n"); err != nil {
		return err
	}
	var reply []byte
	buf := make([]byte, 64)
	for {
		n, err := rw.Read(buf)
		if n == 0 {
			if err != nil && err != io.EOF {
				return err
			}
			return errNoReply
		}
		reply = append(reply, buf[:n]...)
		for {
			i := strings.IndexByte(string(reply), '\n')
			if i < 0 {
				break
			}
			text := strings.TrimRight(string(reply[:i]), "\r")
			reply = reply[i+1:]
			switch {
			case text == "ok":
				return nil
			case strings.HasPrefix(text, "error: "):
				return errors.New(strings.TrimPrefix(text, "error: "))
			default:
				fmt.Fprintln(out, text)
			}
		}
	}
}
