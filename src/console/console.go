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

/*
Package console implements the small text command language used to drive a
Si5351 interactively, either from the firmware's USB serial port or from the
host tool. One command per line:

	init [xtal]          set the crystal frequency and turn all outputs off,
	                     keeping the crystal correction
	freq <clk> <hz>      tune an output, hz may be 7040100, 7040.1k or 7.0401M
	enable <clk>         turn an output on
	disable <clk>        turn an output off
	power <clk> <0-3>    drive strength 2/4/6/8mA, also turns the output on
	correct <hz>         crystal correction in Hz, applied on the next freq
	reset                reset both PLLs
	off                  turn all outputs off
	status               show the current settings
	help                 list the commands

Every command is answered with "ok" or "error: <reason>".
*/
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"si5351mcu/src/si5351"
)

var ErrUnknownCommand = errors.New("unknown command")

type command struct {
	name    string
	usage   string
	minArgs int
	maxArgs int
	run     func(s *Shell, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"init", "init [xtal]", 0, 1, (*Shell).initialize},
		{"freq", "freq <clk> <hz>", 2, 2, (*Shell).frequency},
		{"enable", "enable <clk>", 1, 1, (*Shell).enable},
		{"disable", "disable <clk>", 1, 1, (*Shell).disable},
		{"power", "power <clk> <0-3>", 2, 2, (*Shell).power},
		{"correct", "correct <hz>", 1, 1, (*Shell).correct},
		{"reset", "reset", 0, 0, (*Shell).reset},
		{"off", "off", 0, 0, (*Shell).off},
		{"status", "status", 0, 0, (*Shell).status},
		{"help", "help", 0, 0, (*Shell).help},
	}
}

// Shell executes console commands against one device. Command output such
// as status and help goes to out.
type Shell struct {
	dev *si5351.Device
	out io.Writer
}

func New(dev *si5351.Device, out io.Writer) *Shell {
	return &Shell{dev: dev, out: out}
}

// Exec runs a single command line. Blank lines and lines starting with #
// do nothing.
func (s *Shell) Exec(line string) error {
	words, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	name, args := strings.ToLower(words[0]), words[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if len(args) < c.minArgs || len(args) > c.maxArgs {
			return fmt.Errorf("usage: %s", c.usage)
		}
		return c.run(s, args)
	}
	return fmt.Errorf("%w %q", ErrUnknownCommand, words[0])
}

// Handle runs a command line and answers with "ok" or "error: ...".
func (s *Shell) Handle(line string) {
	if err := s.Exec(line); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "ok")
}

func (s *Shell) initialize(args []string) error {
	xtal := uint32(0)
	if len(args) == 1 {
		hz, err := ParseHz(args[0])
		if err != nil {
			return err
		}
		xtal = hz
	}
	correction := s.dev.Correction()
	if err := s.dev.Initialize(xtal); err != nil {
		return err
	}
	if correction == 0 {
		return nil
	}
	return s.dev.SetCorrection(correction)
}

func (s *Shell) frequency(args []string) error {
	clk, err := ParseChannel(args[0])
	if err != nil {
		return err
	}
	hz, err := ParseHz(args[1])
	if err != nil {
		return err
	}
	return s.dev.SetFrequency(clk, hz)
}

func (s *Shell) enable(args []string) error {
	clk, err := ParseChannel(args[0])
	if err != nil {
		return err
	}
	return s.dev.Enable(clk)
}

func (s *Shell) disable(args []string) error {
	clk, err := ParseChannel(args[0])
	if err != nil {
		return err
	}
	return s.dev.Disable(clk)
}

func (s *Shell) power(args []string) error {
	clk, err := ParseChannel(args[0])
	if err != nil {
		return err
	}
	level, err := ParsePower(args[1])
	if err != nil {
		return err
	}
	return s.dev.SetPower(clk, level)
}

func (s *Shell) correct(args []string) error {
	delta, err := ParseCorrection(args[0])
	if err != nil {
		return err
	}
	return s.dev.SetCorrection(delta)
}

func (s *Shell) reset([]string) error {
	return s.dev.Reset()
}

func (s *Shell) off([]string) error {
	return s.dev.DisableAll()
}

func (s *Shell) status([]string) error {
	d := s.dev
	fmt.Fprintf(s.out, "xtal %d Hz (correction %+d)\n", d.Reference(), d.Correction())
	for clk := 0; clk < si5351.NumOutputs; clk++ {
		state := "off"
		if d.Enabled(clk) {
			state = "on"
		}
		fmt.Fprintf(s.out, "clk%d %d Hz %s %s\n", clk, d.Frequency(clk), state, d.Power(clk))
	}
	if d.NeedsReset() {
		fmt.Fprintln(s.out, "pll reset pending")
	}
	return nil
}

func (s *Shell) help([]string) error {
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %s\n", c.usage)
	}
	return nil
}
