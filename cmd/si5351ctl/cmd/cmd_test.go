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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	written bytes.Buffer
	replies []string
}

func (p *fakePort) Write(b []byte) (int, error) {
	return p.written.Write(b)
}

func (p *fakePort) Read(b []byte) (int, error) {
	if len(p.replies) == 0 {
		return 0, nil
	}
	n := copy(b, p.replies[0])
	p.replies[0] = p.replies[0][n:]
	if p.replies[0] == "" {
		p.replies = p.replies[1:]
	}
	return n, nil
}

func Test_exchange(t *testing.T) {
	port := &fakePort{replies: []string{"xtal 27000000 Hz", " (correction +0)\r\nclk0 0 Hz off 2mA\r\n", "ok\r\n"}}
	var out bytes.Buffer
	require.NoError(t, exchange(port, "status", &out))
	assert.Equal(t, "status\r\n", port.written.String())
	assert.Equal(t, "xtal 27000000 Hz (correction +0)\nclk0 0 Hz off 2mA\n", out.String())
}

func Test_exchangeErrors(t *testing.T) {
	port := &fakePort{replies: []string{"error: si5351: invalid channel: 7\r\n"}}
	err := exchange(port, "enable 7", io.Discard)
	assert.EqualError(t, err, "si5351: invalid channel: 7")

	err = exchange(&fakePort{}, "reset", io.Discard)
	assert.ErrorIs(t, err, errNoReply)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	configPath, dryRun, dump = "", false, false
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func Test_dryRunFrequency(t *testing.T) {
	out, err := execute(t, "", "--dry-run", "freq", "0", "14M")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 18)
	assert.Equal(t, "reg  26 <- 0xdf", lines[0])
	assert.Equal(t, "reg  31 <- 0xc9", lines[5])
	assert.Equal(t, "reg  45 <- 0x1e", lines[11])
	assert.Equal(t, "reg 177 <- 0x80", lines[17])
}

func Test_dryRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "si5351.yaml")
	require.NoError(t, os.WriteFile(path, []byte("correction_hz: -100\n"), 0o644))

	out, err := execute(t, "", "--dry-run", "--config", path, "freq", "clk0", "14000000")
	require.NoError(t, err)
	// c = 26999900 >> 5 = 0xcdfe2
	assert.Contains(t, out, "reg  27 <- 0xe2\n")

	_, err = execute(t, "", "--dry-run", "power", "0", "9")
	assert.Error(t, err)

	out, err = execute(t, "", "--dry-run", "shell")
	require.NoError(t, err)
	assert.Equal(t, "> \n", out)
}

func Test_shell(t *testing.T) {
	out, err := execute(t, "status\nenable 9\n", "--dry-run", "shell")
	require.NoError(t, err)
	assert.Equal(t, "> xtal 27000000 Hz (correction +0)\n"+
		"clk0 0 Hz off 2mA\n"+
		"clk1 0 Hz off 2mA\n"+
		"clk2 0 Hz off 2mA\n"+
		"pll reset pending\n"+
		"ok\n"+
		"> error: si5351: invalid channel: \"9\"\n"+
		"> \n", out)
}

func Test_dryRunDump(t *testing.T) {
	out, err := execute(t, "", "--dry-run", "--dump", "power", "1", "3")
	require.NoError(t, err)
	assert.Equal(t, "reg  17 <- 0x6f\nreg  18 <- 0x80\n"+
		"reg  17 = 0x6f\nreg  18 = 0x80\n", out)
}

func Test_initKeepsCorrection(t *testing.T) {
	out, err := execute(t, "init\nfreq 0 14M\n", "--dry-run", "--correction", "-100", "shell")
	require.NoError(t, err)
	// c = 26999900 >> 5 = 0xcdfe2
	assert.Contains(t, out, "reg  27 <- 0xe2\n")
}
