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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"si5351mcu/src/si5351"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "si5351.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func Test_default(t *testing.T) {
	c := Default()
	assert.Equal(t, uint16(0x60), c.Address)
	assert.Equal(t, uint32(27_000_000), c.ReferenceHz)
	assert.Equal(t, 8, c.CrystalLoadPF)
	assert.Equal(t, "/dev/ttyACM0", c.Serial.Port)
	assert.Equal(t, 115200, c.Serial.Baud)

	dev, err := c.Device()
	require.NoError(t, err)
	assert.Equal(t, si5351.Config{ReferenceHz: 27_000_000, CrystalLoad: si5351.Load8pF}, dev)
}

func Test_load(t *testing.T) {
	path := writeConfig(t, `
bus: /dev/i2c-1
address: 0x61
reference_hz: 25000000
correction_hz: -87
crystal_load_pf: 10
exclusive_pair: false
serial:
  port: /dev/ttyUSB1
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/i2c-1", c.Bus)
	assert.Equal(t, uint16(0x61), c.Address)
	assert.Equal(t, int32(-87), c.CorrectionHz)
	assert.Equal(t, "/dev/ttyUSB1", c.Serial.Port)
	assert.Equal(t, 115200, c.Serial.Baud)

	dev, err := c.Device()
	require.NoError(t, err)
	assert.Equal(t, si5351.Config{ReferenceHz: 25_000_000, CrystalLoad: si5351.Load10pF, IndependentOutputs: true}, dev)
}

func Test_loadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "bus: [unclosed"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "crystal_load_pf: 7"))
	assert.ErrorContains(t, err, "crystal load")

	_, err = Load(writeConfig(t, "address: 0x80"))
	assert.ErrorContains(t, err, "7-bit")
}
