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

package bus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"si5351mcu/src/si5351"
)

// Periph writes through a periph.io I2C bus, typically /dev/i2c-N on a
// Linux host.
type Periph struct {
	dev    i2c.Dev
	closer i2c.BusCloser
}

// NewPeriph returns an adapter for the chip at addr on an already open bus.
// An address of zero selects si5351.DefaultAddress.
func NewPeriph(b i2c.Bus, addr uint16) *Periph {
	if addr == 0 {
		addr = si5351.DefaultAddress
	}
	return &Periph{dev: i2c.Dev{Bus: b, Addr: addr}}
}

// OpenPeriph opens a registered bus by name ("" picks the first one, "1" or
// "/dev/i2c-1" pick a specific one). The host drivers must already have been
// loaded, for instance with host.Init.
func OpenPeriph(name string, addr uint16) (*Periph, error) {
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	p := NewPeriph(b, addr)
	p.closer = b
	return p, nil
}

func (p *Periph) WriteRegister(reg, value uint8) error {
	return p.dev.Tx([]byte{reg, value}, nil)
}

// Close releases the bus if OpenPeriph opened it.
func (p *Periph) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

func (p *Periph) String() string {
	return fmt.Sprintf("%s@%#x", p.dev.Bus, p.dev.Addr)
}
