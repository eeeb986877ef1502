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
Package bus connects the si5351 driver to real and simulated I2C buses. Each
adapter turns WriteRegister(reg, value) into a two byte write to the chip's
address.
*/
package bus

import (
	"tinygo.org/x/drivers"

	"si5351mcu/src/si5351"
)

// TinyGo writes through anything that implements drivers.I2C, notably
// machine.I2C0 and machine.I2C1 on a microcontroller.
type TinyGo struct {
	bus  drivers.I2C
	addr uint16
	buf  [2]byte
}

// NewTinyGo returns an adapter for the chip at addr on bus. An address of
// zero selects si5351.DefaultAddress.
func NewTinyGo(bus drivers.I2C, addr uint16) *TinyGo {
	if addr == 0 {
		addr = si5351.DefaultAddress
	}
	return &TinyGo{bus: bus, addr: addr}
}

func (t *TinyGo) WriteRegister(reg, value uint8) error {
	t.buf[0], t.buf[1] = reg, value
	return t.bus.Tx(t.addr, t.buf[:], nil)
}
