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

package si5351

import "fmt"

// PowerLevel is the output drive strength.
type PowerLevel uint8

const (
	Drive2mA PowerLevel = iota
	Drive4mA
	Drive6mA
	Drive8mA
)

func (p PowerLevel) String() string {
	switch p {
	case Drive2mA:
		return "2mA"
	case Drive4mA:
		return "4mA"
	case Drive6mA:
		return "6mA"
	case Drive8mA:
		return "8mA"
	default:
		return fmt.Sprintf("PowerLevel(%d)", uint8(p))
	}
}

// Enable turns an output on at its stored drive strength. With shared
// outputs, enabling CLK1 disables CLK2 and the other way around.
func (d *Device) Enable(channel int) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	base := uint8(clock12Base)
	if channel == 0 {
		base = clock0Base
	}
	o := &d.outputs[channel]
	if err := d.bus.WriteRegister(regClockControl+uint8(channel), base+uint8(o.power)); err != nil {
		return err
	}
	o.enabled = true

	if d.exclusive && channel != 0 {
		return d.Disable(3 - channel)
	}
	return nil
}

// Disable powers an output down. The PLL keeps running so the output comes
// back on frequency immediately when enabled again.
func (d *Device) Disable(channel int) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	if err := d.bus.WriteRegister(regClockControl+uint8(channel), clockPoweredDown); err != nil {
		return err
	}
	d.outputs[channel].enabled = false
	return nil
}

// DisableAll disables CLK0, CLK1 and CLK2 in that order.
func (d *Device) DisableAll() error {
	for i := 0; i < NumOutputs; i++ {
		if err := d.Disable(i); err != nil {
			return err
		}
	}
	return nil
}

/*
SetPower stores the drive strength for an output and applies it by enabling
the output. Note that this turns on an output that was disabled (and, with
shared outputs, turns off its partner); call Disable afterwards if that is
not wanted.
*/
func (d *Device) SetPower(channel int, level PowerLevel) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	if level > Drive8mA {
		return fmt.Errorf("%w: %d", ErrInvalidPowerLevel, uint8(level))
	}
	d.outputs[channel].power = level
	return d.Enable(channel)
}

// Enabled reports whether an output is currently on.
func (d *Device) Enabled(channel int) bool {
	return checkChannel(channel) == nil && d.outputs[channel].enabled
}

// Power returns the stored drive strength of an output.
func (d *Device) Power(channel int) PowerLevel {
	if checkChannel(channel) != nil {
		return Drive2mA
	}
	return d.outputs[channel].power
}
