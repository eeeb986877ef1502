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
Package si5351 drives the three output, two PLL members of the Si5351 family
by writing single registers over a byte oriented bus.

CLK0 always runs from PLL A. CLK1 and CLK2 share PLL B, so retuning one of
them retunes the other as well; on the chips this was written for they also
share the output path and only one of them may be enabled at a time.

Each output runs an even integer multi-synth divider and the PLL carries the
fraction. Retuning does not reset the PLLs unless the reset policy asks for
it, which keeps the output free of clicks while tuning in small steps.

A Device is not safe for concurrent use.
*/
package si5351

import (
	"errors"
	"fmt"

	"si5351mcu/src/support"
)

// RegisterWriter is the only thing the driver needs from the bus. The
// implementation owns the peripheral address.
type RegisterWriter interface {
	WriteRegister(reg, value uint8) error
}

// Config holds construction time settings. Zero values select the defaults.
type Config struct {
	ReferenceHz uint32      // nominal crystal frequency, DefaultReference if zero
	CrystalLoad CrystalLoad // Load8pF if zero

	// IndependentOutputs is for chip revisions where CLK1 and CLK2 have
	// separate output paths. Otherwise enabling one of them disables the
	// other.
	IndependentOutputs bool
}

type output struct {
	power     PowerLevel
	enabled   bool
	frequency uint32 // last requested frequency, zero if never set
}

type Device struct {
	bus        RegisterWriter
	nominal    uint32
	correction int32
	load       CrystalLoad
	exclusive  bool
	outputs    [NumOutputs]output
	policy     resetPolicy
}

// New returns a driver for the chip behind bus. Nothing is written until the
// first command. The first frequency change always resets the PLLs.
func New(bus RegisterWriter, config Config) *Device {
	d := &Device{
		bus:       bus,
		nominal:   config.ReferenceHz,
		load:      config.CrystalLoad,
		exclusive: !config.IndependentOutputs,
	}
	if d.nominal == 0 {
		d.nominal = DefaultReference
	}
	if d.load == 0 {
		d.load = Load8pF
	}
	return d
}

// Initialize sets the nominal crystal frequency (zero keeps the current one),
// clears any correction, selects the crystal load and turns every output off
// so the chip stays silent until the first real frequency request.
func (d *Device) Initialize(referenceHz uint32) error {
	if referenceHz == 0 {
		referenceHz = d.nominal
	}
	if referenceHz < support.MinReference || referenceHz > support.MaxReference {
		return fmt.Errorf("%w: %d Hz", ErrInvalidReference, referenceHz)
	}
	d.nominal = referenceHz
	d.correction = 0
	d.policy.invalidate()

	if err := d.bus.WriteRegister(regCrystalLoad, d.load.register()); err != nil {
		return err
	}
	return d.DisableAll()
}

// Reference returns the effective crystal frequency, correction included.
func (d *Device) Reference() uint32 {
	return uint32(int64(d.nominal) + int64(d.correction))
}

// Correction returns the offset last passed to SetCorrection.
func (d *Device) Correction() int32 {
	return d.correction
}

/*
SetCorrection sets the difference in Hz between the actual and the nominal
crystal frequency. It replaces any earlier correction rather than adding to
it.

Nothing is written to the chip. The new reference is used by the next
SetFrequency, which will also reset the PLLs (and click) no matter how small
the frequency change is.
*/
func (d *Device) SetCorrection(deltaHz int32) error {
	effective := int64(d.nominal) + int64(deltaHz)
	if effective < support.MinReference || effective > support.MaxReference {
		return fmt.Errorf("%w: %d%+d Hz", ErrInvalidReference, d.nominal, deltaHz)
	}
	d.correction = deltaHz
	d.policy.invalidate()
	return nil
}

// Plan computes the dividers and register writes for an output frequency
// without touching the chip.
func (d *Device) Plan(channel int, hz uint32) (support.Si5351Config, []RegisterWrite, error) {
	if err := checkChannel(channel); err != nil {
		return support.Si5351Config{}, nil, err
	}
	config, err := support.New(d.Reference(), hz)
	if errors.Is(err, support.ErrBadReference) {
		return support.Si5351Config{}, nil, fmt.Errorf("%w: %d Hz", ErrInvalidReference, d.Reference())
	}
	if err != nil {
		return support.Si5351Config{}, nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, err)
	}
	return config, program(channel, config), nil
}

/*
SetFrequency programs the PLL feeding `channel` and the channel's multi-synth
for an output of `hz` and then resets the PLLs if the reset policy calls for
it. The output enable state is not changed.

Invalid arguments are rejected before anything is written. If the bus fails
part way through, the error is returned as is and the next SetFrequency will
reset; repeating the call is safe.
*/
func (d *Device) SetFrequency(channel int, hz uint32) error {
	config, writes, err := d.Plan(channel, hz)
	if err != nil {
		return err
	}
	if err := d.write(writes); err != nil {
		d.policy.invalidate()
		return err
	}
	d.outputs[channel].frequency = hz
	if d.policy.required(channel, config) {
		return d.Reset()
	}
	return nil
}

// Frequency returns the last frequency set on channel, or zero.
func (d *Device) Frequency(channel int) uint32 {
	if checkChannel(channel) != nil {
		return 0
	}
	return d.outputs[channel].frequency
}

/*
Reset soft resets both PLLs unconditionally. This makes every multi-synth
lock onto its current dividers and clicks on every enabled output.
*/
func (d *Device) Reset() error {
	if err := d.bus.WriteRegister(regPllReset, pllResetA); err != nil {
		return err
	}
	if err := d.bus.WriteRegister(regPllReset, pllResetB); err != nil {
		return err
	}
	var current [NumOutputs]uint32
	for i := range d.outputs {
		current[i] = d.outputs[i].frequency
	}
	d.policy.commit(current)
	return nil
}

// NeedsReset reports whether the next SetFrequency will reset the PLLs
// regardless of the frequency requested.
func (d *Device) NeedsReset() bool {
	return d.policy.state == needsReset
}

func (d *Device) write(writes []RegisterWrite) error {
	for _, w := range writes {
		if err := d.bus.WriteRegister(w.Reg, w.Value); err != nil {
			return err
		}
	}
	return nil
}

func checkChannel(channel int) error {
	if channel < 0 || channel >= NumOutputs {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	return nil
}
