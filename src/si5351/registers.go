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

import "si5351mcu/src/support"

const (
	DefaultAddress   = 0x60       // 7-bit I2C address
	DefaultReference = 27_000_000 // Hz
	NumOutputs       = 3
)

const (
	regClockControl   = 16  // CLK0..CLK2 control, one register per output
	regPllA           = 26  // MSNA block, 26..33
	regPllB           = 34  // MSNB block, 34..41
	regMultisynth     = 42  // MS0 block, 42..49, stride 8
	multisynthStride  = 8
	regPllReset       = 177
	regCrystalLoad    = 183
	pllResetA         = 1 << 5
	pllResetB         = 1 << 7
	clockPoweredDown  = 1 << 7
	clock0Base        = 0b0100_1100 // integer mode, PLLA, source MS0
	clock12Base       = 0b0110_1100 // integer mode, PLLB, source MSx
	divideBy4Bits     = 0b0000_1100
	crystalLoadLowBit = 0b01_0010 // bits [5:0] must read 010010
)

// CrystalLoad selects the internal load capacitance across the crystal.
type CrystalLoad uint8

const (
	Load6pF  CrystalLoad = 1
	Load8pF  CrystalLoad = 2
	Load10pF CrystalLoad = 3
)

func (c CrystalLoad) register() uint8 {
	return uint8(c)<<6 | crystalLoadLowBit
}

// RegisterWrite is a single byte destined for one chip register.
type RegisterWrite struct {
	Reg, Value uint8
}

// pllBase returns the feedback register block feeding an output. CLK0 runs
// from PLL A, CLK1 and CLK2 share PLL B.
func pllBase(channel int) uint8 {
	if channel == 0 {
		return regPllA
	}
	return regPllB
}

// packFields lays out a P1/P2/P3 triple the way both the feedback and the
// multi-synth blocks expect it. The third byte carries P1[17:16] in its low
// bits and whatever the caller puts in `extra` above them.
func packFields(base uint8, p1, p2, p3 uint32, extra uint8) []RegisterWrite {
	return []RegisterWrite{
		{base, uint8(p3 >> 8)},
		{base + 1, uint8(p3)},
		{base + 2, extra | uint8(p1>>16)&0x03},
		{base + 3, uint8(p1 >> 8)},
		{base + 4, uint8(p1)},
		{base + 5, uint8(p3>>16)<<4 | uint8(p2>>16)&0x0f},
		{base + 6, uint8(p2 >> 8)},
		{base + 7, uint8(p2)},
	}
}

// program converts a divider plan into the register writes for one output:
// the eight feedback registers of its PLL followed by its own eight
// multi-synth registers.
func program(channel int, config support.Si5351Config) []RegisterWrite {
	p1, p2, p3 := config.FeedbackParams()
	writes := packFields(pllBase(channel), p1, p2, p3, 0)

	base := regMultisynth + uint8(channel)*multisynthStride
	if config.DivideBy4() {
		// the datasheet wants P1 = 0 with the DIVBY4 bits set
		return append(writes, packFields(base, 0, 0, 1, divideBy4Bits|config.RCode())...)
	}
	return append(writes, packFields(base, config.DividerParam(), 0, 1, config.RCode())...)
}
