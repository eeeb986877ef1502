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

package support

import (
	"errors"
	"fmt"
)

const (
	MaxVCO        = 900_000_000 // Hz, top of the PLL band
	MaxDivider    = 900         // largest multisynth integer divider we use
	MaxR          = 128         // largest additional output divider
	MinFrequency  = 7_804       // Hz, lowest output reachable with R = 128
	MaxFrequency  = 225_000_000 // Hz, divide-by-4 from a 900MHz VCO
	MinReference  = 10_000_000
	MaxReference  = 1<<25 - 1 // ref >> 5 must fit the 20-bit P3 field
	fractionShift = 5
)

var (
	ErrOutOfRange   = errors.New("Si5351Config: output frequency out of range")
	ErrBadReference = errors.New("Si5351Config: invalid reference frequency")
)

type Si5351Config struct {
	Ref, Fvco, F uint32 // reference, pll and output frequencies (Hz)
	A, B, C      uint32 // pll feedback multiplier a + b/c
	Div, R       uint32 // multisynth integer divider and extra power of two divider
}

/*
New computes configuration parameters for the PLL and the integer multi-synth
divider in a Si5351 clock generator.

The parameter `ref` is the effective crystal frequency (in Hz) including any
correction, `f` is the desired output frequency (in Hz).

The multi-synth is always run as an even integer divider so that the whole
fractional burden lands on the PLL. The divider is chosen so the VCO sits just
below 900MHz; excess division moves into the R stage. The PLL fraction b/c is
approximated with c = ref >> 5 which keeps every product well inside 32 bits at
the cost of a few Hz of error in the worst case. No floating point is involved
so results are identical on every target.

An error is returned if `f` cannot be reached with R <= 128 and a divider of at
least 4, or if the reference is outside the range the register fields can hold.
*/
func New(ref, f uint32) (Si5351Config, error) {
	if ref < MinReference || ref > MaxReference {
		return Si5351Config{}, fmt.Errorf("%w: %d Hz", ErrBadReference, ref)
	}
	if f == 0 {
		return Si5351Config{}, fmt.Errorf("%w: zero frequency", ErrOutOfRange)
	}

	div := MaxVCO / f
	r := uint32(1)
	for div > MaxDivider {
		r = r * 2
		div = div / 2
	}
	if r > MaxR {
		return Si5351Config{}, fmt.Errorf("%w: %d Hz needs R = %d", ErrOutOfRange, f, r)
	}

	// only even dividers (and the special divide-by-4) are clean
	if div%2 == 1 {
		div--
	}
	if div < 4 {
		return Si5351Config{}, fmt.Errorf("%w: %d Hz needs divider %d", ErrOutOfRange, f, div)
	}

	fvco := div * r * f
	rem := fvco % ref
	return Si5351Config{
		Ref:  ref,
		Fvco: fvco,
		F:    f,
		A:    fvco / ref,
		B:    rem >> fractionShift,
		C:    ref >> fractionShift,
		Div:  div,
		R:    r,
	}, nil
}

// RCode is the R divider already shifted into bits [6:4] of the
// multi-synth register that carries it.
func (c Si5351Config) RCode() uint8 {
	code := uint8(0)
	for r := c.R; r > 1; r >>= 1 {
		code++
	}
	return code << 4
}

// FeedbackParams returns the MSNx_P1, MSNx_P2 and MSNx_P3 register fields.
func (c Si5351Config) FeedbackParams() (p1, p2, p3 uint32) {
	frac := 128 * c.B / c.C
	p1 = 128*c.A + frac - 512
	p2 = 128*c.B - frac*c.C
	p3 = c.C
	return p1, p2, p3
}

// DividerParam returns MSx_P1 for the integer multi-synth divider.
func (c Si5351Config) DividerParam() uint32 {
	return 128*c.Div - 512
}

// DivideBy4 is true when the datasheet's dedicated divide-by-4 mode applies.
func (c Si5351Config) DivideBy4() bool {
	return c.Div == 4
}

/*
Error returns the difference between the frequency the chip will actually
produce and the requested one, in millihertz, computed exactly in integer
arithmetic.

The produced frequency is ref * (a + b/c) / (div * R). With a 27MHz reference
the shift-scaled fraction is good to a few Hz anywhere in the range.
*/
func (c Si5351Config) Error() int64 {
	// ref * (a*c + b) / c / (div*R), scaled by 1000
	num := (uint64(c.A)*uint64(c.C) + uint64(c.B)) * uint64(c.Ref) * 1000
	den := uint64(c.C) * uint64(c.Div) * uint64(c.R)
	actual := int64((num + den/2) / den)
	return actual - int64(c.F)*1000
}
