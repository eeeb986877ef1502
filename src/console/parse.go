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

package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"si5351mcu/src/si5351"
)

var ErrBadNumber = errors.New("bad number")

/*
ParseHz reads a frequency in Hz. A trailing k or M scales the value and
allows up to six decimals, so "7.0401M", "7040.1k" and "7040100" are all the
same. Values that would need a fraction of a Hz are rejected. Everything is
done in integers.
*/
func ParseHz(s string) (uint32, error) {
	text := s
	scale := uint64(1)
	switch {
	case strings.HasSuffix(text, "k"), strings.HasSuffix(text, "K"):
		scale = 1_000
		text = text[:len(text)-1]
	case strings.HasSuffix(text, "M"):
		scale = 1_000_000
		text = text[:len(text)-1]
	}
	text = strings.ReplaceAll(text, "_", "")

	whole, frac, _ := strings.Cut(text, ".")
	if whole == "" && frac == "" || len(frac) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	w := uint64(0)
	if whole != "" {
		v, err := strconv.ParseUint(whole, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
		}
		w = v
	}
	f := uint64(0)
	if frac != "" {
		v, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
		}
		for i := len(frac); i < 6; i++ {
			v *= 10
		}
		f = v
	}
	if f*scale%1_000_000 != 0 {
		return 0, fmt.Errorf("%w: %q is not a whole number of Hz", ErrBadNumber, s)
	}
	hz := w*scale + f*scale/1_000_000
	if hz > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %q is too large", ErrBadNumber, s)
	}
	return uint32(hz), nil
}

// ParseChannel accepts 0, 1, 2 with an optional "clk" prefix.
func ParseChannel(s string) (int, error) {
	text := strings.TrimPrefix(strings.ToLower(s), "clk")
	clk, err := strconv.Atoi(text)
	if err != nil || clk < 0 || clk >= si5351.NumOutputs {
		return 0, fmt.Errorf("%w: %q", si5351.ErrInvalidChannel, s)
	}
	return clk, nil
}

// ParsePower accepts a level 0..3 or the drive current 2mA..8mA.
func ParsePower(s string) (si5351.PowerLevel, error) {
	for level := si5351.Drive2mA; level <= si5351.Drive8mA; level++ {
		if strings.EqualFold(s, level.String()) {
			return level, nil
		}
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v > uint64(si5351.Drive8mA) {
		return 0, fmt.Errorf("%w: %q", si5351.ErrInvalidPowerLevel, s)
	}
	return si5351.PowerLevel(v), nil
}

// ParseCorrection reads a signed offset in Hz.
func ParseCorrection(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return int32(v), nil
}
