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
	"io"

	"si5351mcu/src/si5351"
)

// Recorder keeps every register write instead of sending it anywhere. With
// Trace set, each write is also printed, which makes it a dry-run bus.
type Recorder struct {
	Writes []si5351.RegisterWrite
	Trace  io.Writer
}

func (r *Recorder) WriteRegister(reg, value uint8) error {
	r.Writes = append(r.Writes, si5351.RegisterWrite{Reg: reg, Value: value})
	if r.Trace != nil {
		fmt.Fprintf(r.Trace, "reg %3d <- 0x%02x\n", reg, value)
	}
	return nil
}

// Registers returns the last value written to each register.
func (r *Recorder) Registers() map[uint8]uint8 {
	regs := make(map[uint8]uint8, len(r.Writes))
	for _, w := range r.Writes {
		regs[w.Reg] = w.Value
	}
	return regs
}
