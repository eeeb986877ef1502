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

// ResetThreshold is how far (in Hz) an output may move from the frequency it
// had at the last PLL reset before another reset is forced.
const ResetThreshold = 10_000

type resetState uint8

const (
	needsReset resetState = iota
	settled
)

/*
resetPolicy decides when the PLLs get a soft reset.

A reset is the only way to be sure the multi-synth has picked up a new set of
dividers, but it also produces a click on every output. Small retunes are
therefore left alone and the few Hz of error they may carry are accepted.
Large moves, outputs near the top of the range where the PLL fraction matters
most, and any change of reference all force a reset. So does the first
frequency on an output that had none at the last reset, however low it is.
*/
type resetPolicy struct {
	state     resetState
	committed [NumOutputs]uint32 // output frequencies at the last reset
}

func (p *resetPolicy) invalidate() {
	p.state = needsReset
}

// required reports whether programming `config` on `channel` needs a reset
// and moves the policy to needsReset if so.
func (p *resetPolicy) required(channel int, config support.Si5351Config) bool {
	switch {
	case p.state == needsReset:
	case p.committed[channel] == 0:
		// never settled on this channel, its PLL may not have locked yet
		p.state = needsReset
	case config.F >= config.Fvco/8:
		p.state = needsReset
	case absDiff(config.F, p.committed[channel]) > ResetThreshold:
		p.state = needsReset
	}
	return p.state == needsReset
}

// commit records the frequencies in force after a reset.
func (p *resetPolicy) commit(frequencies [NumOutputs]uint32) {
	p.committed = frequencies
	p.state = settled
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
