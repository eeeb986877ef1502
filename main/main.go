//go:build rp2040

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

package main

import (
	"machine"

	"si5351mcu/src/pico"
	"si5351mcu/src/si5351"
)

func main() {
	d, err := pico.Setup(si5351.Config{})
	if err != nil {
		println("failed setup: " + err.Error())
		machine.EnterBootloader()
	}
	pico.Serve(d)
}
