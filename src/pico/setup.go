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

package pico

import (
	"fmt"
	"machine"
	"time"

	"github.com/chiefMarlin/tinygo-drivers/si5351"

	"si5351mcu/src/bus"
	"si5351mcu/src/console"
	driver "si5351mcu/src/si5351"
)

// Setup brings up I2C0, checks that a Si5351 answers and returns a driver
// with all outputs off.
func Setup(config driver.Config) (*driver.Device, error) {
	// give the clock chip time to come out of power on reset
	time.Sleep(500 * time.Millisecond)

	err := machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	if err != nil {
		return nil, fmt.Errorf("configure I2C0: %w", err)
	}

	// the reference driver reads the device status register for us
	probe := si5351.New(machine.I2C0)
	connected, err := probe.Connected()
	if err != nil {
		return nil, fmt.Errorf("unable to read device status: %w", err)
	}
	if !connected {
		return nil, fmt.Errorf("unable to connect to SI5351 device")
	}

	d := driver.New(bus.NewTinyGo(machine.I2C0, driver.DefaultAddress), config)
	if err := d.Initialize(0); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	fmt.Printf("Si5351 ready, xtal %d Hz\n", d.Reference())
	return d, nil
}

// Serve reads console commands from the USB serial port forever.
func Serve(d *driver.Device) {
	shell := console.New(d, machine.Serial)
	line := make([]byte, 0, 64)
	for {
		if machine.Serial.Buffered() == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		b, err := machine.Serial.ReadByte()
		if err != nil {
			continue
		}
		switch b {
		case '\r', '\n':
			if len(line) > 0 {
				shell.Handle(string(line))
				line = line[:0]
			}
		default:
			if len(line) < cap(line) {
				line = append(line, b)
			}
		}
	}
}
