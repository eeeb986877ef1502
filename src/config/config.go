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

// Package config reads the host tool's settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"si5351mcu/src/si5351"
)

// Config describes one Si5351 on a host I2C bus plus the serial port of a
// board running the console firmware.
type Config struct {
	Bus           string       `yaml:"bus"`     // periph bus name, "" for the first one
	Address       uint16       `yaml:"address"` // 7-bit
	ReferenceHz   uint32       `yaml:"reference_hz"`
	CorrectionHz  int32        `yaml:"correction_hz"`
	CrystalLoadPF int          `yaml:"crystal_load_pf"` // 6, 8 or 10
	ExclusivePair *bool        `yaml:"exclusive_pair"`  // CLK1/CLK2 mutually exclusive, default true
	Serial        SerialConfig `yaml:"serial"`
}

type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// Default returns the settings used when there is no config file.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// Load reads a YAML config and fills in anything left out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&c)
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Address == 0 {
		c.Address = si5351.DefaultAddress
	}
	if c.ReferenceHz == 0 {
		c.ReferenceHz = si5351.DefaultReference
	}
	if c.CrystalLoadPF == 0 {
		c.CrystalLoadPF = 8
	}
	if c.ExclusivePair == nil {
		exclusive := true
		c.ExclusivePair = &exclusive
	}
	if c.Serial.Port == "" {
		c.Serial.Port = "/dev/ttyACM0"
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = 115200
	}
}

func (c *Config) validate() error {
	if c.Address > 0x7f {
		return fmt.Errorf("address %#x is not a 7-bit address", c.Address)
	}
	if _, err := c.crystalLoad(); err != nil {
		return err
	}
	return nil
}

func (c *Config) crystalLoad() (si5351.CrystalLoad, error) {
	switch c.CrystalLoadPF {
	case 6:
		return si5351.Load6pF, nil
	case 8:
		return si5351.Load8pF, nil
	case 10:
		return si5351.Load10pF, nil
	default:
		return 0, fmt.Errorf("crystal load must be 6, 8 or 10 pF, not %d", c.CrystalLoadPF)
	}
}

// Device converts the settings into a driver configuration.
func (c *Config) Device() (si5351.Config, error) {
	load, err := c.crystalLoad()
	if err != nil {
		return si5351.Config{}, err
	}
	return si5351.Config{
		ReferenceHz:        c.ReferenceHz,
		CrystalLoad:        load,
		IndependentOutputs: c.ExclusivePair != nil && !*c.ExclusivePair,
	}, nil
}
