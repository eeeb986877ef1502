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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"si5351mcu/src/si5351"
)

type fakeI2C struct {
	addrs  []uint16
	frames [][]byte
	err    error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.addrs = append(f.addrs, addr)
	f.frames = append(f.frames, append([]byte(nil), w...))
	return nil
}

func (f *fakeI2C) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return errors.New("not supported")
}

func (f *fakeI2C) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return f.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

func Test_tinygo(t *testing.T) {
	i2c := &fakeI2C{}
	b := NewTinyGo(i2c, 0)
	require.NoError(t, b.WriteRegister(16, 0x80))
	require.NoError(t, b.WriteRegister(177, 0x20))

	assert.Equal(t, []uint16{0x60, 0x60}, i2c.addrs)
	assert.Equal(t, [][]byte{{16, 0x80}, {177, 0x20}}, i2c.frames)

	other := NewTinyGo(i2c, 0x61)
	require.NoError(t, other.WriteRegister(17, 1))
	assert.Equal(t, uint16(0x61), i2c.addrs[2])
}

func Test_tinygoError(t *testing.T) {
	nak := errors.New("nack")
	b := NewTinyGo(&fakeI2C{err: nak}, 0)
	assert.ErrorIs(t, b.WriteRegister(16, 0x80), nak)
}

func Test_periphPlayback(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x60, W: []byte{183, 0x92}},
			{Addr: 0x60, W: []byte{16, 0x80}},
			{Addr: 0x60, W: []byte{17, 0x80}},
			{Addr: 0x60, W: []byte{18, 0x80}},
		},
	}
	d := si5351.New(NewPeriph(pb, 0), si5351.Config{})
	require.NoError(t, d.Initialize(0))
	require.NoError(t, pb.Close())
}

func Test_periphGolden(t *testing.T) {
	rec := &i2ctest.Record{}
	p := NewPeriph(rec, si5351.DefaultAddress)
	d := si5351.New(p, si5351.Config{})
	require.NoError(t, d.SetFrequency(0, 14_000_000))
	require.NoError(t, p.Close())

	var got []byte
	for _, op := range rec.Ops {
		require.Equal(t, uint16(0x60), op.Addr)
		require.Len(t, op.W, 2)
		got = append(got, op.W...)
	}
	want := []byte{
		26, 0xdf, 27, 0xe6, 28, 0x00, 29, 0x0e, 30, 0x97, 31, 0xc9, 32, 0x0f, 33, 0x56,
		42, 0x00, 43, 0x01, 44, 0x00, 45, 0x1e, 46, 0x00, 47, 0x00, 48, 0x00, 49, 0x00,
		177, 0x20, 177, 0x80,
	}
	assert.Equal(t, want, got)
}

func Test_recorderTrace(t *testing.T) {
	var out bytes.Buffer
	rec := &Recorder{Trace: &out}
	d := si5351.New(rec, si5351.Config{})
	require.NoError(t, d.Enable(0))
	require.NoError(t, d.Reset())

	assert.Equal(t, "reg  16 <- 0x4c\nreg 177 <- 0x20\nreg 177 <- 0x80\n", out.String())
	assert.Equal(t, map[uint8]uint8{16: 0x4c, 177: 0x80}, rec.Registers())
}
