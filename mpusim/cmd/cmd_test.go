// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/term"

	"github.com/coretrust/armv8m-mpu/emulator"
	"github.com/coretrust/armv8m-mpu/mpu"
)

type nullRW struct{}

func (nullRW) Read(p []byte) (n int, err error) {
	return 0, io.EOF
}

func (nullRW) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func testConsole() *term.Terminal {
	bank := emulator.NewBank(8)

	Target = &mpu.MPU{Regs: bank}
	Regions = bank.Regions()

	return term.NewTerminal(nullRW{}, "")
}

func TestRegionCommand(t *testing.T) {
	assert := assert.New(t)

	c := testConsole()

	assert.NoError(Handle(c, "region 1 20000000 2003ffff 0 np,xn"))

	r := Target.Region(1)

	assert.True(r.Enabled())
	assert.Equal(uint32(0x20000000), r.Base())
	assert.Equal(uint32(0x2003ffff), r.Limit())
	assert.True(r.NonPrivileged())
	assert.True(r.ExecuteNever())
	assert.False(r.ReadOnly())

	assert.NoError(Handle(c, "clear 1"))
	assert.False(Target.Region(1).Enabled())
}

func TestRegionCommandValidation(t *testing.T) {
	assert := assert.New(t)

	c := testConsole()

	assert.Error(Handle(c, "region 99 0 1f 0"))
	assert.Error(Handle(c, "region 0 ffff 0 0"))
	assert.Error(Handle(c, "region 0 0 1f 0 bogus"))
}

func TestAttrCommand(t *testing.T) {
	assert := assert.New(t)

	c := testConsole()

	assert.NoError(Handle(c, "attr 3 44"))
	assert.Equal(byte(0x44), Target.MemAttr(3))
}

func TestEnableDisableCommands(t *testing.T) {
	assert := assert.New(t)

	c := testConsole()

	assert.NoError(Handle(c, "enable privdef"))
	assert.True(Target.Enabled())
	assert.Equal(uint32(mpu.PRIVDEFENA|1), Target.Regs.Read(mpu.MPU_CTRL))

	assert.NoError(Handle(c, "disable"))
	assert.False(Target.Enabled())
}

func TestPokePeek(t *testing.T) {
	assert := assert.New(t)

	c := testConsole()

	assert.NoError(Handle(c, "poke 8 3"))
	assert.Equal(uint32(3), Target.Regs.Read(mpu.MPU_RNR))

	assert.Error(Handle(c, "poke 6 3"))
}

func TestUnknownCommand(t *testing.T) {
	c := testConsole()
	assert.Error(t, Handle(c, "bogus"))
}
