package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestANCSetsCarryFromBit7(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0xFF, 0, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0x0B, 0x80) // ANC #$80
	tickN(c, 2)

	a, _, _, _, _ := c.Registers()
	assert.Equal(t, uint8(0x80), a)
	assert.True(t, c.C)
}

func TestALRAndsThenShiftsRight(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0xFF, 0, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0x4B, 0x03) // ALR #$03
	tickN(c, 2)

	a, _, _, _, _ := c.Registers()
	assert.Equal(t, uint8(0x01), a)
	assert.True(t, c.C, "carry takes the bit shifted out")
}

func TestARRRotatesAndSetsCarryAndOverflowFromResult(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0xFF, 0, 0, c.SP, c.PC)
	c.C = false
	bus.setBytes(0x8000, 0x6B, 0xC0) // ARR #$C0
	tickN(c, 2)

	a, _, _, _, _ := c.Registers()
	assert.Equal(t, uint8(0x60), a)
	assert.True(t, c.C)
	assert.False(t, c.V)
}

func TestSBXSubtractsImmediateFromAAndX(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0x0F, 0xFF, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0xCB, 0x05) // SBX #$05
	tickN(c, 2)

	_, x, _, _, _ := c.Registers()
	assert.Equal(t, uint8(0x0A), x)
	assert.True(t, c.C, "no borrow needed")
}

func TestSBXSetsCarryClearOnBorrow(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0x01, 0x01, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0xCB, 0x05) // SBX #$05, (A&X)=1 < 5
	tickN(c, 2)

	_, x, _, _, _ := c.Registers()
	assert.Equal(t, uint8(0xFC), x)
	assert.False(t, c.C)
}

func TestLASMasksMemoryWithStackPointer(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0, 0, 0, 0x0F, c.PC)
	bus.mem[0x0305] = 0x3C
	bus.setBytes(0x8000, 0xBB, 0x00, 0x03) // LAS $0300,Y
	c.Y = 0x05
	tickN(c, 5)

	a, x, _, sp, _ := c.Registers()
	assert.Equal(t, uint8(0x0C), a)
	assert.Equal(t, uint8(0x0C), x)
	assert.Equal(t, uint8(0x0C), sp)
}

func TestSHAAndsAWithXAndAddressHighPlusOne(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0xFF, 0xFF, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0x9F, 0x00, 0x03) // SHA $0300,Y
	c.Y = 0x10
	tickN(c, 5)

	assert.Equal(t, uint8(0x04), bus.mem[0x0310]) // high byte 0x03 + 1
}

func TestSHXAndsXWithAddressHighPlusOne(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0, 0xFF, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0x9E, 0x00, 0x03) // SHX $0300,Y
	c.Y = 0x10
	tickN(c, 5)

	assert.Equal(t, uint8(0x04), bus.mem[0x0310])
}

func TestSHYAndsYWithAddressHighPlusOne(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0, 0, 0xFF, c.SP, c.PC)
	bus.setBytes(0x8000, 0x9C, 0x00, 0x03) // SHY $0300,X
	c.X = 0x10
	tickN(c, 5)

	assert.Equal(t, uint8(0x04), bus.mem[0x0310])
}

func TestTASSetsStackPointerThenStoresMaskedValue(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0xFF, 0x0F, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0x9B, 0x00, 0x03) // TAS $0300,Y
	c.Y = 0x10
	tickN(c, 5)

	_, _, _, sp, _ := c.Registers()
	assert.Equal(t, uint8(0x0F), sp)
	assert.Equal(t, uint8(0x04), bus.mem[0x0310])
}

func TestLXAAndsAccumulatorWithImmediateIntoAAndX(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0xFF, 0, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0xAB, 0x3C) // LXA #$3C
	tickN(c, 2)

	a, x, _, _, _ := c.Registers()
	assert.Equal(t, uint8(0x3C), a)
	assert.Equal(t, uint8(0x3C), x)
}

func TestANESetsAccumulatorFromXAndImmediate(t *testing.T) {
	c, bus := newTestCPU()
	bus.setBytes(resetVector, 0x00, 0x80)
	c.Reset()
	tickN(c, 7)

	c.SetRegisters(0xFF, 0x0F, 0, c.SP, c.PC)
	bus.setBytes(0x8000, 0x8B, 0xF0) // ANE #$F0
	tickN(c, 2)

	a, _, _, _, _ := c.Registers()
	assert.Equal(t, uint8(0x00), a)
}
