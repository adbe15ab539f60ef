package dma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBus struct {
	mem [0x10000]uint8
}

func (b *fakeBus) Read(address uint16, cycle uint64) uint8 { return b.mem[address] }

func TestOAMDMATakes513CyclesOnEvenStart(t *testing.T) {
	bus := &fakeBus{}
	for i := 0; i < 256; i++ {
		bus.mem[0x0200+i] = uint8(i)
	}
	var oam [256]uint8
	var e OAMEngine
	e.Trigger(0x02, 0) // even start cycle

	cycles := uint64(0)
	for e.Active() {
		e.Step(bus, func(v uint8) { oam[e.index] = v }, cycles, false)
		cycles++
	}
	assert.Equal(t, uint64(513), cycles)
	assert.Equal(t, uint8(0), oam[0])
	assert.Equal(t, uint8(255), oam[255])
}

func TestOAMDMATakes514CyclesOnOddStart(t *testing.T) {
	bus := &fakeBus{}
	var e OAMEngine
	e.Trigger(0x02, 1) // odd start cycle

	cycles := uint64(1)
	for e.Active() {
		e.Step(bus, func(v uint8) {}, cycles, false)
		cycles++
	}
	assert.Equal(t, uint64(514), cycles-1)
}

func TestDMCDMADrainsInFourSteps(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[0xC000] = 0x7F
	var e DMCEngine
	e.Trigger(0xC000)

	var delivered uint8
	cycles := 0
	for e.Active() {
		e.Step(bus, uint64(cycles), func(v uint8) { delivered = v })
		cycles++
	}
	assert.Equal(t, 4, cycles, "halt+dummy+dummy+fetch = 4 Step calls to drain")
	assert.Equal(t, uint8(0x7F), delivered)
}

func TestDMCOnlyStallsOAMDuringHaltAndFetch(t *testing.T) {
	var e DMCEngine
	e.Trigger(0xC000)
	assert.True(t, e.StallsOAM(), "halt phase claims the bus")
	e.Step(&fakeBus{}, 0, func(uint8) {})
	assert.False(t, e.StallsOAM(), "first dummy phase frees the bus")
	e.Step(&fakeBus{}, 1, func(uint8) {})
	assert.False(t, e.StallsOAM(), "second dummy phase frees the bus")
	e.Step(&fakeBus{}, 2, func(uint8) {})
	assert.True(t, e.StallsOAM(), "fetch phase claims the bus")
}

func TestOAMDMADeferredByDMCStall(t *testing.T) {
	bus := &fakeBus{}
	var oam [256]uint8
	var e OAMEngine
	e.Trigger(0x00, 0)

	// First cycle aligns; second cycle would read but DMC is stalling it.
	e.Step(bus, func(v uint8) {}, 0, false)
	assert.Equal(t, OAMReading, e.phase)
	e.Step(bus, func(v uint8) {}, 1, true)
	assert.Equal(t, OAMReading, e.phase, "stalled cycle makes no progress")
	e.Step(bus, func(v uint8) { oam[0] = v }, 2, false)
	assert.Equal(t, OAMWriting, e.phase)
}
