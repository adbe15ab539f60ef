package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rambo-emu/rambo/internal/input"
)

type fakePPU struct {
	regs [8]uint8
}

func (f *fakePPU) ReadRegister(address uint16, cycle uint64) uint8       { return f.regs[address%8] }
func (f *fakePPU) WriteRegister(address uint16, v uint8, cycle uint64) { f.regs[address%8] = v }
func (f *fakePPU) PeekRegister(address uint16) uint8                    { return f.regs[address%8] }

type fakeAPU struct {
	status uint8
	last   struct {
		addr uint16
		val  uint8
	}
}

func (f *fakeAPU) WriteRegister(address uint16, v uint8) { f.last.addr, f.last.val = address, v }
func (f *fakeAPU) ReadStatus() uint8                     { return f.status }
func (f *fakeAPU) PeekStatus() uint8                     { return f.status }

func TestRAMMirroring(t *testing.T) {
	b := New()
	b.Write(0x0000, 0x42, 0)
	assert.Equal(t, uint8(0x42), b.Read(0x0800, 0))
	assert.Equal(t, uint8(0x42), b.Read(0x1000, 0))
	assert.Equal(t, uint8(0x42), b.Read(0x1800, 0))
}

func TestUnmappedReadReturnsOpenBus(t *testing.T) {
	b := New()
	b.Write(0x0000, 0x7E, 10) // sets open bus latch via RAM write path
	assert.Equal(t, uint8(0x7E), b.Read(0x4018, 11))
}

func TestPPURegisterDispatchModulo8(t *testing.T) {
	b := New()
	ppu := &fakePPU{}
	b.PPU = ppu
	b.Write(0x2008, 0x11, 0) // 0x2008 mod 8 == 0 -> register 0
	assert.Equal(t, uint8(0x11), ppu.regs[0])
	assert.Equal(t, uint8(0x11), b.Read(0x3FF8, 0))
}

func TestAPUStatusReadDoesNotUpdateOpenBus(t *testing.T) {
	b := New()
	apu := &fakeAPU{status: 0x40}
	b.APU = apu
	b.Write(0x0000, 0xAA, 1) // seed open bus
	v := b.Read(0x4015, 2)
	assert.Equal(t, uint8(0x40), v)
	assert.Equal(t, uint8(0xAA), b.OpenBus.Get(), "reading $4015 must not update open bus")
}

func TestControllerReadWrite(t *testing.T) {
	b := New()
	in := input.NewState()
	b.Input = in
	in.SetButtons1(uint8(input.ButtonA))
	b.Write(0x4016, 0x01, 0)
	b.Write(0x4016, 0x00, 0)
	assert.Equal(t, uint8(1), b.Read(0x4016, 0)&1)
}

func TestOAMDMATriggerInvoked(t *testing.T) {
	b := New()
	var gotPage uint8 = 0xFF
	called := false
	b.OAMDMATrigger = func(page uint8) {
		called = true
		gotPage = page
	}
	b.Write(0x4014, 0x02, 0)
	assert.True(t, called)
	assert.Equal(t, uint8(0x02), gotPage)
}

func TestPeekHasNoSideEffectsOnOpenBus(t *testing.T) {
	b := New()
	b.Write(0x0000, 0x33, 5)
	_ = b.Peek(0x0000)
	assert.Equal(t, uint8(0x33), b.OpenBus.Get())
}
