package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rambo-emu/rambo/internal/cartridge"
	"github.com/rambo-emu/rambo/internal/ledger"
	"github.com/rambo-emu/rambo/internal/openbus"
)

func buildINES(prgBanks, chrBanks int, flags6, flags7 uint8, prg, chr []byte) []byte {
	h := make([]byte, 16)
	copy(h, []byte("NES\x1a"))
	h[4] = byte(prgBanks)
	h[5] = byte(chrBanks)
	h[6] = flags6
	h[7] = flags7
	buf := append(h, prg...)
	buf = append(buf, chr...)
	return buf
}

func newTestPPU(t *testing.T) *PPU {
	t.Helper()
	data := buildINES(1, 1, 0, 0, make([]byte, 16384), make([]byte, 8192))
	cart, err := cartridge.Load(data)
	require.NoError(t, err)

	p := New()
	p.Ledger = ledger.New()
	p.SetCartridge(cart)
	p.warmupComplete = true
	return p
}

func runCycles(p *PPU, n int) {
	var cycle uint64
	for i := 0; i < n; i++ {
		p.Step(cycle)
		cycle++
	}
}

func TestFrameCompletesAt89342Cycles(t *testing.T) {
	p := newTestPPU(t)
	// First frame after reset: even frame, no odd-frame skip, so exactly
	// 262*341 = 89342 dots to wrap back to scanline 0 dot 0.
	runCycles(p, 89342)
	assert.Equal(t, 0, p.Scanline())
	assert.Equal(t, 0, p.Dot())
	assert.Equal(t, uint64(1), p.FrameCount())
}

func TestOddFrameSkipsOneDotWhenRenderingEnabled(t *testing.T) {
	p := newTestPPU(t)
	p.mask = 0x08 // background enabled
	runCycles(p, 89342)
	// Second frame is odd; with rendering enabled its dot 0 is skipped, so
	// it completes one cycle early.
	runCycles(p, 89341)
	assert.Equal(t, 0, p.Scanline())
	assert.Equal(t, 0, p.Dot())
	assert.Equal(t, uint64(2), p.FrameCount())
}

func TestVBlankFlagSetsAtScanline241Dot1(t *testing.T) {
	p := newTestPPU(t)
	// state_after(241*341+1) = (scanline 241, dot 1), the cycle the set
	// branch consumes as input; one more Step fires it.
	runCycles(p, 241*341+1)
	runCycles(p, 1)
	assert.Equal(t, 241, p.Scanline())
	assert.Equal(t, 2, p.Dot())
	assert.True(t, p.Ledger.IsReadableFlagSet(0))
}

func TestStatusReadClearsFlagAndW(t *testing.T) {
	p := newTestPPU(t)
	runCycles(p, 241*341+1)
	runCycles(p, 1)
	p.w = true

	// The flag was set at master cycle 241*341+1; the read comes one cycle
	// later.
	v := p.ReadRegister(0x2002, 241*341+2)
	assert.NotEqual(t, uint8(0), v&0x80, "flag observed set on this read")
	assert.False(t, p.Ledger.IsReadableFlagSet(241*341+3), "read clears the visible flag")
	assert.False(t, p.w)
}

func TestSpriteZeroHitIsDeferredUntilCommit(t *testing.T) {
	p := newTestPPU(t)
	p.maybeSetSprite0Hit()
	assert.Equal(t, uint8(0), p.status&0x40, "bit must not be visible before the CPU phase runs")

	p.CommitPostCycleFlags()
	assert.Equal(t, uint8(0x40), p.status&0x40, "commit applies the hit after the CPU phase")
}

func TestSpriteZeroHitClearedOnPreRenderIncludesPending(t *testing.T) {
	p := newTestPPU(t)
	p.maybeSetSprite0Hit()
	runCycles(p, 261*341+1)
	runCycles(p, 1)
	p.CommitPostCycleFlags()
	assert.Equal(t, uint8(0), p.status&0x40, "pre-render dot 1 clears a pending hit along with the status bit")
}

func TestStatusReadORsInOpenBusLowBits(t *testing.T) {
	p := newTestPPU(t)
	p.OpenBus = openbus.New()
	p.OpenBus.Set(0x3F, 0)

	v := p.ReadRegister(0x2002, 1000)
	assert.Equal(t, uint8(0x1F), v&0x1F, "bits 0-4 come from the open-bus latch")
	assert.Equal(t, uint8(0x1F), p.PeekRegister(0x2002)&0x1F)
}

func TestNMIEnabledMidVBlankArmsEdge(t *testing.T) {
	p := newTestPPU(t)
	runCycles(p, 241*341+1)
	runCycles(p, 1) // enter VBlank with NMI disabled
	require.False(t, p.Ledger.NMIEdgePending())

	p.WriteRegister(0x2000, 0x80, 5000) // enable NMI mid-span
	assert.True(t, p.Ledger.NMIEdgePending())
	assert.True(t, p.Ledger.ShouldAssertNMILine(true))
}

func TestPPUADDRWriteSequenceSetsV(t *testing.T) {
	p := newTestPPU(t)
	p.WriteRegister(0x2006, 0x21, 0)
	p.WriteRegister(0x2006, 0x08, 0)
	assert.Equal(t, uint16(0x2108), p.v)
	assert.False(t, p.w)
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p := newTestPPU(t)
	p.nametable[0] = 0x55
	p.v = 0x2000
	first := p.ReadRegister(0x2007, 0)
	assert.Equal(t, uint8(0), first, "first read returns stale buffer")
	second := p.ReadRegister(0x2007, 0)
	assert.Equal(t, uint8(0x55), second)
}

func TestPPUDATAWriteIncrementsByConfiguredStep(t *testing.T) {
	p := newTestPPU(t)
	p.v = 0x2000
	p.ctrl = 0x04 // +32 increment
	p.WriteRegister(0x2007, 0x11, 0)
	assert.Equal(t, uint16(0x2020), p.v)
}

func TestFourScreenNametablesAreIndependent(t *testing.T) {
	data := buildINES(1, 1, 0x08, 0, make([]byte, 16384), make([]byte, 8192))
	cart, err := cartridge.Load(data)
	require.NoError(t, err)
	p := New()
	p.Ledger = ledger.New()
	p.SetCartridge(cart)

	p.writeVRAM(0x2000, 0x11)
	p.writeVRAM(0x2800, 0x22)
	assert.Equal(t, uint8(0x11), p.readVRAM(0x2000))
	assert.Equal(t, uint8(0x22), p.readVRAM(0x2800))
}
