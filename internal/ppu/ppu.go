// Package ppu implements the 2C02 Picture Processing Unit: the
// scanline/dot state machine, loopy v/t scroll registers, background and
// sprite pipelines, VRAM/OAM/palette memory, and the CPU-visible register
// file at $2000-$3FFF.
package ppu

import (
	"github.com/rambo-emu/rambo/internal/cartridge"
	"github.com/rambo-emu/rambo/internal/ledger"
	"github.com/rambo-emu/rambo/internal/openbus"
)

const (
	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	warmupCPUCycles   = 29658
)

// Mirror mirrors cartridge.Mirror for PPU-internal nametable routing.
type Mirror = cartridge.Mirror

// StepResult reports the frame/field boundaries the driver cares about:
// when to swap the completed frame buffer out and when a VBlank span
// opened. The ledger bookkeeping for both happens inside the PPU itself,
// since only the PPU knows the exact dot these transitions land on.
type StepResult struct {
	FrameComplete    bool
	EnteredVBlankSet bool // scanline 241 dot 1
	EnteredPreRender bool // scanline 261 dot 1
}

// PPU is the 2C02 state machine.
type PPU struct {
	// CPU-visible registers.
	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8

	// Loopy scroll registers.
	v, t uint16
	fineX uint8
	w     bool

	readBuffer uint8

	// Memory.
	OAM          [256]uint8
	secondaryOAM [32]uint8
	nametable    [0x800]uint8
	palette      [32]uint8

	cart   *cartridge.Cartridge
	mirror Mirror

	Ledger *ledger.Ledger

	// OpenBus supplies PPUSTATUS's undefined bits 0-4, which read as
	// whatever last crossed the CPU bus rather than a defined value.
	OpenBus *openbus.Latch

	// Timing.
	scanline   int
	dot        int
	frameCount uint64
	oddFrame   bool

	cyclesSinceReset uint64
	warmupComplete   bool

	// Background pipeline.
	ntByte, atByte, ptLow, ptHigh uint8
	patternLo, patternHi          uint16
	attrLo, attrHi                uint16

	// Sprite pipeline (evaluated for the *next* scanline while this one
	// renders, per hardware).
	spriteCount       int
	spriteIndex       [8]uint8
	spritePatternLo   [8]uint8
	spritePatternHi   [8]uint8
	spriteAttr        [8]uint8
	spriteX           [8]uint8
	sprite0OnScanline bool

	FrameBuffer [256 * 240]uint32

	ctrlNMIEnablePrev bool

	// pendingSprite0Hit holds a sprite-0 hit detected during this cycle's
	// rendering until CommitPostCycleFlags applies it, so a same-cycle CPU
	// $2002 read (which runs first, per spec.md §4.11's locked sub-cycle
	// order) observes the pre-hit bit rather than the post-hit one.
	pendingSprite0Hit bool
}

// New creates a PPU in its power-on state.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// SetCartridge wires the cartridge whose CHR memory and mirroring mode back
// this PPU's VRAM. Called once by the driver after cartridge load.
func (p *PPU) SetCartridge(cart *cartridge.Cartridge) {
	p.cart = cart
	if cart != nil {
		p.mirror = cart.Mirror
	}
}

// Reset returns the PPU to its power-on state. PPUCTRL writes before warmup
// completes are discarded by writeCtrl consulting warmupComplete; writes to
// the other registers are not gated.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t, p.fineX, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.scanline = 0
	p.dot = 0
	p.oddFrame = false
	p.cyclesSinceReset = 0
	p.warmupComplete = false
	p.spriteCount = 0
	p.ctrlNMIEnablePrev = false
}

// renderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) renderingEnabled() bool {
	return p.mask&0x18 != 0
}

// backgroundEnabled/spritesEnabled split the combined mask for pipeline use.
func (p *PPU) backgroundEnabled() bool { return p.mask&0x08 != 0 }
func (p *PPU) spritesEnabled() bool    { return p.mask&0x10 != 0 }

// NMIEnabled reports PPUCTRL bit 7.
func (p *PPU) NMIEnabled() bool { return p.ctrl&0x80 != 0 }

// Scanline/Dot/FrameCount expose PPU position for the driver and for tests.
func (p *PPU) Scanline() int        { return p.scanline }
func (p *PPU) Dot() int             { return p.dot }
func (p *PPU) FrameCount() uint64   { return p.frameCount }
func (p *PPU) SetFrameCount(n uint64) { p.frameCount = n }

// Step advances the PPU by exactly one master cycle (= one PPU dot) and
// returns the frame/field boundaries crossed. cycle is the system master
// cycle counter, used only to timestamp ledger events.
func (p *PPU) Step(cycle uint64) StepResult {
	var result StepResult

	if !p.warmupComplete {
		p.cyclesSinceReset++
		if p.cyclesSinceReset >= warmupCPUCycles*3 {
			p.warmupComplete = true
		}
	}

	switch {
	case p.scanline >= 0 && p.scanline <= 239:
		p.visibleScanlineCycle()
	case p.scanline == 240:
		// Post-render: idle.
	case p.scanline == 241:
		if p.dot == 1 {
			result.EnteredVBlankSet = true
			p.enterVBlank(cycle)
		}
	case p.scanline == 261:
		if p.dot == 1 {
			result.EnteredPreRender = true
			p.status &^= 0x80 | 0x40 | 0x20
			p.pendingSprite0Hit = false
			p.Ledger.RecordVBlankSpanEnd(cycle)
		}
		p.preRenderScanlineCycle()
	}

	p.advanceDot(&result)
	return result
}

// CommitPostCycleFlags applies flag effects computed while rendering this
// cycle that spec.md's locked sub-cycle order (§4.11) requires land after
// the CPU's bus operation for the same master cycle, if any: a sprite-0 hit
// detected during this dot's pixel output. The driver calls this once per
// Tick, after the CPU phase (if this was a CPU-phase cycle).
func (p *PPU) CommitPostCycleFlags() {
	if p.pendingSprite0Hit {
		p.status |= 0x40
		p.pendingSprite0Hit = false
	}
}

// enterVBlank applies scanline 241 dot 1's flag set, honoring a race-window
// preventer armed by a $2002 read one PPU cycle earlier.
func (p *PPU) enterVBlank(cycle uint64) {
	if p.Ledger.ShouldPreventVBLSet(cycle) {
		p.Ledger.ClearRaceWindowPreventer()
		return
	}
	p.status |= 0x80
	p.Ledger.RecordVBlankSet(cycle, p.NMIEnabled())
}

func (p *PPU) advanceDot(result *StepResult) {
	p.dot++
	if p.dot > dotsPerScanline-1 {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.frameCount++
			p.oddFrame = !p.oddFrame
			result.FrameComplete = true
			// Odd-frame cycle skip: dot 0 of scanline 0 is skipped when
			// rendering is enabled, shortening the frame by one PPU cycle.
			if p.oddFrame && p.renderingEnabled() {
				p.dot = 1
			}
		}
	}
}
