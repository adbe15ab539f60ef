// Package driver implements EmulationState, the single component that owns
// every other component and exposes tick() as the core's only entry point.
// No component here holds a reference to another; the driver borrows them
// into each other for the duration of a call, per spec.md §5.
package driver

import (
	"github.com/rambo-emu/rambo/internal/apu"
	"github.com/rambo-emu/rambo/internal/bus"
	"github.com/rambo-emu/rambo/internal/cartridge"
	"github.com/rambo-emu/rambo/internal/cpu"
	"github.com/rambo-emu/rambo/internal/dma"
	"github.com/rambo-emu/rambo/internal/input"
	"github.com/rambo-emu/rambo/internal/ledger"
	"github.com/rambo-emu/rambo/internal/masterclock"
	"github.com/rambo-emu/rambo/internal/ppu"
)

// Config selects power-on behavior that varies across real hardware units.
type Config struct {
	ClockPhase uint8 // 0, 1, or 2 — alignment of CPU ticks to PPU dots
	TraceDepth int    // ring-buffer size for the optional execution trace; 0 disables it
}

// TickResult reports what happened on the cycle just executed.
type TickResult struct {
	FrameComplete bool
}

// EmulationState owns every core component. It is the only type a host
// program needs to construct.
type EmulationState struct {
	Clock  *masterclock.MasterClock
	Bus    *bus.Bus
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Ledger *ledger.Ledger
	Input  *input.State
	Cart   *cartridge.Cartridge

	oamDMA dma.OAMEngine
	dmcDMA dma.DMCEngine

	clockPhase uint8
	trace      *traceBuffer
}

// New creates an EmulationState with no cartridge loaded. Load a cartridge
// with LoadCartridge before the first tick — reading the reset vector from
// an unbacked bus returns open-bus garbage, per spec.md §7's "programmer
// contract violation" category.
func New(cfg Config) *EmulationState {
	s := &EmulationState{
		Clock:      masterclock.New(cfg.ClockPhase),
		Bus:        bus.New(),
		PPU:        ppu.New(),
		APU:        apu.New(),
		Ledger:     ledger.New(),
		Input:      input.NewState(),
		clockPhase: cfg.ClockPhase,
	}
	s.CPU = cpu.New(s.Bus)
	s.PPU.Ledger = s.Ledger
	s.PPU.OpenBus = s.Bus.OpenBus
	s.Bus.PPU = s.PPU
	s.Bus.APU = s.APU
	s.Bus.Input = s.Input
	s.Bus.OAMDMATrigger = s.triggerOAMDMA
	if cfg.TraceDepth > 0 {
		s.trace = newTraceBuffer(cfg.TraceDepth)
	}
	return s
}

// LoadCartridge wires a parsed cartridge into the bus and PPU, then resets.
func (s *EmulationState) LoadCartridge(cart *cartridge.Cartridge) {
	s.Cart = cart
	s.Bus.Cart = cart
	s.PPU.SetCartridge(cart)
	s.Reset()
}

// Reset resets the clock (to its configured phase), ledger, PPU, APU,
// input, CPU and both DMA engines, restarting the PPU warmup counter and the
// CPU reset sequence from scratch. Bus RAM, the open-bus latch and cartridge
// memory keep their contents.
func (s *EmulationState) Reset() {
	s.Clock.Reset(s.clockPhase)
	s.Ledger.Reset()
	s.PPU.Reset()
	s.APU.Reset()
	s.Input.Reset()
	s.CPU.Reset()
	s.oamDMA = dma.OAMEngine{}
	s.dmcDMA = dma.DMCEngine{}
}

func (s *EmulationState) triggerOAMDMA(page uint8) {
	s.oamDMA.Trigger(page, s.Clock.CPUCycles())
}

// SetControllerState publishes the button mask for port (1 or 2).
func (s *EmulationState) SetControllerState(port int, mask uint8) {
	if port == 1 {
		s.Input.SetButtons1(mask)
	} else {
		s.Input.SetButtons2(mask)
	}
}

// PeekMemory reads the CPU-visible address space without side effects.
func (s *EmulationState) PeekMemory(address uint16) uint8 {
	return s.Bus.Peek(address)
}

// FrameBuffer returns the PPU's 256x240 framebuffer, one pixel per uint32
// packed as 0xAARRGGBB (blue in the low byte, alpha always 0xFF). Valid to
// read once a tick reports FrameComplete.
func (s *EmulationState) FrameBuffer() *[256 * 240]uint32 {
	return &s.PPU.FrameBuffer
}

// Tick advances the core by exactly one master cycle, in the locked order
// spec.md §4.11 requires: PPU rendering, then (on CPU-phase ticks) APU and
// the CPU's bus operation, then the PPU's post-cycle flag updates (sprite-0
// hit) so a same-cycle $2002 read never observes them early, then the
// clock.
func (s *EmulationState) Tick() TickResult {
	cycle := s.Clock.Cycle()
	isCPUPhase := s.Clock.IsCPUTick()

	ppuResult := s.PPU.Step(cycle)

	if isCPUPhase {
		s.APU.Step()
		if addr, pending := s.APU.DMARequested(); pending && !s.dmcDMA.Active() {
			s.dmcDMA.Trigger(addr)
		}
		s.stepCPUPhase(cycle)
	}

	s.PPU.CommitPostCycleFlags()
	s.Clock.Advance()

	return TickResult{FrameComplete: ppuResult.FrameComplete}
}

func (s *EmulationState) stepCPUPhase(cycle uint64) {
	s.CPU.SetIRQLine(s.APU.IRQAsserted())

	if s.Ledger.ShouldAssertNMILine(s.PPU.NMIEnabled()) {
		s.CPU.SignalNMI()
		s.Ledger.AcknowledgeCPU(cycle)
	}

	cpuCycle := s.Clock.CPUCycles()

	// A cycle that runs a DMA step, including a transfer's last one, is never
	// also a CPU cycle; the CPU resumes on the next CPU-phase tick.
	switch {
	case s.dmcDMA.Active():
		s.oamDMA.Step(s.Bus, s.writeOAM, cpuCycle, s.dmcDMA.StallsOAM())
		s.CPU.SetHalted(true)
		s.dmcDMA.Step(s.Bus, cpuCycle, s.APU.DMALoadSample)
	case s.oamDMA.Active():
		s.CPU.SetHalted(true)
		s.oamDMA.Step(s.Bus, s.writeOAM, cpuCycle, false)
	default:
		s.CPU.SetHalted(false)
	}

	s.CPU.Tick(cycle)
	s.recordTrace(cycle)
}

func (s *EmulationState) writeOAM(value uint8) {
	s.PPU.OAM[s.oamDMA.Index()] = value
}

// EmulateFrame ticks until the PPU reports a completed frame, returning the
// number of master cycles consumed.
func (s *EmulationState) EmulateFrame() uint64 {
	start := s.Clock.Cycle()
	for {
		if s.Tick().FrameComplete {
			break
		}
	}
	return s.Clock.Cycle() - start
}
