// Package dma implements the two hardware DMA engines that steal CPU
// cycles: OAM DMA ($4014, a 256-byte block copy into PPU OAM) and DMC DMA
// (the APU's sample-byte fetch). Both run as small cycle-stepped state
// machines rather than an instantaneous memory-to-memory copy, because a
// CPU instruction can be interrupted mid-execution by either, and because
// the two contend for the same stolen cycles under documented priority
// rules (spec.md §4.9): DMC wins the cycle it needs, delaying OAM DMA's
// get/put sequence by one cycle when they collide (OAM DMA's alignment
// wait is not delayed).
package dma

// BusReader/BusWriter are the narrow bus surfaces the DMA engines need; the
// driver wires in its *bus.Bus concrete type.
type BusReader interface {
	Read(address uint16, cycle uint64) uint8
}

type BusWriter interface {
	Write(address uint16, value uint8, cycle uint64)
}

// OAMPhase is the OAM DMA engine's internal state.
type OAMPhase int

const (
	OAMIdle OAMPhase = iota
	OAMAligning        // waiting for an even CPU cycle before the transfer starts
	OAMReading         // odd half-cycle: read source byte
	OAMWriting         // even half-cycle: write to OAMDATA
)

// OAMEngine copies 256 bytes from $XX00-$XXFF into PPU OAM, costing 513
// CPU cycles (514 if it starts on an odd CPU cycle, for the extra
// alignment wait).
type OAMEngine struct {
	phase      OAMPhase
	sourcePage uint8
	index      int
	readByte   uint8
	startedOdd bool
}

// Trigger arms a transfer from the given page, to begin resolving on the
// next cycle boundary. startCycle is the CPU cycle count the write to
// $4014 landed on.
func (e *OAMEngine) Trigger(page uint8, startCycle uint64) {
	e.phase = OAMAligning
	e.sourcePage = page
	e.index = 0
	e.startedOdd = startCycle%2 != 0
}

// Active reports whether a transfer is in progress (the CPU must be halted).
func (e *OAMEngine) Active() bool {
	return e.phase != OAMIdle
}

// Index returns the OAM offset the next write (if any) will land on. The
// caller's oamWriter callback uses this to address the real OAM array,
// since the engine only tracks the offset, not the destination memory.
func (e *OAMEngine) Index() int {
	return e.index
}

// Step advances the engine by one CPU cycle, servicing one read or write
// per call. dmcStalling, when true, means the DMC engine is using this
// cycle instead — OAM DMA's read/write step is deferred by one cycle.
func (e *OAMEngine) Step(bus BusReader, oamWriter func(value uint8), cpuCycle uint64, dmcStalling bool) {
	switch e.phase {
	case OAMIdle:
		return
	case OAMAligning:
		if !e.startedOdd || cpuCycle%2 == 0 {
			e.phase = OAMReading
		}
		return
	}

	if dmcStalling {
		return
	}

	switch e.phase {
	case OAMReading:
		address := uint16(e.sourcePage)<<8 | uint16(e.index)
		e.readByte = bus.Read(address, cpuCycle)
		e.phase = OAMWriting
	case OAMWriting:
		oamWriter(e.readByte)
		e.index++
		if e.index >= 256 {
			e.phase = OAMIdle
			return
		}
		e.phase = OAMReading
	}
}

// DMCPhase is the DMC DMA engine's internal state.
type DMCPhase int

const (
	DMCIdle DMCPhase = iota
	DMCHalt          // phase 1: halt cycle, claims the bus
	DMCDummy1        // phase 2: dummy cycle, OAM DMA may still use the bus
	DMCDummy2        // phase 3: dummy cycle, OAM DMA may still use the bus
	DMCFetch         // phase 4: the actual sample byte read, claims the bus
)

// DMCEngine fetches one sample byte for the APU's delta modulation channel:
// a halt cycle, two dummy cycles, then the fetch — 4 CPU cycles total. It
// only contests the bus with OAM DMA during its halt and fetch phases; the
// two middle cycles let OAM DMA continue uninterrupted (spec.md §4.9).
type DMCEngine struct {
	phase   DMCPhase
	address uint16
}

// Trigger arms a fetch from address.
func (e *DMCEngine) Trigger(address uint16) {
	e.phase = DMCHalt
	e.address = address
}

// Active reports whether a fetch is in progress.
func (e *DMCEngine) Active() bool {
	return e.phase != DMCIdle
}

// StallsOAM reports whether this cycle claims the bus exclusively, pausing
// any OAM DMA transfer in progress.
func (e *DMCEngine) StallsOAM() bool {
	return e.phase == DMCHalt || e.phase == DMCFetch
}

// Step advances the engine by one CPU cycle. When the fetch completes it
// invokes deliver with the byte read.
func (e *DMCEngine) Step(bus BusReader, cpuCycle uint64, deliver func(value uint8)) {
	switch e.phase {
	case DMCIdle:
		return
	case DMCHalt:
		e.phase = DMCDummy1
	case DMCDummy1:
		e.phase = DMCDummy2
	case DMCDummy2:
		e.phase = DMCFetch
	case DMCFetch:
		value := bus.Read(e.address, cpuCycle)
		deliver(value)
		e.phase = DMCIdle
	}
}
