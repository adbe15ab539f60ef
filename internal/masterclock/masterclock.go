// Package masterclock implements the single authoritative tick counter that
// drives every other component of the core. Scanline, dot, CPU-cycle count,
// frame, and APU cycle position are all derived from or counted against this
// counter; nothing else in the core keeps an independent cycle count.
package masterclock

// MasterClock is a monotonic master-cycle counter. A CPU/APU tick occurs iff
// cycle mod 3 == 0.
type MasterClock struct {
	cycle uint64
}

// New creates a MasterClock with the given power-on phase (0, 1, or 2). The
// phase selects the alignment of CPU ticks to PPU dots and is preserved
// across Reset.
func New(phase uint8) *MasterClock {
	return &MasterClock{cycle: uint64(phase % 3)}
}

// Reset rewinds the counter to the configured power-on phase, so CPU ticks
// keep the same alignment to PPU dots after a reset as at power-on (the
// clock phase is a property of the hardware wiring, not of the interrupt
// being serviced).
func (m *MasterClock) Reset(phase uint8) {
	m.cycle = uint64(phase % 3)
}

// Advance increments the master-cycle counter by exactly 1.
func (m *MasterClock) Advance() {
	m.cycle++
}

// Cycle returns the current master-cycle count.
func (m *MasterClock) Cycle() uint64 {
	return m.cycle
}

// IsCPUTick reports whether this master-cycle is a CPU/APU tick.
func (m *MasterClock) IsCPUTick() bool {
	return m.cycle%3 == 0
}

// CPUCycles returns the derived CPU cycle count.
func (m *MasterClock) CPUCycles() uint64 {
	return m.cycle / 3
}

// SaveState captures the master-cycle counter.
func (m *MasterClock) SaveState() uint64 {
	return m.cycle
}

// LoadState restores a previously captured cycle count.
func (m *MasterClock) LoadState(cycle uint64) {
	m.cycle = cycle
}
