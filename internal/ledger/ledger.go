// Package ledger implements the VBlank/NMI event ledger.
//
// The NES's apparent "VBlank flag" (bit 7 of $2002) and its NMI line are
// semantically distinct: the flag is cleared by a $2002 read but the NMI
// latch inside the CPU is not. Games exploit this. A naive implementation
// that stores a single vblank bool loses information and produces race
// conditions depending on which order the PPU set and the CPU read happened
// in the same cycle. This ledger records timestamps of events; derived
// predicates answer "is the flag visible?" and "should NMI be asserted?"
// without ambiguity. Do not collapse this back into a single boolean.
package ledger

// Ledger is pure data: the driver records events via the recorder methods
// and queries the derived predicates. It never decides anything itself.
type Ledger struct {
	lastSetCycle        uint64
	lastClearCycle      uint64
	lastStatusReadCycle uint64
	lastCtrlToggleCycle uint64
	lastCPUAckCycle     uint64

	spanActive     bool
	nmiEdgePending bool

	// preventVBLSetCycle models the race where a $2002 read one PPU cycle
	// before VBlank would set suppresses that frame's set entirely.
	preventVBLSetCycle uint64
	hasPreventCycle    bool
}

// New creates a fresh ledger in its power-on state.
func New() *Ledger {
	return &Ledger{}
}

// Reset returns the ledger to its power-on state.
func (l *Ledger) Reset() {
	*l = Ledger{}
}

// RecordVBlankSet records scanline 241 dot 1 setting the VBlank flag. If NMI
// was already enabled and the span was not previously active, an NMI edge
// is armed.
func (l *Ledger) RecordVBlankSet(cycle uint64, nmiEnabled bool) {
	wasActive := l.spanActive
	l.spanActive = true
	l.lastSetCycle = cycle
	if nmiEnabled && !wasActive {
		l.nmiEdgePending = true
	}
}

// RecordVBlankSpanEnd records scanline 261 dot 1 clearing the VBlank span.
// This does NOT clear nmiEdgePending — an armed-but-unacknowledged NMI
// survives into the next frame's pre-render clear.
func (l *Ledger) RecordVBlankSpanEnd(cycle uint64) {
	l.spanActive = false
	l.lastClearCycle = cycle
}

// RecordStatusRead records a $2002 read. It does NOT clear nmiEdgePending
// and does NOT clear spanActive — it only moves the "last clear" timestamp,
// which is how IsReadableFlagSet derives "the read cleared the visible
// flag" without an explicit boolean.
func (l *Ledger) RecordStatusRead(cycle uint64) {
	l.lastStatusReadCycle = cycle
	l.lastClearCycle = cycle
}

// RecordCtrlToggle records a PPUCTRL write changing the NMI-enable bit. A
// rising edge while the VBlank span is already active arms an NMI edge
// (this is how enabling NMI mid-VBlank can still fire one).
func (l *Ledger) RecordCtrlToggle(cycle uint64, oldEnable, newEnable bool) {
	l.lastCtrlToggleCycle = cycle
	if !oldEnable && newEnable && l.spanActive {
		l.nmiEdgePending = true
	}
}

// AcknowledgeCPU records the CPU having observed and serviced an NMI. This
// is the only thing that clears nmiEdgePending.
func (l *Ledger) AcknowledgeCPU(cycle uint64) {
	l.nmiEdgePending = false
	l.lastCPUAckCycle = cycle
}

// ArmRaceWindowPreventer records that the CPU read $2002 on scanline 241
// dot 0, one PPU cycle before VBlank would set — hardware never sets the
// flag that frame.
func (l *Ledger) ArmRaceWindowPreventer(cycle uint64) {
	l.preventVBLSetCycle = cycle
	l.hasPreventCycle = true
}

// ShouldPreventVBLSet reports whether the PPU's 241.1 set should be skipped
// for this cycle, per the armed race-window preventer.
func (l *Ledger) ShouldPreventVBLSet(cycle uint64) bool {
	return l.hasPreventCycle && l.preventVBLSetCycle == cycle
}

// ClearRaceWindowPreventer disarms the preventer; called once the PPU has
// consulted it for this frame's 241.1 dot, since it only ever applies once.
func (l *Ledger) ClearRaceWindowPreventer() {
	l.hasPreventCycle = false
}

// IsReadableFlagSet answers "does a $2002 read at currentCycle observe bit 7
// set?" without an explicit boolean field.
func (l *Ledger) IsReadableFlagSet(currentCycle uint64) bool {
	_ = currentCycle
	if !l.spanActive {
		return false
	}
	if l.lastStatusReadCycle == l.lastSetCycle {
		// Race: a read landing on the exact set cycle still observes the
		// flag as set (hardware sees old and new value ORed on the same
		// edge) but the read suppresses the NMI that would have resulted.
		return true
	}
	if l.lastClearCycle > l.lastSetCycle {
		return false
	}
	return true
}

// ShouldAssertNMILine answers "is the PPU's NMI output line currently
// high?" NMI requires: enabled, an unacknowledged edge, and that the edge
// was not suppressed by a read landing on the exact set cycle.
func (l *Ledger) ShouldAssertNMILine(nmiEnabled bool) bool {
	return nmiEnabled && l.nmiEdgePending && l.lastStatusReadCycle != l.lastSetCycle
}

// SpanActive reports whether a VBlank span is currently open.
func (l *Ledger) SpanActive() bool {
	return l.spanActive
}

// NMIEdgePending reports whether an NMI edge is armed and unacknowledged.
func (l *Ledger) NMIEdgePending() bool {
	return l.nmiEdgePending
}

// State is the ledger's full internal state, exported for snapshotting
// (Ledger's own fields stay unexported so nothing outside this package can
// derive ad hoc predicates from raw timestamps).
type State struct {
	LastSetCycle        uint64
	LastClearCycle      uint64
	LastStatusReadCycle uint64
	LastCtrlToggleCycle uint64
	LastCPUAckCycle     uint64
	SpanActive          bool
	NMIEdgePending      bool
	PreventVBLSetCycle  uint64
	HasPreventCycle     bool
}

// SaveState captures the ledger's full internal state.
func (l *Ledger) SaveState() State {
	return State{
		LastSetCycle:        l.lastSetCycle,
		LastClearCycle:      l.lastClearCycle,
		LastStatusReadCycle: l.lastStatusReadCycle,
		LastCtrlToggleCycle: l.lastCtrlToggleCycle,
		LastCPUAckCycle:     l.lastCPUAckCycle,
		SpanActive:          l.spanActive,
		NMIEdgePending:      l.nmiEdgePending,
		PreventVBLSetCycle:  l.preventVBLSetCycle,
		HasPreventCycle:     l.hasPreventCycle,
	}
}

// LoadState restores a previously captured state.
func (l *Ledger) LoadState(s State) {
	l.lastSetCycle = s.LastSetCycle
	l.lastClearCycle = s.LastClearCycle
	l.lastStatusReadCycle = s.LastStatusReadCycle
	l.lastCtrlToggleCycle = s.LastCtrlToggleCycle
	l.lastCPUAckCycle = s.LastCPUAckCycle
	l.spanActive = s.SpanActive
	l.nmiEdgePending = s.NMIEdgePending
	l.preventVBLSetCycle = s.PreventVBLSetCycle
	l.hasPreventCycle = s.HasPreventCycle
}
