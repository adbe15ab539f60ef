package cpu

import "errors"

// ErrQueueNotEmpty is returned by SaveState when called mid-instruction.
// The micro-op queue holds Go closures captured over instruction-specific
// scratch state and cannot be serialized; a snapshot can only be taken at
// an instruction boundary, where the queue is always empty between Tick
// calls that complete the previous opcode and the one that fetches the
// next.
var ErrQueueNotEmpty = errors.New("cpu: cannot snapshot mid-instruction")

// State is the CPU's full architectural state for save/restore.
type State struct {
	A, X, Y, SP uint8
	PC          uint16
	C, Z, I, D, B, V, N bool
	PendingNMI  bool
	IRQLine     bool
	Halted      bool
}

// SaveState captures the CPU's architectural state. It returns
// ErrQueueNotEmpty whenever the micro-op queue is not empty (an instruction,
// reset or interrupt sequence in flight), which can be the case between any
// two driver Tick calls, including when EmulateFrame() returns.
func (cpu *CPU) SaveState() (State, error) {
	if len(cpu.queue) != 0 {
		return State{}, ErrQueueNotEmpty
	}
	return State{
		A: cpu.A, X: cpu.X, Y: cpu.Y, SP: cpu.SP,
		PC: cpu.PC,
		C:  cpu.C, Z: cpu.Z, I: cpu.I, D: cpu.D, B: cpu.B, V: cpu.V, N: cpu.N,
		PendingNMI: cpu.pendingNMI,
		IRQLine:    cpu.irqLine,
		Halted:     cpu.halted,
	}, nil
}

// LoadState restores a previously captured State. The micro-op queue is
// left empty; the next Tick call begins a fresh instruction fetch.
func (cpu *CPU) LoadState(s State) {
	cpu.A, cpu.X, cpu.Y, cpu.SP = s.A, s.X, s.Y, s.SP
	cpu.PC = s.PC
	cpu.C, cpu.Z, cpu.I, cpu.D, cpu.B, cpu.V, cpu.N = s.C, s.Z, s.I, s.D, s.B, s.V, s.N
	cpu.pendingNMI = s.PendingNMI
	cpu.irqLine = s.IRQLine
	cpu.halted = s.Halted
	cpu.queue = nil
}
