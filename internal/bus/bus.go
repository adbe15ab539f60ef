// Package bus implements the NES CPU-visible address space: RAM mirroring,
// the open-bus latch, and dispatch into the PPU register file, APU
// registers, controller ports, and cartridge mapper.
package bus

import (
	"github.com/rambo-emu/rambo/internal/cartridge"
	"github.com/rambo-emu/rambo/internal/input"
	"github.com/rambo-emu/rambo/internal/openbus"
)

// PPURegisters is the CPU-facing surface the PPU exposes at $2000-$3FFF.
type PPURegisters interface {
	ReadRegister(address uint16, cycle uint64) uint8
	WriteRegister(address uint16, value uint8, cycle uint64)
	PeekRegister(address uint16) uint8
}

// APURegisters is the CPU-facing surface the APU exposes at $4000-$4017
// (excluding $4014, $4016 which the bus itself handles).
type APURegisters interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
	PeekStatus() uint8
}

// Bus is the $0000-$FFFF address decoder. It does not own the PPU/APU/
// cartridge/input components — the driver does — but holds the references
// it needs to dispatch to them, per spec.md §4.4's range table.
type Bus struct {
	RAM [0x800]uint8

	OpenBus *openbus.Latch

	PPU   PPURegisters
	APU   APURegisters
	Input *input.State
	Cart  *cartridge.Cartridge

	// OAMDMATrigger is invoked on a write to $4014 with the source page.
	// The driver wires this to its DMA state machine.
	OAMDMATrigger func(page uint8)
}

// New creates a bus with a fresh open-bus latch. Component references are
// wired in by the driver after all components exist.
func New() *Bus {
	return &Bus{OpenBus: openbus.New()}
}

// Read performs a CPU-visible read and updates the open-bus latch, except
// for $4015 (hardware quirk: reading APU status does not update open bus).
func (b *Bus) Read(address uint16, cycle uint64) uint8 {
	value, updatesOpenBus := b.read(address, cycle)
	if updatesOpenBus {
		b.OpenBus.Set(value, cycle)
	}
	return value
}

func (b *Bus) read(address uint16, cycle uint64) (value uint8, updatesOpenBus bool) {
	switch {
	case address < 0x2000:
		return b.RAM[address%0x0800], true
	case address < 0x4000:
		if b.PPU == nil {
			return b.OpenBus.Get(), false
		}
		return b.PPU.ReadRegister(0x2000+address%8, cycle), true
	case address == 0x4015:
		if b.APU == nil {
			return b.OpenBus.Get(), false
		}
		return b.APU.ReadStatus(), false
	case address == 0x4016:
		if b.Input == nil {
			return b.OpenBus.Get(), true
		}
		return b.Input.ReadPort1(b.OpenBus.Get()), true
	case address == 0x4017:
		if b.Input == nil {
			return b.OpenBus.Get(), true
		}
		return b.Input.ReadPort2(b.OpenBus.Get()), true
	case address < 0x4018:
		// $4000-$4013 writes-only from the CPU's perspective; $4014 is the
		// OAM DMA trigger (write-only).
		return b.OpenBus.Get(), true
	case address < 0x4020:
		// Disabled APU/IO test registers.
		return b.OpenBus.Get(), true
	default:
		if b.Cart == nil {
			return b.OpenBus.Get(), true
		}
		return b.Cart.CPURead(address), true
	}
}

// Peek reads without side effects: no $2002 flag clear, no OAMADDR
// increment, no open-bus mutation, no controller shift advance.
func (b *Bus) Peek(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return b.RAM[address%0x0800]
	case address < 0x4000:
		if b.PPU == nil {
			return b.OpenBus.Get()
		}
		return b.PPU.PeekRegister(0x2000 + address%8)
	case address == 0x4015:
		if b.APU == nil {
			return b.OpenBus.Get()
		}
		return b.APU.PeekStatus()
	case address < 0x4020:
		return b.OpenBus.Get()
	default:
		if b.Cart == nil {
			return b.OpenBus.Get()
		}
		return b.Cart.CPURead(address)
	}
}

// Write performs a CPU-visible write and updates the open-bus latch.
func (b *Bus) Write(address uint16, value uint8, cycle uint64) {
	b.OpenBus.Set(value, cycle)

	switch {
	case address < 0x2000:
		b.RAM[address%0x0800] = value
	case address < 0x4000:
		if b.PPU != nil {
			b.PPU.WriteRegister(0x2000+address%8, value, cycle)
		}
	case address == 0x4014:
		if b.OAMDMATrigger != nil {
			b.OAMDMATrigger(value)
		}
	case address == 0x4016:
		if b.Input != nil {
			b.Input.WriteStrobe(value)
		}
	case address < 0x4018:
		if b.APU != nil {
			b.APU.WriteRegister(address, value)
		}
	case address < 0x4020:
		// Disabled test registers: writes have no effect.
	default:
		if b.Cart != nil {
			b.Cart.CPUWrite(address, value)
		}
	}
}
