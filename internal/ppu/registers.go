package ppu

// ReadRegister handles a CPU read of one of the eight PPU registers, mapped
// to $2000-$2007 by the bus. Only PPUSTATUS, OAMDATA and PPUDATA are
// readable; the rest read as zero.
func (p *PPU) ReadRegister(address uint16, cycle uint64) uint8 {
	switch address {
	case 0x2002:
		return p.readStatus(cycle)
	case 0x2004:
		return p.OAM[p.oamAddr]
	case 0x2007:
		return p.readData()
	default:
		return 0
	}
}

// PeekRegister reads a register without side effects: no flag clear, no w
// toggle, no NMI deassertion, no buffer advance, no OAMADDR increment.
func (p *PPU) PeekRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		status := p.status & 0xE0
		if p.Ledger.IsReadableFlagSet(0) {
			status |= 0x80
		} else {
			status &^= 0x80
		}
		return status | p.openBusBits()
	case 0x2004:
		return p.OAM[p.oamAddr]
	case 0x2007:
		return p.readBuffer
	default:
		return 0
	}
}

func (p *PPU) readStatus(cycle uint64) uint8 {
	if p.scanline == 241 && p.dot == 1 {
		// p.dot is the dot the next Step renders, so (241, 1) means this
		// read landed on the cycle that rendered dot 0, one PPU cycle before
		// the flag would be set; that suppresses the frame's set entirely.
		p.Ledger.ArmRaceWindowPreventer(cycle + 1)
	}

	status := p.status & 0x60
	if p.Ledger.IsReadableFlagSet(cycle) {
		status |= 0x80
	}
	status |= p.openBusBits()

	p.Ledger.RecordStatusRead(cycle)
	p.status &^= 0x80
	p.w = false
	return status
}

// openBusBits returns the undefined low 5 bits of a PPUSTATUS read: the
// NES data bus leaves these floating at whatever last crossed it.
func (p *PPU) openBusBits() uint8 {
	if p.OpenBus == nil {
		return 0
	}
	return p.OpenBus.GetInternal(0x1F)
}

func (p *PPU) readData() uint8 {
	address := p.v & 0x3FFF
	var value uint8
	if address >= 0x3F00 {
		// Palette reads bypass the buffer and return immediately, but the
		// buffer is still refilled from the "shadowed" nametable address.
		value = p.readPalette(address)
		p.readBuffer = p.readVRAM(address - 0x1000)
	} else {
		value = p.readBuffer
		p.readBuffer = p.readVRAM(address)
	}
	p.incrementV()
	return value
}

// WriteRegister handles a CPU write to one of the eight PPU registers.
func (p *PPU) WriteRegister(address uint16, value uint8, cycle uint64) {
	switch address {
	case 0x2000:
		p.writeCtrl(value, cycle)
	case 0x2001:
		p.mask = value
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.OAM[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writeScroll(value)
	case 0x2006:
		p.writeAddr(value)
	case 0x2007:
		p.writeData(value)
	}
}

func (p *PPU) writeCtrl(value uint8, cycle uint64) {
	if !p.warmupComplete {
		return
	}
	oldEnable := p.NMIEnabled()
	p.ctrl = value
	p.t = (p.t &^ 0x0C00) | (uint16(value&0x03) << 10)
	newEnable := p.NMIEnabled()
	if oldEnable != newEnable {
		p.Ledger.RecordCtrlToggle(cycle, oldEnable, newEnable)
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = (p.t &^ 0x001F) | uint16(value>>3)
		p.fineX = value & 0x07
	} else {
		p.t = (p.t &^ 0x73E0) | (uint16(value&0xF8) << 2) | (uint16(value&0x07) << 12)
	}
	p.w = !p.w
}

func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t &^ 0x7F00) | (uint16(value&0x3F) << 8)
	} else {
		p.t = (p.t &^ 0x00FF) | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

func (p *PPU) writeData(value uint8) {
	p.writeVRAM(p.v&0x3FFF, value)
	p.incrementV()
}

func (p *PPU) incrementV() {
	if p.ctrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}
