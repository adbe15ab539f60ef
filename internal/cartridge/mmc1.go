package cartridge

// mmc1 (mapper 1) is a best-effort second mapper arm demonstrating that the
// dispatch mechanism in ines.go extends without touching CPU/PPU/Bus code
// (spec.md §4.3). Only 32 KiB and 16+16 KiB PRG switching and 4/8 KiB CHR
// switching are modeled; the full MMC1 register/variant zoo (PRG-RAM
// enable, one-screen mirroring selection nuances across revisions) is not a
// spec.md requirement and is out of scope beyond this illustration.
type mmc1 struct {
	cart *Cartridge

	shift      uint8
	shiftCount uint8

	control uint8 // bit0-1 mirroring, bit2-3 PRG mode, bit4 CHR mode
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgBanks16k int
	chrBanks4k  int
}

func newMMC1(cart *Cartridge) *mmc1 {
	return &mmc1{
		cart:        cart,
		control:     0x0C, // power-on: PRG mode 3 (fix last bank)
		shift:       0,
		shiftCount:  0,
		prgBanks16k: len(cart.PrgROM) / prgBankSize,
		chrBanks4k:  len(cart.ChrROM) / (4 * 1024),
	}
}

func (m *mmc1) CPURead(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		bank, offset := m.prgBankFor(address)
		idx := bank*prgBankSize + offset
		if idx < len(m.cart.PrgROM) {
			return m.cart.PrgROM[idx]
		}
		return 0
	case address >= 0x6000:
		return m.cart.PrgRAM[address-0x6000]
	default:
		return 0
	}
}

func (m *mmc1) prgBankFor(address uint16) (bank int, offset int) {
	offset = int(address - 0x8000)
	mode := (m.control >> 2) & 0x03
	switch mode {
	case 0, 1:
		// 32 KiB switch: ignore low bit of prgBank.
		bank = int(m.prgBank&0xFE)*prgBankSize + offset
		return bank / prgBankSize, bank % prgBankSize
	case 2:
		// fix first bank at $8000, switch $C000
		if address < 0xC000 {
			return 0, offset
		}
		return int(m.prgBank), offset - prgBankSize
	default: // 3
		// fix last bank at $C000, switch $8000
		if address < 0xC000 {
			return int(m.prgBank), offset
		}
		return m.prgBanks16k - 1, offset - prgBankSize
	}
}

func (m *mmc1) CPUWrite(address uint16, value uint8) {
	if address < 0x6000 {
		return
	}
	if address < 0x8000 {
		m.cart.PrgRAM[address-0x6000] = value
		return
	}

	if value&0x80 != 0 {
		// Reset: clears shift register, forces PRG mode 3.
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (value & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	result := m.shift
	m.shift = 0
	m.shiftCount = 0

	switch {
	case address < 0xA000:
		m.control = result
		switch result & 0x03 {
		case 0:
			m.cart.Mirror = MirrorSingleScreen0
		case 1:
			m.cart.Mirror = MirrorSingleScreen1
		case 2:
			m.cart.Mirror = MirrorVertical
		case 3:
			m.cart.Mirror = MirrorHorizontal
		}
	case address < 0xC000:
		m.chrBank0 = result
	case address < 0xE000:
		m.chrBank1 = result
	default:
		m.prgBank = result & 0x0F
	}
}

func (m *mmc1) chrBankFor(address uint16) int {
	if m.chrBanks4k == 0 {
		return int(address)
	}
	chrMode4k := m.control&0x10 != 0
	bank4k := m.chrBank0
	offset := int(address)
	if chrMode4k && address >= 0x1000 {
		bank4k = m.chrBank1
		offset -= 4 * 1024
	} else if !chrMode4k {
		bank4k &^= 1 // 8 KiB mode ignores bit 0
	}
	idx := int(bank4k)*4*1024 + offset
	return idx % len(m.cart.ChrROM)
}

func (m *mmc1) PPURead(address uint16) uint8 {
	if len(m.cart.ChrROM) == 0 {
		return 0
	}
	return m.cart.ChrROM[m.chrBankFor(address)]
}

func (m *mmc1) PPUWrite(address uint16, value uint8) {
	if !m.cart.HasChrRAM || len(m.cart.ChrROM) == 0 {
		return
	}
	m.cart.ChrROM[m.chrBankFor(address)] = value
}
