package cartridge

// MapperState is implemented by mapper variants that carry switchable-bank
// state beyond the Cartridge struct itself. NROM has none; MMC1 does.
type MapperState interface {
	saveMapperState() mmc1State
	loadMapperState(mmc1State)
}

// State is a cartridge's full state for save/restore: the PRG-RAM and
// four-screen extra nametable (the only RAM a cartridge owns), the current
// mirroring mode (mappers can change it at runtime), and, when present, the
// mapper's own bank-register state.
type State struct {
	PrgRAM         [0x2000]uint8
	ExtraNametable [0x800]uint8
	Mirror         Mirror

	HasMapperState bool
	Mapper         mmc1State
}

// mmc1State is MMC1's shift register and bank selections. Declared here
// rather than in mmc1.go since it exists purely to serialize that mapper's
// fields.
type mmc1State struct {
	Shift      uint8
	ShiftCount uint8
	Control    uint8
	ChrBank0   uint8
	ChrBank1   uint8
	PrgBank    uint8
}

func (m *mmc1) saveMapperState() mmc1State {
	return mmc1State{
		Shift:      m.shift,
		ShiftCount: m.shiftCount,
		Control:    m.control,
		ChrBank0:   m.chrBank0,
		ChrBank1:   m.chrBank1,
		PrgBank:    m.prgBank,
	}
}

func (m *mmc1) loadMapperState(s mmc1State) {
	m.shift = s.Shift
	m.shiftCount = s.ShiftCount
	m.control = s.Control
	m.chrBank0 = s.ChrBank0
	m.chrBank1 = s.ChrBank1
	m.prgBank = s.PrgBank
}

// SaveState captures the cartridge's RAM and mutable mapper state. PRG/CHR
// ROM are never included: they are load-time immutable and the host already
// holds the file that produced them.
func (c *Cartridge) SaveState() State {
	s := State{
		PrgRAM:         c.PrgRAM,
		ExtraNametable: c.ExtraNametable,
		Mirror:         c.Mirror,
	}
	if ms, ok := c.mapper.(MapperState); ok {
		s.HasMapperState = true
		s.Mapper = ms.saveMapperState()
	}
	return s
}

// LoadState restores a previously captured State onto a Cartridge already
// loaded from the same ROM image.
func (c *Cartridge) LoadState(s State) {
	c.PrgRAM = s.PrgRAM
	c.ExtraNametable = s.ExtraNametable
	c.Mirror = s.Mirror
	if s.HasMapperState {
		if ms, ok := c.mapper.(MapperState); ok {
			ms.loadMapperState(s.Mapper)
		}
	}
}
