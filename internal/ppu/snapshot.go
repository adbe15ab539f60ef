package ppu

// State is the PPU's full architectural state for save/restore. The
// current mid-scanline background/sprite shift registers are included so a
// restore lands exactly where the snapshot was taken, not just at the next
// dot boundary.
type State struct {
	Ctrl, Mask, Status uint8
	OAMAddr            uint8

	V, T  uint16
	FineX uint8
	W     bool

	ReadBuffer uint8

	OAM          [256]uint8
	SecondaryOAM [32]uint8
	Nametable    [0x800]uint8
	Palette      [32]uint8

	Scanline, Dot int
	FrameCount    uint64
	OddFrame      bool

	CyclesSinceReset uint64
	WarmupComplete   bool

	NtByte, AtByte, PtLow, PtHigh uint8
	PatternLo, PatternHi         uint16
	AttrLo, AttrHi               uint16

	SpriteCount       int
	SpriteIndex       [8]uint8
	SpritePatternLo   [8]uint8
	SpritePatternHi   [8]uint8
	SpriteAttr        [8]uint8
	SpriteX           [8]uint8
	Sprite0OnScanline bool

	CtrlNMIEnablePrev bool
}

// SaveState captures every field a restore needs to resume mid-frame.
func (p *PPU) SaveState() State {
	return State{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status,
		OAMAddr:           p.oamAddr,
		V:                 p.v,
		T:                 p.t,
		FineX:             p.fineX,
		W:                 p.w,
		ReadBuffer:        p.readBuffer,
		OAM:               p.OAM,
		SecondaryOAM:      p.secondaryOAM,
		Nametable:         p.nametable,
		Palette:           p.palette,
		Scanline:          p.scanline,
		Dot:               p.dot,
		FrameCount:        p.frameCount,
		OddFrame:          p.oddFrame,
		CyclesSinceReset:  p.cyclesSinceReset,
		WarmupComplete:    p.warmupComplete,
		NtByte:            p.ntByte,
		AtByte:            p.atByte,
		PtLow:             p.ptLow,
		PtHigh:            p.ptHigh,
		PatternLo:         p.patternLo,
		PatternHi:         p.patternHi,
		AttrLo:            p.attrLo,
		AttrHi:            p.attrHi,
		SpriteCount:       p.spriteCount,
		SpriteIndex:       p.spriteIndex,
		SpritePatternLo:   p.spritePatternLo,
		SpritePatternHi:   p.spritePatternHi,
		SpriteAttr:        p.spriteAttr,
		SpriteX:           p.spriteX,
		Sprite0OnScanline: p.sprite0OnScanline,
		CtrlNMIEnablePrev: p.ctrlNMIEnablePrev,
	}
}

// LoadState restores a previously captured State. The caller must re-wire
// the cartridge with SetCartridge afterward; snapshots never own it.
func (p *PPU) LoadState(s State) {
	p.ctrl, p.mask, p.status = s.Ctrl, s.Mask, s.Status
	p.oamAddr = s.OAMAddr
	p.v, p.t, p.fineX, p.w = s.V, s.T, s.FineX, s.W
	p.readBuffer = s.ReadBuffer
	p.OAM = s.OAM
	p.secondaryOAM = s.SecondaryOAM
	p.nametable = s.Nametable
	p.palette = s.Palette
	p.scanline, p.dot = s.Scanline, s.Dot
	p.frameCount = s.FrameCount
	p.oddFrame = s.OddFrame
	p.cyclesSinceReset = s.CyclesSinceReset
	p.warmupComplete = s.WarmupComplete
	p.ntByte, p.atByte, p.ptLow, p.ptHigh = s.NtByte, s.AtByte, s.PtLow, s.PtHigh
	p.patternLo, p.patternHi = s.PatternLo, s.PatternHi
	p.attrLo, p.attrHi = s.AttrLo, s.AttrHi
	p.spriteCount = s.SpriteCount
	p.spriteIndex = s.SpriteIndex
	p.spritePatternLo = s.SpritePatternLo
	p.spritePatternHi = s.SpritePatternHi
	p.spriteAttr = s.SpriteAttr
	p.spriteX = s.SpriteX
	p.sprite0OnScanline = s.Sprite0OnScanline
	p.ctrlNMIEnablePrev = s.CtrlNMIEnablePrev
}
