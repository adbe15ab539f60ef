package ppu

// nesPalette is the NTSC 2C02 color table, index -> 0x00RRGGBB.
var nesPalette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFF29B, 0xBEFBB3, 0xB8F8D8, 0xB8F8F8, 0x000000, 0x000000, 0x000000,
}

// getCoarseX/getCoarseY/getFineY/getNametable split the loopy v register.
func (p *PPU) getCoarseX() uint16    { return p.v & 0x001F }
func (p *PPU) getCoarseY() uint16    { return (p.v >> 5) & 0x001F }
func (p *PPU) getFineY() uint16      { return (p.v >> 12) & 0x0007 }
func (p *PPU) getNametable() uint16  { return (p.v >> 10) & 0x0003 }

// incrementX increments the coarse X scroll, wrapping into the next
// horizontal nametable at the tile boundary.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments fine Y, carrying into coarse Y and wrapping into the
// next vertical nametable at row 29 (the last visible row of tiles; rows 29
// and 31 both wrap without the attribute-row quirk affecting row 30 data).
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

// copyX copies the X-related bits (coarse X, horizontal nametable) from t.
func (p *PPU) copyX() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

// copyY copies the Y-related bits (coarse Y, fine Y, vertical nametable)
// from t.
func (p *PPU) copyY() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// visibleScanlineCycle implements the per-dot background pipeline for
// scanlines 0-239: the 8-dot fetch cycle, shift-register reload and shift,
// and pixel output into FrameBuffer.
func (p *PPU) visibleScanlineCycle() {
	if p.dot >= 1 && p.dot <= 256 {
		if p.renderingEnabled() {
			p.shiftBackgroundRegisters()
			p.fetchCycle()
		}
		if p.dot <= 256 && p.scanline >= 0 {
			p.outputPixel()
		}
		if p.dot == 256 && p.renderingEnabled() {
			p.incrementY()
		}
	} else if p.dot == 257 {
		if p.renderingEnabled() {
			p.copyX()
		}
		p.evaluateSprites()
	} else if p.dot >= 321 && p.dot <= 336 {
		if p.renderingEnabled() {
			p.shiftBackgroundRegisters()
			p.fetchCycle()
		}
	}

	if p.dot == 257 {
		p.loadSpriteShifters()
	}
}

// preRenderScanlineCycle implements scanline 261: identical background
// fetch timing to a visible scanline, plus the dots 280-304 copyY reload
// and the odd-frame dot skip (handled by advanceDot).
func (p *PPU) preRenderScanlineCycle() {
	if p.dot >= 280 && p.dot <= 304 && p.renderingEnabled() {
		p.copyY()
	}
	if (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336) {
		if p.renderingEnabled() {
			p.shiftBackgroundRegisters()
			p.fetchCycle()
		}
	}
	if p.dot == 256 && p.renderingEnabled() {
		p.incrementY()
	}
	if p.dot == 257 {
		if p.renderingEnabled() {
			p.copyX()
		}
		p.spriteCount = 0
	}
}

// fetchCycle performs the 8-dot NT/AT/PTlow/PThigh fetch sequence, reloading
// the shift registers every 8th dot.
func (p *PPU) fetchCycle() {
	switch p.dot % 8 {
	case 1:
		p.reloadShifters()
		p.ntByte = p.readVRAM(0x2000 | (p.v & 0x0FFF))
	case 3:
		attrAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		raw := p.readVRAM(attrAddr)
		shift := ((p.getCoarseY() & 0x02) << 1) | (p.getCoarseX() & 0x02)
		p.atByte = (raw >> shift) & 0x03
	case 5:
		base := uint16(0)
		if p.ctrl&0x10 != 0 {
			base = 0x1000
		}
		addr := base + uint16(p.ntByte)*16 + p.getFineY()
		p.ptLow = p.readVRAM(addr)
	case 7:
		base := uint16(0)
		if p.ctrl&0x10 != 0 {
			base = 0x1000
		}
		addr := base + uint16(p.ntByte)*16 + p.getFineY() + 8
		p.ptHigh = p.readVRAM(addr)
	case 0:
		if p.dot != 0 {
			p.incrementX()
		}
	}
}

// reloadShifters loads the low byte of the pattern/attribute shift
// registers with the tile fetched over the previous 8 dots. The attribute
// registers are fed a full byte of the tile's single palette bit, since the
// attribute byte covers the whole tile rather than varying per pixel.
func (p *PPU) reloadShifters() {
	p.patternLo = (p.patternLo &^ 0x00FF) | uint16(p.ptLow)
	p.patternHi = (p.patternHi &^ 0x00FF) | uint16(p.ptHigh)
	if p.atByte&0x01 != 0 {
		p.attrLo = (p.attrLo &^ 0x00FF) | 0x00FF
	} else {
		p.attrLo &^= 0x00FF
	}
	if p.atByte&0x02 != 0 {
		p.attrHi = (p.attrHi &^ 0x00FF) | 0x00FF
	} else {
		p.attrHi &^= 0x00FF
	}
}

func (p *PPU) shiftBackgroundRegisters() {
	p.patternLo <<= 1
	p.patternHi <<= 1
	p.attrLo <<= 1
	p.attrHi <<= 1
}

// outputPixel composites the background and sprite pixel for the current
// dot/scanline into FrameBuffer.
func (p *PPU) outputPixel() {
	x := p.dot - 1
	y := p.scanline
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return
	}

	bgColorIdx, bgOpaque := p.backgroundPixel(x)
	spColorIdx, spOpaque, spBehind, spIsZero := p.spritePixel(x)

	if spIsZero && bgOpaque && spOpaque && x != 255 {
		p.maybeSetSprite0Hit()
	}

	var paletteAddr uint16
	switch {
	case !bgOpaque && !spOpaque:
		paletteAddr = 0x3F00
	case !bgOpaque && spOpaque:
		paletteAddr = 0x3F10 + uint16(spColorIdx)
	case bgOpaque && !spOpaque:
		paletteAddr = 0x3F00 + uint16(bgColorIdx)
	default:
		if spBehind {
			paletteAddr = 0x3F00 + uint16(bgColorIdx)
		} else {
			paletteAddr = 0x3F10 + uint16(spColorIdx)
		}
	}

	idx := p.readPalette(paletteAddr) & 0x3F
	p.FrameBuffer[y*256+x] = nesPalette[idx] | 0xFF000000
}

// backgroundPixel reads the current background pixel out of the shift
// registers at fineX offset, honoring the left-edge clip (PPUMASK bit 1).
func (p *PPU) backgroundPixel(x int) (colorIdx uint8, opaque bool) {
	if !p.backgroundEnabled() {
		return 0, false
	}
	if x < 8 && p.mask&0x02 == 0 {
		return 0, false
	}
	shift := uint(15 - p.fineX)
	bit0 := uint8((p.patternLo >> shift) & 1)
	bit1 := uint8((p.patternHi >> shift) & 1)
	lo := (bit1 << 1) | bit0
	at0 := uint8((p.attrLo >> shift) & 1)
	at1 := uint8((p.attrHi >> shift) & 1)
	palette := (at1 << 1) | at0
	if lo == 0 {
		return 0, false
	}
	return palette<<2 | lo, true
}
