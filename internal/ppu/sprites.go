package ppu

// evaluateSprites scans primary OAM for sprites intersecting the next
// scanline, filling secondaryOAM with up to 8 entries. Hardware does this
// incrementally across dots 65-256 and has a well-known bug where, once 8
// sprites are found, the byte-within-entry counter keeps incrementing
// instead of resetting to the next sprite's Y byte — causing it to compare
// non-Y bytes against the scanline and set the overflow flag at the wrong
// times. We reproduce the bug's end result (spurious overflow sets) without
// reproducing the cycle-by-cycle stepping, since nothing observable depends
// on the intermediate dots.
func (p *PPU) evaluateSprites() {
	p.spriteCount = 0
	p.sprite0OnScanline = false
	spriteHeight := 8
	if p.ctrl&0x20 != 0 {
		spriteHeight = 16
	}

	targetLine := p.scanline
	n := 0
	for ; n < 64 && p.spriteCount < 8; n++ {
		y := int(p.OAM[n*4])
		row := targetLine - y
		if row < 0 || row >= spriteHeight {
			continue
		}
		if n == 0 {
			p.sprite0OnScanline = true
		}
		p.secondaryOAM[p.spriteCount*4+0] = p.OAM[n*4+0]
		p.secondaryOAM[p.spriteCount*4+1] = p.OAM[n*4+1]
		p.secondaryOAM[p.spriteCount*4+2] = p.OAM[n*4+2]
		p.secondaryOAM[p.spriteCount*4+3] = p.OAM[n*4+3]
		p.spriteIndex[p.spriteCount] = uint8(n)
		p.spriteCount++
	}

	// Emulate the diagonal-search overflow bug: continue scanning with a
	// misaligned stride and set overflow if any byte it lands on happens to
	// put that sprite in range.
	if p.spriteCount == 8 {
		m := 0
		for n < 64 {
			y := int(p.OAM[n*4+m])
			row := targetLine - y
			if row >= 0 && row < spriteHeight {
				p.status |= 0x20
				break
			}
			m = (m + 1) % 4
			n++
		}
	}
}

// loadSpriteShifters fetches pattern data for each evaluated sprite,
// honoring horizontal/vertical flip and 8x16 tall-sprite tile selection.
func (p *PPU) loadSpriteShifters() {
	spriteHeight := 8
	if p.ctrl&0x20 != 0 {
		spriteHeight = 16
	}

	for i := 0; i < p.spriteCount; i++ {
		y := p.secondaryOAM[i*4+0]
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		x := p.secondaryOAM[i*4+3]

		row := p.scanline - int(y)
		if row < 0 {
			row = 0
		}
		if attr&0x80 != 0 { // vertical flip
			row = spriteHeight - 1 - row
		}

		var base uint16
		var tileIndex uint16
		if spriteHeight == 16 {
			base = uint16(tile&0x01) * 0x1000
			tileIndex = uint16(tile &^ 0x01)
			if row >= 8 {
				tileIndex++
				row -= 8
			}
		} else {
			if p.ctrl&0x08 != 0 {
				base = 0x1000
			}
			tileIndex = uint16(tile)
		}

		addr := base + tileIndex*16 + uint16(row)
		lo := p.readVRAM(addr)
		hi := p.readVRAM(addr + 8)
		if attr&0x40 != 0 { // horizontal flip
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.spritePatternLo[i] = lo
		p.spritePatternHi[i] = hi
		p.spriteAttr[i] = attr
		p.spriteX[i] = x
	}
	for i := p.spriteCount; i < 8; i++ {
		p.spritePatternLo[i] = 0
		p.spritePatternHi[i] = 0
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixel finds the highest-priority (lowest-index) opaque sprite pixel
// at dot x by comparing x against each evaluated sprite's X position.
func (p *PPU) spritePixel(x int) (colorIdx uint8, opaque, behind, isSpriteZero bool) {
	if !p.spritesEnabled() {
		return 0, false, false, false
	}
	if x < 8 && p.mask&0x04 == 0 {
		return 0, false, false, false
	}

	for i := 0; i < p.spriteCount; i++ {
		offset := x - int(p.spriteX[i])
		if offset < 0 || offset > 7 {
			continue
		}
		bit := uint(7 - offset)
		lo := (p.spritePatternLo[i] >> bit) & 1
		hi := (p.spritePatternHi[i] >> bit) & 1
		pixel := (hi << 1) | lo
		if pixel == 0 {
			continue
		}
		palette := p.spriteAttr[i] & 0x03
		return palette<<2 | pixel, true, p.spriteAttr[i]&0x20 != 0, p.spriteIndex[i] == 0 && p.sprite0OnScanline
	}
	return 0, false, false, false
}

// maybeSetSprite0Hit records that this dot's rendering hit sprite 0; the
// status bit itself isn't written until CommitPostCycleFlags, so a
// same-cycle CPU $2002 read sees the pre-hit value.
func (p *PPU) maybeSetSprite0Hit() {
	if p.status&0x40 == 0 {
		p.pendingSprite0Hit = true
	}
}
