package ppu

import "github.com/rambo-emu/rambo/internal/cartridge"

// nametableIndex maps a PPU address in $2000-$2FFF (already reduced into
// that range by the $3000-$3EFF mirror) to an offset into the 2 KiB
// nametable RAM, honoring the cartridge's fixed mirroring mode.
func (p *PPU) nametableIndex(address uint16) int {
	table := (address - 0x2000) / 0x400 // 0..3
	offset := int(address) % 0x400

	switch p.mirror {
	case cartridge.MirrorHorizontal:
		// A=B (tables 0,1 -> RAM 0), C=D (tables 2,3 -> RAM 1)
		if table < 2 {
			return offset
		}
		return 0x400 + offset
	case cartridge.MirrorVertical:
		// A=C (tables 0,2 -> RAM 0), B=D (tables 1,3 -> RAM 1)
		if table == 0 || table == 2 {
			return offset
		}
		return 0x400 + offset
	case cartridge.MirrorSingleScreen0:
		return offset
	case cartridge.MirrorSingleScreen1:
		return 0x400 + offset
	default: // four-screen: all four tables distinct, using cartridge's
		// extra nametable RAM for tables 2 and 3.
		return offset // handled specially by read/write below
	}
}

func (p *PPU) readVRAM(address uint16) uint8 {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if p.cart != nil {
			return p.cart.PPURead(address)
		}
		return 0
	case address < 0x3F00:
		mirrored := 0x2000 + (address-0x2000)%0x1000
		if p.mirror == cartridge.MirrorFourScreen && p.cart != nil {
			table := (mirrored - 0x2000) / 0x400
			if table >= 2 {
				return p.cart.ExtraNametable[int(mirrored)%0x400]
			}
			return p.nametable[int(mirrored)%0x400]
		}
		return p.nametable[p.nametableIndex(mirrored)]
	default:
		return p.readPalette(address)
	}
}

func (p *PPU) writeVRAM(address uint16, value uint8) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if p.cart != nil {
			p.cart.PPUWrite(address, value)
		}
	case address < 0x3F00:
		mirrored := 0x2000 + (address-0x2000)%0x1000
		if p.mirror == cartridge.MirrorFourScreen && p.cart != nil {
			table := (mirrored - 0x2000) / 0x400
			if table >= 2 {
				p.cart.ExtraNametable[int(mirrored)%0x400] = value
				return
			}
			p.nametable[int(mirrored)%0x400] = value
			return
		}
		p.nametable[p.nametableIndex(mirrored)] = value
	default:
		p.writePalette(address, value)
	}
}

// paletteIndex maps a palette address, folding the universal-background
// mirrors ($3F10/$14/$18/$1C -> $3F00/$04/$08/$0C).
func paletteIndex(address uint16) int {
	idx := int(address-0x3F00) % 32
	if idx >= 16 && idx%4 == 0 {
		idx -= 16
	}
	return idx
}

func (p *PPU) readPalette(address uint16) uint8 {
	v := p.palette[paletteIndex(address)]
	if p.mask&0x01 != 0 { // grayscale
		v &= 0x30
	}
	return v
}

func (p *PPU) writePalette(address uint16, value uint8) {
	p.palette[paletteIndex(address)] = value & 0x3F
}
