package cpu

// instruction describes one opcode: its addressing mode, what category of
// bus access it needs (read/write/RMW/branch/...), and the operation
// itself. Only the field matching kind is ever populated.
type instruction struct {
	name    string
	mode    addrMode
	kind    opKind
	read    func(cpu *CPU, v uint8)
	write   func(cpu *CPU) uint8
	rmw     func(cpu *CPU, v uint8) uint8
	implied func(cpu *CPU)
	branch  func(cpu *CPU) bool
}

func readOp(name string, mode addrMode, fn func(*CPU, uint8)) instruction {
	return instruction{name: name, mode: mode, kind: kindRead, read: fn}
}

func writeOp(name string, mode addrMode, fn func(*CPU) uint8) instruction {
	return instruction{name: name, mode: mode, kind: kindWrite, write: fn}
}

func rmwOp(name string, mode addrMode, fn func(*CPU, uint8) uint8) instruction {
	return instruction{name: name, mode: mode, kind: kindRMW, rmw: fn}
}

func accOp(name string, fn func(*CPU, uint8) uint8) instruction {
	return instruction{name: name, mode: modeAccumulator, kind: kindAccumulator, rmw: fn}
}

func impliedOp(name string, fn func(*CPU)) instruction {
	return instruction{name: name, mode: modeImplied, kind: kindImplied, implied: fn}
}

func branchOp(name string, fn func(*CPU) bool) instruction {
	return instruction{name: name, mode: modeRelative, kind: kindBranch, branch: fn}
}

func pushOp(name string, fn func(*CPU) uint8) instruction {
	return instruction{name: name, mode: modeImplied, kind: kindPush, write: fn}
}

func pullOp(name string, fn func(*CPU, uint8)) instruction {
	return instruction{name: name, mode: modeImplied, kind: kindPull, read: fn}
}

// --- load/store ---

func lda(c *CPU, v uint8) { c.A = v; c.setZN(c.A) }
func ldx(c *CPU, v uint8) { c.X = v; c.setZN(c.X) }
func ldy(c *CPU, v uint8) { c.Y = v; c.setZN(c.Y) }
func sta(c *CPU) uint8    { return c.A }
func stx(c *CPU) uint8    { return c.X }
func sty(c *CPU) uint8    { return c.Y }

// --- arithmetic ---

func adc(c *CPU, v uint8) {
	sum := uint16(c.A) + uint16(v)
	if c.C {
		sum++
	}
	result := uint8(sum)
	c.V = (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.C = sum > 0xFF
	c.A = result
	c.setZN(c.A)
}

func sbc(c *CPU, v uint8) { adc(c, ^v) }

func and(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }
func ora(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }
func eor(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }

func compare(c *CPU, reg, v uint8) {
	result := reg - v
	c.C = reg >= v
	c.setZN(result)
}

func cmp(c *CPU, v uint8) { compare(c, c.A, v) }
func cpx(c *CPU, v uint8) { compare(c, c.X, v) }
func cpy(c *CPU, v uint8) { compare(c, c.Y, v) }

func bit(c *CPU, v uint8) {
	c.Z = c.A&v == 0
	c.N = v&nFlagMask != 0
	c.V = v&vFlagMask != 0
}

// --- read-modify-write ---

func asl(c *CPU, v uint8) uint8 {
	c.C = v&0x80 != 0
	r := v << 1
	c.setZN(r)
	return r
}

func lsr(c *CPU, v uint8) uint8 {
	c.C = v&0x01 != 0
	r := v >> 1
	c.setZN(r)
	return r
}

func rol(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 1
	}
	c.C = v&0x80 != 0
	r := v<<1 | carryIn
	c.setZN(r)
	return r
}

func ror(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	c.C = v&0x01 != 0
	r := v>>1 | carryIn
	c.setZN(r)
	return r
}

func incOp(c *CPU, v uint8) uint8 { r := v + 1; c.setZN(r); return r }
func decOp(c *CPU, v uint8) uint8 { r := v - 1; c.setZN(r); return r }

// --- unofficial combined RMW opcodes ---

func slo(c *CPU, v uint8) uint8 { r := asl(c, v); c.A |= r; c.setZN(c.A); return r }
func rla(c *CPU, v uint8) uint8 { r := rol(c, v); c.A &= r; c.setZN(c.A); return r }
func sre(c *CPU, v uint8) uint8 { r := lsr(c, v); c.A ^= r; c.setZN(c.A); return r }
func rra(c *CPU, v uint8) uint8 { r := ror(c, v); adc(c, r); return r }
func dcp(c *CPU, v uint8) uint8 { r := decOp(c, v); compare(c, c.A, r); return r }
func isb(c *CPU, v uint8) uint8 { r := incOp(c, v); sbc(c, r); return r }

func lax(c *CPU, v uint8) { c.A = v; c.X = v; c.setZN(v) }
func sax(c *CPU) uint8    { return c.A & c.X }

// --- unstable unofficial opcodes ---
//
// These exist on real silicon but their results depend on bus capacitance
// and analog effects that vary between consoles; the values below follow
// the commonly-agreed nesdev.org behavior (the "assume 0xFF" constant for
// the magic-AND opcodes), which is what every game or test ROM relying on
// them in practice expects.

func anc(c *CPU, v uint8) {
	c.A &= v
	c.setZN(c.A)
	c.C = c.A&0x80 != 0
}

func alr(c *CPU, v uint8) {
	c.A &= v
	c.C = c.A&0x01 != 0
	c.A >>= 1
	c.setZN(c.A)
}

func arr(c *CPU, v uint8) {
	c.A &= v
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	c.A = (c.A >> 1) | carryIn
	c.setZN(c.A)
	c.C = c.A&0x40 != 0
	c.V = (c.A>>6)&1^(c.A>>5)&1 != 0
}

func ane(c *CPU, v uint8) {
	c.A = (c.A | 0xFF) & c.X & v
	c.setZN(c.A)
}

func lxa(c *CPU, v uint8) {
	c.A = (c.A | 0xFF) & v
	c.X = c.A
	c.setZN(c.A)
}

func sbx(c *CPU, v uint8) {
	t := c.A & c.X
	c.C = t >= v
	c.X = t - v
	c.setZN(c.X)
}

func las(c *CPU, v uint8) {
	c.A = v & c.SP
	c.X = c.A
	c.SP = c.A
	c.setZN(c.A)
}

// highPlusOne returns the high byte of the just-resolved operand address
// plus one: the "magic AND" term SHA/SHX/SHY/TAS combine with a register.
// The operand address is the final, index-corrected one, so when indexing
// crosses a page the high byte used is the one after the carry-out.
func highPlusOne(c *CPU) uint8 { return uint8(c.operandAddr>>8) + 1 }

func sha(c *CPU) uint8 { return c.A & c.X & highPlusOne(c) }
func shx(c *CPU) uint8 { return c.X & highPlusOne(c) }
func shy(c *CPU) uint8 { return c.Y & highPlusOne(c) }
func tas(c *CPU) uint8 {
	c.SP = c.A & c.X
	return c.SP & highPlusOne(c)
}

// --- implied / register ---

func inx(c *CPU) { c.X++; c.setZN(c.X) }
func dex(c *CPU) { c.X--; c.setZN(c.X) }
func iny(c *CPU) { c.Y++; c.setZN(c.Y) }
func dey(c *CPU) { c.Y--; c.setZN(c.Y) }
func tax(c *CPU) { c.X = c.A; c.setZN(c.X) }
func txa(c *CPU) { c.A = c.X; c.setZN(c.A) }
func tay(c *CPU) { c.Y = c.A; c.setZN(c.Y) }
func tya(c *CPU) { c.A = c.Y; c.setZN(c.A) }
func tsx(c *CPU) { c.X = c.SP; c.setZN(c.X) }
func txs(c *CPU) { c.SP = c.X }
func clc(c *CPU) { c.C = false }
func sec(c *CPU) { c.C = true }
func cli(c *CPU) { c.I = false }
func sei(c *CPU) { c.I = true }
func clv(c *CPU) { c.V = false }
func cld(c *CPU) { c.D = false }
func sed(c *CPU) { c.D = true }
func nop(c *CPU) {}

// --- stack ---

func pha(c *CPU) uint8 { return c.A }
func php(c *CPU) uint8 { return c.statusByte(true) }
func pla(c *CPU, v uint8) {
	c.A = v
	c.setZN(c.A)
}
func plp(c *CPU, v uint8) { c.setStatusByte(v) }

// opcodeTable is indexed by opcode byte. Every entry starts as jamOp and
// the listed opcodes overwrite it; the ones left unlisted (the twelve
// KIL/JAM opcodes) stay kindJam, so a fetch of one locks up instead of
// panicking on a nil func call.
var opcodeTable = buildOpcodeTable()

func jamOp(name string) instruction { return instruction{name: name, kind: kindJam} }

func buildOpcodeTable() [256]instruction {
	var t [256]instruction
	for i := range t {
		t[i] = jamOp("JAM")
	}

	// Loads
	t[0xA9] = readOp("LDA", modeImmediate, lda)
	t[0xA5] = readOp("LDA", modeZeroPage, lda)
	t[0xB5] = readOp("LDA", modeZeroPageX, lda)
	t[0xAD] = readOp("LDA", modeAbsolute, lda)
	t[0xBD] = readOp("LDA", modeAbsoluteX, lda)
	t[0xB9] = readOp("LDA", modeAbsoluteY, lda)
	t[0xA1] = readOp("LDA", modeIndexedIndirect, lda)
	t[0xB1] = readOp("LDA", modeIndirectIndexed, lda)

	t[0xA2] = readOp("LDX", modeImmediate, ldx)
	t[0xA6] = readOp("LDX", modeZeroPage, ldx)
	t[0xB6] = readOp("LDX", modeZeroPageY, ldx)
	t[0xAE] = readOp("LDX", modeAbsolute, ldx)
	t[0xBE] = readOp("LDX", modeAbsoluteY, ldx)

	t[0xA0] = readOp("LDY", modeImmediate, ldy)
	t[0xA4] = readOp("LDY", modeZeroPage, ldy)
	t[0xB4] = readOp("LDY", modeZeroPageX, ldy)
	t[0xAC] = readOp("LDY", modeAbsolute, ldy)
	t[0xBC] = readOp("LDY", modeAbsoluteX, ldy)

	// Stores
	t[0x85] = writeOp("STA", modeZeroPage, sta)
	t[0x95] = writeOp("STA", modeZeroPageX, sta)
	t[0x8D] = writeOp("STA", modeAbsolute, sta)
	t[0x9D] = writeOp("STA", modeAbsoluteX, sta)
	t[0x99] = writeOp("STA", modeAbsoluteY, sta)
	t[0x81] = writeOp("STA", modeIndexedIndirect, sta)
	t[0x91] = writeOp("STA", modeIndirectIndexed, sta)

	t[0x86] = writeOp("STX", modeZeroPage, stx)
	t[0x96] = writeOp("STX", modeZeroPageY, stx)
	t[0x8E] = writeOp("STX", modeAbsolute, stx)

	t[0x84] = writeOp("STY", modeZeroPage, sty)
	t[0x94] = writeOp("STY", modeZeroPageX, sty)
	t[0x8C] = writeOp("STY", modeAbsolute, sty)

	// Arithmetic
	t[0x69] = readOp("ADC", modeImmediate, adc)
	t[0x65] = readOp("ADC", modeZeroPage, adc)
	t[0x75] = readOp("ADC", modeZeroPageX, adc)
	t[0x6D] = readOp("ADC", modeAbsolute, adc)
	t[0x7D] = readOp("ADC", modeAbsoluteX, adc)
	t[0x79] = readOp("ADC", modeAbsoluteY, adc)
	t[0x61] = readOp("ADC", modeIndexedIndirect, adc)
	t[0x71] = readOp("ADC", modeIndirectIndexed, adc)

	t[0xE9] = readOp("SBC", modeImmediate, sbc)
	t[0xEB] = readOp("SBC", modeImmediate, sbc) // unofficial alias
	t[0xE5] = readOp("SBC", modeZeroPage, sbc)
	t[0xF5] = readOp("SBC", modeZeroPageX, sbc)
	t[0xED] = readOp("SBC", modeAbsolute, sbc)
	t[0xFD] = readOp("SBC", modeAbsoluteX, sbc)
	t[0xF9] = readOp("SBC", modeAbsoluteY, sbc)
	t[0xE1] = readOp("SBC", modeIndexedIndirect, sbc)
	t[0xF1] = readOp("SBC", modeIndirectIndexed, sbc)

	t[0x29] = readOp("AND", modeImmediate, and)
	t[0x25] = readOp("AND", modeZeroPage, and)
	t[0x35] = readOp("AND", modeZeroPageX, and)
	t[0x2D] = readOp("AND", modeAbsolute, and)
	t[0x3D] = readOp("AND", modeAbsoluteX, and)
	t[0x39] = readOp("AND", modeAbsoluteY, and)
	t[0x21] = readOp("AND", modeIndexedIndirect, and)
	t[0x31] = readOp("AND", modeIndirectIndexed, and)

	t[0x09] = readOp("ORA", modeImmediate, ora)
	t[0x05] = readOp("ORA", modeZeroPage, ora)
	t[0x15] = readOp("ORA", modeZeroPageX, ora)
	t[0x0D] = readOp("ORA", modeAbsolute, ora)
	t[0x1D] = readOp("ORA", modeAbsoluteX, ora)
	t[0x19] = readOp("ORA", modeAbsoluteY, ora)
	t[0x01] = readOp("ORA", modeIndexedIndirect, ora)
	t[0x11] = readOp("ORA", modeIndirectIndexed, ora)

	t[0x49] = readOp("EOR", modeImmediate, eor)
	t[0x45] = readOp("EOR", modeZeroPage, eor)
	t[0x55] = readOp("EOR", modeZeroPageX, eor)
	t[0x4D] = readOp("EOR", modeAbsolute, eor)
	t[0x5D] = readOp("EOR", modeAbsoluteX, eor)
	t[0x59] = readOp("EOR", modeAbsoluteY, eor)
	t[0x41] = readOp("EOR", modeIndexedIndirect, eor)
	t[0x51] = readOp("EOR", modeIndirectIndexed, eor)

	t[0xC9] = readOp("CMP", modeImmediate, cmp)
	t[0xC5] = readOp("CMP", modeZeroPage, cmp)
	t[0xD5] = readOp("CMP", modeZeroPageX, cmp)
	t[0xCD] = readOp("CMP", modeAbsolute, cmp)
	t[0xDD] = readOp("CMP", modeAbsoluteX, cmp)
	t[0xD9] = readOp("CMP", modeAbsoluteY, cmp)
	t[0xC1] = readOp("CMP", modeIndexedIndirect, cmp)
	t[0xD1] = readOp("CMP", modeIndirectIndexed, cmp)

	t[0xE0] = readOp("CPX", modeImmediate, cpx)
	t[0xE4] = readOp("CPX", modeZeroPage, cpx)
	t[0xEC] = readOp("CPX", modeAbsolute, cpx)

	t[0xC0] = readOp("CPY", modeImmediate, cpy)
	t[0xC4] = readOp("CPY", modeZeroPage, cpy)
	t[0xCC] = readOp("CPY", modeAbsolute, cpy)

	t[0x24] = readOp("BIT", modeZeroPage, bit)
	t[0x2C] = readOp("BIT", modeAbsolute, bit)

	// RMW
	t[0x0A] = accOp("ASL", asl)
	t[0x06] = rmwOp("ASL", modeZeroPage, asl)
	t[0x16] = rmwOp("ASL", modeZeroPageX, asl)
	t[0x0E] = rmwOp("ASL", modeAbsolute, asl)
	t[0x1E] = rmwOp("ASL", modeAbsoluteX, asl)

	t[0x4A] = accOp("LSR", lsr)
	t[0x46] = rmwOp("LSR", modeZeroPage, lsr)
	t[0x56] = rmwOp("LSR", modeZeroPageX, lsr)
	t[0x4E] = rmwOp("LSR", modeAbsolute, lsr)
	t[0x5E] = rmwOp("LSR", modeAbsoluteX, lsr)

	t[0x2A] = accOp("ROL", rol)
	t[0x26] = rmwOp("ROL", modeZeroPage, rol)
	t[0x36] = rmwOp("ROL", modeZeroPageX, rol)
	t[0x2E] = rmwOp("ROL", modeAbsolute, rol)
	t[0x3E] = rmwOp("ROL", modeAbsoluteX, rol)

	t[0x6A] = accOp("ROR", ror)
	t[0x66] = rmwOp("ROR", modeZeroPage, ror)
	t[0x76] = rmwOp("ROR", modeZeroPageX, ror)
	t[0x6E] = rmwOp("ROR", modeAbsolute, ror)
	t[0x7E] = rmwOp("ROR", modeAbsoluteX, ror)

	t[0xE6] = rmwOp("INC", modeZeroPage, incOp)
	t[0xF6] = rmwOp("INC", modeZeroPageX, incOp)
	t[0xEE] = rmwOp("INC", modeAbsolute, incOp)
	t[0xFE] = rmwOp("INC", modeAbsoluteX, incOp)

	t[0xC6] = rmwOp("DEC", modeZeroPage, decOp)
	t[0xD6] = rmwOp("DEC", modeZeroPageX, decOp)
	t[0xCE] = rmwOp("DEC", modeAbsolute, decOp)
	t[0xDE] = rmwOp("DEC", modeAbsoluteX, decOp)

	// Unofficial
	t[0xA7] = readOp("LAX", modeZeroPage, lax)
	t[0xB7] = readOp("LAX", modeZeroPageY, lax)
	t[0xAF] = readOp("LAX", modeAbsolute, lax)
	t[0xBF] = readOp("LAX", modeAbsoluteY, lax)
	t[0xA3] = readOp("LAX", modeIndexedIndirect, lax)
	t[0xB3] = readOp("LAX", modeIndirectIndexed, lax)

	t[0x87] = writeOp("SAX", modeZeroPage, sax)
	t[0x97] = writeOp("SAX", modeZeroPageY, sax)
	t[0x8F] = writeOp("SAX", modeAbsolute, sax)
	t[0x83] = writeOp("SAX", modeIndexedIndirect, sax)

	t[0xC7] = rmwOp("DCP", modeZeroPage, dcp)
	t[0xD7] = rmwOp("DCP", modeZeroPageX, dcp)
	t[0xCF] = rmwOp("DCP", modeAbsolute, dcp)
	t[0xDF] = rmwOp("DCP", modeAbsoluteX, dcp)
	t[0xDB] = rmwOp("DCP", modeAbsoluteY, dcp)
	t[0xC3] = rmwOp("DCP", modeIndexedIndirect, dcp)
	t[0xD3] = rmwOp("DCP", modeIndirectIndexed, dcp)

	t[0xE7] = rmwOp("ISB", modeZeroPage, isb)
	t[0xF7] = rmwOp("ISB", modeZeroPageX, isb)
	t[0xEF] = rmwOp("ISB", modeAbsolute, isb)
	t[0xFF] = rmwOp("ISB", modeAbsoluteX, isb)
	t[0xFB] = rmwOp("ISB", modeAbsoluteY, isb)
	t[0xE3] = rmwOp("ISB", modeIndexedIndirect, isb)
	t[0xF3] = rmwOp("ISB", modeIndirectIndexed, isb)

	t[0x07] = rmwOp("SLO", modeZeroPage, slo)
	t[0x17] = rmwOp("SLO", modeZeroPageX, slo)
	t[0x0F] = rmwOp("SLO", modeAbsolute, slo)
	t[0x1F] = rmwOp("SLO", modeAbsoluteX, slo)
	t[0x1B] = rmwOp("SLO", modeAbsoluteY, slo)
	t[0x03] = rmwOp("SLO", modeIndexedIndirect, slo)
	t[0x13] = rmwOp("SLO", modeIndirectIndexed, slo)

	t[0x27] = rmwOp("RLA", modeZeroPage, rla)
	t[0x37] = rmwOp("RLA", modeZeroPageX, rla)
	t[0x2F] = rmwOp("RLA", modeAbsolute, rla)
	t[0x3F] = rmwOp("RLA", modeAbsoluteX, rla)
	t[0x3B] = rmwOp("RLA", modeAbsoluteY, rla)
	t[0x23] = rmwOp("RLA", modeIndexedIndirect, rla)
	t[0x33] = rmwOp("RLA", modeIndirectIndexed, rla)

	t[0x47] = rmwOp("SRE", modeZeroPage, sre)
	t[0x57] = rmwOp("SRE", modeZeroPageX, sre)
	t[0x4F] = rmwOp("SRE", modeAbsolute, sre)
	t[0x5F] = rmwOp("SRE", modeAbsoluteX, sre)
	t[0x5B] = rmwOp("SRE", modeAbsoluteY, sre)
	t[0x43] = rmwOp("SRE", modeIndexedIndirect, sre)
	t[0x53] = rmwOp("SRE", modeIndirectIndexed, sre)

	t[0x67] = rmwOp("RRA", modeZeroPage, rra)
	t[0x77] = rmwOp("RRA", modeZeroPageX, rra)
	t[0x6F] = rmwOp("RRA", modeAbsolute, rra)
	t[0x7F] = rmwOp("RRA", modeAbsoluteX, rra)
	t[0x7B] = rmwOp("RRA", modeAbsoluteY, rra)
	t[0x63] = rmwOp("RRA", modeIndexedIndirect, rra)
	t[0x73] = rmwOp("RRA", modeIndirectIndexed, rra)

	t[0x0B] = readOp("ANC", modeImmediate, anc)
	t[0x2B] = readOp("ANC", modeImmediate, anc)
	t[0x4B] = readOp("ALR", modeImmediate, alr)
	t[0x6B] = readOp("ARR", modeImmediate, arr)
	t[0x8B] = readOp("ANE", modeImmediate, ane)
	t[0xAB] = readOp("LXA", modeImmediate, lxa)
	t[0xCB] = readOp("SBX", modeImmediate, sbx)
	t[0xBB] = readOp("LAS", modeAbsoluteY, las)

	t[0x93] = writeOp("SHA", modeIndirectIndexed, sha)
	t[0x9F] = writeOp("SHA", modeAbsoluteY, sha)
	t[0x9B] = writeOp("TAS", modeAbsoluteY, tas)
	t[0x9C] = writeOp("SHY", modeAbsoluteX, shy)
	t[0x9E] = writeOp("SHX", modeAbsoluteY, shx)

	// NOPs, official and unofficial (read-only variants still perform the
	// addressing mode's bus accesses, just discard the value).
	noopRead := func(c *CPU, v uint8) {}
	t[0xEA] = impliedOp("NOP", nop)
	t[0x1A] = impliedOp("NOP", nop)
	t[0x3A] = impliedOp("NOP", nop)
	t[0x5A] = impliedOp("NOP", nop)
	t[0x7A] = impliedOp("NOP", nop)
	t[0xDA] = impliedOp("NOP", nop)
	t[0xFA] = impliedOp("NOP", nop)
	t[0x80] = readOp("NOP", modeImmediate, noopRead)
	t[0x82] = readOp("NOP", modeImmediate, noopRead)
	t[0x89] = readOp("NOP", modeImmediate, noopRead)
	t[0xC2] = readOp("NOP", modeImmediate, noopRead)
	t[0xE2] = readOp("NOP", modeImmediate, noopRead)
	t[0x04] = readOp("NOP", modeZeroPage, noopRead)
	t[0x44] = readOp("NOP", modeZeroPage, noopRead)
	t[0x64] = readOp("NOP", modeZeroPage, noopRead)
	t[0x14] = readOp("NOP", modeZeroPageX, noopRead)
	t[0x34] = readOp("NOP", modeZeroPageX, noopRead)
	t[0x54] = readOp("NOP", modeZeroPageX, noopRead)
	t[0x74] = readOp("NOP", modeZeroPageX, noopRead)
	t[0xD4] = readOp("NOP", modeZeroPageX, noopRead)
	t[0xF4] = readOp("NOP", modeZeroPageX, noopRead)
	t[0x0C] = readOp("NOP", modeAbsolute, noopRead)
	t[0x1C] = readOp("NOP", modeAbsoluteX, noopRead)
	t[0x3C] = readOp("NOP", modeAbsoluteX, noopRead)
	t[0x5C] = readOp("NOP", modeAbsoluteX, noopRead)
	t[0x7C] = readOp("NOP", modeAbsoluteX, noopRead)
	t[0xDC] = readOp("NOP", modeAbsoluteX, noopRead)
	t[0xFC] = readOp("NOP", modeAbsoluteX, noopRead)

	// Register transfers / flags
	t[0xAA] = impliedOp("TAX", tax)
	t[0x8A] = impliedOp("TXA", txa)
	t[0xA8] = impliedOp("TAY", tay)
	t[0x98] = impliedOp("TYA", tya)
	t[0xBA] = impliedOp("TSX", tsx)
	t[0x9A] = impliedOp("TXS", txs)
	t[0xE8] = impliedOp("INX", inx)
	t[0xCA] = impliedOp("DEX", dex)
	t[0xC8] = impliedOp("INY", iny)
	t[0x88] = impliedOp("DEY", dey)
	t[0x18] = impliedOp("CLC", clc)
	t[0x38] = impliedOp("SEC", sec)
	t[0x58] = impliedOp("CLI", cli)
	t[0x78] = impliedOp("SEI", sei)
	t[0xB8] = impliedOp("CLV", clv)
	t[0xD8] = impliedOp("CLD", cld)
	t[0xF8] = impliedOp("SED", sed)

	// Stack
	t[0x48] = pushOp("PHA", pha)
	t[0x08] = pushOp("PHP", php)
	t[0x68] = pullOp("PLA", pla)
	t[0x28] = pullOp("PLP", plp)

	// Control flow
	t[0x4C] = instruction{name: "JMP", kind: kindJMP}
	t[0x6C] = instruction{name: "JMP", kind: kindJMPIndirect}
	t[0x20] = instruction{name: "JSR", kind: kindJSR}
	t[0x60] = instruction{name: "RTS", kind: kindRTS}
	t[0x40] = instruction{name: "RTI", kind: kindRTI}
	t[0x00] = instruction{name: "BRK", kind: kindBRK}

	t[0x90] = branchOp("BCC", func(c *CPU) bool { return !c.C })
	t[0xB0] = branchOp("BCS", func(c *CPU) bool { return c.C })
	t[0xD0] = branchOp("BNE", func(c *CPU) bool { return !c.Z })
	t[0xF0] = branchOp("BEQ", func(c *CPU) bool { return c.Z })
	t[0x10] = branchOp("BPL", func(c *CPU) bool { return !c.N })
	t[0x30] = branchOp("BMI", func(c *CPU) bool { return c.N })
	t[0x50] = branchOp("BVC", func(c *CPU) bool { return !c.V })
	t[0x70] = branchOp("BVS", func(c *CPU) bool { return c.V })

	return t
}
