package cpu

type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect // (zp,X)
	modeIndirectIndexed // (zp),Y
)

type opKind int

const (
	kindRead opKind = iota
	kindWrite
	kindRMW
	kindImplied
	kindAccumulator
	kindBranch
	kindJMP
	kindJMPIndirect
	kindJSR
	kindRTS
	kindRTI
	kindBRK
	kindPush
	kindPull
	kindJam
)

// dispatch builds the micro-op queue for the just-fetched opcode, based on
// its addressing mode and operation kind.
func (cpu *CPU) dispatch() {
	in := cpu.instr
	switch in.kind {
	case kindImplied:
		cpu.queue = append(cpu.queue, func(c *CPU) { c.Bus.Read(c.PC, c.cycle); in.implied(c) })
	case kindAccumulator:
		cpu.queue = append(cpu.queue, func(c *CPU) {
			c.Bus.Read(c.PC, c.cycle)
			c.A = in.rmw(c, c.A)
		})
	case kindBranch:
		cpu.queueBranch(in)
	case kindJMP:
		cpu.queueJMPAbsolute()
	case kindJMPIndirect:
		cpu.queueJMPIndirect()
	case kindJSR:
		cpu.queueJSR()
	case kindRTS:
		cpu.queueRTS()
	case kindRTI:
		cpu.queueRTI()
	case kindBRK:
		cpu.queue = append(cpu.queue, func(c *CPU) { c.Bus.Read(c.PC, c.cycle); c.PC++ })
		cpu.queueInterrupt(irqVector, true)
	case kindPush:
		cpu.queuePush(in)
	case kindPull:
		cpu.queuePull(in)
	case kindJam:
		// Illegal halt opcode: the real 6502 locks up. It is modeled by
		// rewinding PC so every following instruction boundary fetches the
		// same opcode again. The halted flag is not set, and a pending NMI
		// or an unmasked IRQ is still serviced at those boundaries.
		cpu.PC--
		cpu.queue = append(cpu.queue, func(c *CPU) { c.Bus.Read(c.PC, c.cycle) })
	default:
		cpu.queueOperandFetch(in)
	}
}

// queueOperandFetch builds the address-resolution micro-ops for
// read/write/RMW instructions, ending in the access (or accesses, for RMW)
// appropriate to in.kind.
func (cpu *CPU) queueOperandFetch(in *instruction) {
	switch in.mode {
	case modeImmediate:
		cpu.queue = append(cpu.queue, func(c *CPU) {
			v := c.Bus.Read(c.PC, c.cycle)
			c.PC++
			in.read(c, v)
		})
	case modeZeroPage:
		cpu.queue = append(cpu.queue, func(c *CPU) {
			c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle))
			c.PC++
		})
		cpu.queueAccess(in, 0)
	case modeZeroPageX:
		cpu.queueZeroPageIndexed(in, &cpu.X)
	case modeZeroPageY:
		cpu.queueZeroPageIndexed(in, &cpu.Y)
	case modeAbsolute:
		cpu.queue = append(cpu.queue,
			func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
			func(c *CPU) {
				hi := c.Bus.Read(c.PC, c.cycle)
				c.operandAddr |= uint16(hi) << 8
				c.PC++
			},
		)
		cpu.queueAccess(in, 0)
	case modeAbsoluteX:
		cpu.queueAbsoluteIndexed(in, &cpu.X)
	case modeAbsoluteY:
		cpu.queueAbsoluteIndexed(in, &cpu.Y)
	case modeIndexedIndirect:
		cpu.queueIndexedIndirect(in)
	case modeIndirectIndexed:
		cpu.queueIndirectIndexed(in)
	}
}

func (cpu *CPU) queueZeroPageIndexed(in *instruction, index *uint8) {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
		func(c *CPU) {
			c.Bus.Read(c.operandAddr, c.cycle) // dummy read at unindexed address
			c.operandAddr = uint16(uint8(c.operandAddr) + *index)
		},
	)
	cpu.queueAccess(in, 0)
}

func (cpu *CPU) queueAbsoluteIndexed(in *instruction, index *uint8) {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
		func(c *CPU) {
			hi := c.Bus.Read(c.PC, c.cycle)
			c.PC++
			base := c.operandAddr | uint16(hi)<<8
			indexed := base + uint16(*index)
			c.pageCrossed = (base & 0xFF00) != (indexed & 0xFF00)
			// Uncorrected address for the dummy-read cycle: same low byte,
			// old high byte.
			c.operandAddr = (base & 0xFF00) | (indexed & 0x00FF)
			cpu.fixupAddr = indexed
		},
	)
	if in.kind == kindRead {
		cpu.queueIndexedRead(in)
		return
	}
	// Write and RMW always take the fixup cycle, page-crossed or not.
	cpu.queue = append(cpu.queue, func(c *CPU) {
		c.Bus.Read(c.operandAddr, c.cycle)
		c.operandAddr = c.fixupAddr
	})
	cpu.queueAccess(in, 0)
}

func (cpu *CPU) queueIndexedIndirect(in *instruction) {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
		func(c *CPU) {
			c.Bus.Read(c.operandAddr, c.cycle)
			c.operandAddr = uint16(uint8(c.operandAddr) + c.X)
		},
		func(c *CPU) {
			c.fixupAddr = uint16(c.Bus.Read(c.operandAddr, c.cycle))
		},
		func(c *CPU) {
			hi := c.Bus.Read(uint16(uint8(c.operandAddr+1)), c.cycle)
			c.operandAddr = uint16(hi)<<8 | c.fixupAddr
		},
	)
	cpu.queueAccess(in, 0)
}

func (cpu *CPU) queueIndirectIndexed(in *instruction) {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
		func(c *CPU) { c.fixupAddr = uint16(c.Bus.Read(c.operandAddr, c.cycle)) },
		func(c *CPU) {
			hi := c.Bus.Read(uint16(uint8(c.operandAddr+1)), c.cycle)
			base := uint16(hi)<<8 | c.fixupAddr
			indexed := base + uint16(c.Y)
			c.pageCrossed = (base & 0xFF00) != (indexed & 0xFF00)
			c.operandAddr = (base & 0xFF00) | (indexed & 0x00FF)
			c.fixupAddr = indexed
		},
	)
	if in.kind == kindRead {
		cpu.queueIndexedRead(in)
		return
	}
	cpu.queue = append(cpu.queue, func(c *CPU) {
		c.Bus.Read(c.operandAddr, c.cycle)
		c.operandAddr = c.fixupAddr
	})
	cpu.queueAccess(in, 0)
}

// queueIndexedRead appends the final cycle of an indexed read: the real
// read when indexing stayed on the same page, or a dummy read at the
// uncorrected address followed by one more cycle for the real read when it
// crossed a page.
func (cpu *CPU) queueIndexedRead(in *instruction) {
	cpu.queue = append(cpu.queue, func(c *CPU) {
		if !c.pageCrossed {
			c.operandAddr = c.fixupAddr
			in.read(c, c.Bus.Read(c.operandAddr, c.cycle))
			return
		}
		c.Bus.Read(c.operandAddr, c.cycle)
		c.operandAddr = c.fixupAddr
		c.queue = append(c.queue, func(c *CPU) { in.read(c, c.Bus.Read(c.operandAddr, c.cycle)) })
	})
}

// queueAccess appends the final 1 (read/write) or 3 (RMW: read, dummy
// write of the unmodified value, write of the modified value) cycles that
// every addressing mode funnels into once operandAddr is resolved.
func (cpu *CPU) queueAccess(in *instruction, _ int) {
	switch in.kind {
	case kindRead:
		cpu.queue = append(cpu.queue, func(c *CPU) {
			v := c.Bus.Read(c.operandAddr, c.cycle)
			in.read(c, v)
		})
	case kindWrite:
		cpu.queue = append(cpu.queue, func(c *CPU) {
			c.Bus.Write(c.operandAddr, in.write(c), c.cycle)
		})
	case kindRMW:
		cpu.queue = append(cpu.queue,
			func(c *CPU) { c.operandValue = c.Bus.Read(c.operandAddr, c.cycle) },
			func(c *CPU) { c.Bus.Write(c.operandAddr, c.operandValue, c.cycle) },
			func(c *CPU) { c.Bus.Write(c.operandAddr, in.rmw(c, c.operandValue), c.cycle) },
		)
	}
}

func (cpu *CPU) queueBranch(in *instruction) {
	cpu.queue = append(cpu.queue, func(c *CPU) {
		offset := int8(c.Bus.Read(c.PC, c.cycle))
		c.PC++
		if !in.branch(c) {
			return
		}
		c.branchTarget = uint16(int32(c.PC) + int32(offset))
		c.queue = append(c.queue, func(c *CPU) {
			c.Bus.Read(c.PC, c.cycle)
			samePage := c.PC&0xFF00 == c.branchTarget&0xFF00
			c.PC = (c.PC & 0xFF00) | (c.branchTarget & 0x00FF)
			if !samePage {
				c.queue = append(c.queue, func(c *CPU) {
					c.Bus.Read(c.PC, c.cycle)
					c.PC = c.branchTarget
				})
			}
		})
	})
}

func (cpu *CPU) queueJMPAbsolute() {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
		func(c *CPU) {
			hi := c.Bus.Read(c.PC, c.cycle)
			c.PC = uint16(hi)<<8 | c.operandAddr
		},
	)
}

// queueJMPIndirect reproduces the famous page-wrap bug: if the pointer's
// low byte is $FF, the high byte is fetched from the start of the same
// page rather than the next page.
func (cpu *CPU) queueJMPIndirect() {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
		func(c *CPU) {
			hi := c.Bus.Read(c.PC, c.cycle)
			c.PC++
			c.operandAddr |= uint16(hi) << 8
		},
		func(c *CPU) { c.fixupAddr = uint16(c.Bus.Read(c.operandAddr, c.cycle)) },
		func(c *CPU) {
			hiAddr := (c.operandAddr & 0xFF00) | uint16(uint8(c.operandAddr)+1)
			hi := c.Bus.Read(hiAddr, c.cycle)
			c.PC = uint16(hi)<<8 | c.fixupAddr
		},
	)
}

func (cpu *CPU) queueJSR() {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.operandAddr = uint16(c.Bus.Read(c.PC, c.cycle)); c.PC++ },
		func(c *CPU) { c.Bus.Read(stackBase+uint16(c.SP), c.cycle) }, // internal delay
		func(c *CPU) {
			c.Bus.Write(stackBase+uint16(c.SP), uint8(c.PC>>8), c.cycle)
			c.SP--
		},
		func(c *CPU) {
			c.Bus.Write(stackBase+uint16(c.SP), uint8(c.PC), c.cycle)
			c.SP--
		},
		func(c *CPU) {
			hi := c.Bus.Read(c.PC, c.cycle)
			c.PC = uint16(hi)<<8 | c.operandAddr
		},
	)
}

func (cpu *CPU) queueRTS() {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.Bus.Read(c.PC, c.cycle) },
		func(c *CPU) { c.SP++ },
		func(c *CPU) { c.operandValue = c.Bus.Read(stackBase+uint16(c.SP), c.cycle); c.SP++ },
		func(c *CPU) {
			hi := c.Bus.Read(stackBase+uint16(c.SP), c.cycle)
			c.PC = uint16(hi)<<8 | uint16(c.operandValue)
		},
		func(c *CPU) { c.Bus.Read(c.PC, c.cycle); c.PC++ },
	)
}

func (cpu *CPU) queueRTI() {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.Bus.Read(c.PC, c.cycle) },
		func(c *CPU) { c.SP++ },
		func(c *CPU) { c.setStatusByte(c.Bus.Read(stackBase+uint16(c.SP), c.cycle)); c.SP++ },
		func(c *CPU) { c.operandValue = c.Bus.Read(stackBase+uint16(c.SP), c.cycle); c.SP++ },
		func(c *CPU) {
			hi := c.Bus.Read(stackBase+uint16(c.SP), c.cycle)
			c.PC = uint16(hi)<<8 | uint16(c.operandValue)
		},
	)
}

func (cpu *CPU) queuePush(in *instruction) {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.Bus.Read(c.PC, c.cycle) },
		func(c *CPU) {
			c.Bus.Write(stackBase+uint16(c.SP), in.write(c), c.cycle)
			c.SP--
		},
	)
}

func (cpu *CPU) queuePull(in *instruction) {
	cpu.queue = append(cpu.queue,
		func(c *CPU) { c.Bus.Read(c.PC, c.cycle) },
		func(c *CPU) { c.Bus.Read(stackBase+uint16(c.SP), c.cycle); c.SP++ },
		func(c *CPU) {
			v := c.Bus.Read(stackBase+uint16(c.SP), c.cycle)
			in.read(c, v)
		},
	)
}
