package cpu

// get8/set8 implement the standard SM83 3-bit register encoding used by
// LD r,r'; ALU A,r; INC/DEC r; and every CB-prefixed opcode:
// 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.

func (c *CPU) get8(index uint8) uint8 {
	switch index {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case 6:
		return c.memory.Read(c.hl())
	case 7:
		return c.a
	default:
		panic("cpu: invalid register index")
	}
}

func (c *CPU) set8(index uint8, value uint8) {
	switch index {
	case 0:
		c.b = value
	case 1:
		c.c = value
	case 2:
		c.d = value
	case 3:
		c.e = value
	case 4:
		c.h = value
	case 5:
		c.l = value
	case 6:
		c.memory.Write(c.hl(), value)
	case 7:
		c.a = value
	default:
		panic("cpu: invalid register index")
	}
}

func (c *CPU) fetch8() uint8 {
	v := c.memory.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return uint16(high)<<8 | uint16(low)
}

// push writes v onto the stack, high byte first, matching hardware's
// SP-- ; mem[SP]=high ; SP-- ; mem[SP]=low order.
func (c *CPU) push(v uint16) {
	c.sp--
	c.memory.Write(c.sp, uint8(v>>8))
	c.sp--
	c.memory.Write(c.sp, uint8(v))
}

func (c *CPU) pop() uint16 {
	low := c.memory.Read(c.sp)
	c.sp++
	high := c.memory.Read(c.sp)
	c.sp++
	return uint16(high)<<8 | uint16(low)
}

// jumpRelative applies a signed 8-bit displacement fetched from the
// instruction stream to PC, which has already advanced past the
// displacement byte by the time it is added.
func (c *CPU) jumpRelative() {
	e := int8(c.fetch8())
	c.pc = uint16(int32(c.pc) + int32(e))
}

func condTaken(c *CPU, cond uint8) bool {
	switch cond {
	case 0: // NZ
		return !c.flagSet(FlagZ)
	case 1: // Z
		return c.flagSet(FlagZ)
	case 2: // NC
		return !c.flagSet(FlagC)
	case 3: // C
		return c.flagSet(FlagC)
	default:
		panic("cpu: invalid condition code")
	}
}

// reg16 implements the rp (register pair) encoding used by 16-bit LD/
// INC/DEC/ADD opcodes: 0=BC 1=DE 2=HL 3=SP.
func (c *CPU) reg16(index uint8) uint16 {
	switch index {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	case 3:
		return c.sp
	default:
		panic("cpu: invalid register pair index")
	}
}

func (c *CPU) setReg16(index uint8, v uint16) {
	switch index {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	case 3:
		c.sp = v
	default:
		panic("cpu: invalid register pair index")
	}
}

// reg16Stack implements the rp2 encoding used by PUSH/POP: 0=BC 1=DE 2=HL 3=AF.
func (c *CPU) reg16Stack(index uint8) uint16 {
	if index == 3 {
		return c.af()
	}
	return c.reg16(index)
}

func (c *CPU) setReg16Stack(index uint8, v uint16) {
	if index == 3 {
		c.setAF(v)
	} else {
		c.setReg16(index, v)
	}
}
