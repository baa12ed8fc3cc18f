package cpu

// executeCB decodes and runs one 0xCB-prefixed opcode, returning the
// m-cycles consumed. The encoding is fully regular: bits 7-6 select the
// instruction group, bits 5-3 the bit index or rotate/shift kind, bits
// 2-0 the 3-bit register (6 = (HL)).
func (c *CPU) executeCB(op uint8) int {
	reg := op & 0x07
	group := op >> 6

	switch group {
	case 0: // rotate/shift/swap
		kind := (op >> 3) & 0x07
		v := c.get8(reg)
		var result uint8
		switch kind {
		case 0:
			result = c.rlc(v, false)
		case 1:
			result = c.rrc(v, false)
		case 2:
			result = c.rl(v, false)
		case 3:
			result = c.rr(v, false)
		case 4:
			result = c.sla(v)
		case 5:
			result = c.sra(v)
		case 6:
			result = c.swap(v)
		case 7:
			result = c.srl(v)
		}
		c.set8(reg, result)
		if reg == 6 {
			return 4
		}
		return 2

	case 1: // BIT n,r
		n := (op >> 3) & 0x07
		c.bitTest(n, c.get8(reg))
		if reg == 6 {
			return 3
		}
		return 2

	case 2: // RES n,r
		n := (op >> 3) & 0x07
		c.set8(reg, resBitVal(n, c.get8(reg)))
		if reg == 6 {
			return 4
		}
		return 2

	case 3: // SET n,r
		n := (op >> 3) & 0x07
		c.set8(reg, setBitVal(n, c.get8(reg)))
		if reg == 6 {
			return 4
		}
		return 2

	default:
		return c.undefinedOpcode(op)
	}
}
