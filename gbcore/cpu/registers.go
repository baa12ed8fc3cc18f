// Package cpu implements the SM83 core: registers, ALU primitives, the
// primary and CB-prefixed opcode tables, and interrupt dispatch.
package cpu

import "github.com/kallisti-dev/gbcore/bit"

// Flag bits within the F register.
type Flag uint8

const (
	FlagZ Flag = 1 << 7
	FlagN Flag = 1 << 6
	FlagH Flag = 1 << 5
	FlagC Flag = 1 << 4
)

// Bus is the memory interface the CPU reads and writes through.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// CPU holds the SM83 register file and execution state.
type CPU struct {
	a, f       uint8
	b, c       uint8
	d, e       uint8
	h, l       uint8
	sp, pc     uint16
	ime        bool
	imePending bool
	halted     bool
	stopped    bool

	memory Bus

	currentOpcode uint8
}

// New returns a CPU wired to memory, with registers in the documented
// DMG post-boot-ROM state.
func New(memory Bus) *CPU {
	c := &CPU{memory: memory}
	c.a, c.f = 0x01, 0xB0
	c.b, c.c = 0x00, 0x13
	c.d, c.e = 0x00, 0xD8
	c.h, c.l = 0x01, 0x4D
	c.sp = 0xFFFE
	c.pc = 0x0100
	return c
}

func (c *CPU) bc() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) de() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) hl() uint16 { return bit.Combine(c.h, c.l) }
func (c *CPU) af() uint16 { return bit.Combine(c.a, c.f&0xF0) }

func (c *CPU) setBC(v uint16) { c.b, c.c = bit.High(v), bit.Low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bit.High(v), bit.Low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bit.High(v), bit.Low(v) }
func (c *CPU) setAF(v uint16) { c.a, c.f = bit.High(v), bit.Low(v)&0xF0 }

func (c *CPU) flagSet(flag Flag) bool { return c.f&uint8(flag) != 0 }

func (c *CPU) setFlag(flag Flag, on bool) {
	if on {
		c.f |= uint8(flag)
	} else {
		c.f &^= uint8(flag)
	}
	c.f &= 0xF0
}

// PC returns the program counter. Exposed for tests and the disassembler.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the stack pointer.
func (c *CPU) SP() uint16 { return c.sp }

// Registers returns the 8-bit register file as (a, f, b, c, d, e, h, l),
// for tests and debug inspection.
func (c *CPU) Registers() (a, f, b, cc, d, e, h, l uint8) {
	return c.a, c.f, c.b, c.c, c.d, c.e, c.h, c.l
}

// IME reports whether the interrupt master enable flag is set.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is halted.
func (c *CPU) Halted() bool { return c.halted }
