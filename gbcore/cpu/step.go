package cpu

import "github.com/kallisti-dev/gbcore/addr"

// InterruptSource lets the CPU read and acknowledge IE/IF without the
// memory package and cpu package importing each other's concrete types.
type InterruptSource interface {
	InterruptEnable() byte
	InterruptFlags() byte
	ClearInterruptFlag(addr.Interrupt)
}

var interruptPriority = [5]addr.Interrupt{
	addr.VBlank, addr.LCDSTAT, addr.Timer, addr.Serial, addr.Joypad,
}

// Step runs one fetch-decode-execute cycle, or one interrupt service, or
// one halted idle tick, matching the ordering spec §5 requires: the
// interrupt check happens before the instruction/service/idle choice.
func (c *CPU) Step(irq InterruptSource) int {
	pending := irq.InterruptEnable() & irq.InterruptFlags() & 0x1F

	if pending != 0 && c.halted {
		c.halted = false
	}

	if pending != 0 && c.ime {
		return c.serviceInterrupt(irq, pending)
	}

	if c.halted {
		return 1
	}

	// EI's effect is delayed by one instruction: apply a pending enable
	// only after the instruction following EI itself has executed.
	applyIME := c.imePending
	op := c.fetch8()
	cycles := c.execute(op)
	if applyIME {
		c.ime = true
		c.imePending = false
	}
	return cycles
}

func (c *CPU) serviceInterrupt(irq InterruptSource, pending byte) int {
	c.ime = false
	c.imePending = false

	for _, source := range interruptPriority {
		if pending&byte(source) == 0 {
			continue
		}
		irq.ClearInterruptFlag(source)
		c.push(c.pc)
		c.pc = source.Vector()
		return 5
	}
	return 5
}
