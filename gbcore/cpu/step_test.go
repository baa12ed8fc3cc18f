package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kallisti-dev/gbcore/addr"
)

type fakeInterrupts struct {
	ie, iflag byte
	cleared   []addr.Interrupt
}

func (f *fakeInterrupts) InterruptEnable() byte { return f.ie }
func (f *fakeInterrupts) InterruptFlags() byte  { return f.iflag }
func (f *fakeInterrupts) ClearInterruptFlag(i addr.Interrupt) {
	f.iflag &^= 1 << i.Bit()
	f.cleared = append(f.cleared, i)
}

func TestHaltWakesRegardlessOfIME(t *testing.T) {
	c, _ := newTestCPU()
	c.halted = true
	c.ime = false
	irq := &fakeInterrupts{ie: byte(addr.Timer), iflag: byte(addr.Timer)}

	cycles := c.Step(irq)

	assert.False(t, c.halted, "a pending interrupt must wake HALT even with IME clear")
	assert.Equal(t, 1, cycles, "waking does not itself service the interrupt")
	assert.True(t, c.ime == false)
}

func TestInterruptServicePriorityAndPush(t *testing.T) {
	c, bus := newTestCPU()
	c.sp = 0xFFFE
	c.pc = 0x0150
	c.ime = true
	irq := &fakeInterrupts{ie: byte(addr.VBlank) | byte(addr.Timer), iflag: byte(addr.VBlank) | byte(addr.Timer)}

	cycles := c.Step(irq)

	assert.Equal(t, 5, cycles)
	assert.False(t, c.ime)
	assert.Equal(t, addr.VBlank.Vector(), c.pc, "VBlank has the highest priority")
	assert.Equal(t, []addr.Interrupt{addr.VBlank}, irq.cleared)

	pushedPC := uint16(bus.mem[0xFFFD])<<8 | uint16(bus.mem[0xFFFC])
	assert.Equal(t, uint16(0x0150), pushedPC)
}

func TestEIDelaysOneInstruction(t *testing.T) {
	c, bus := newTestCPU()
	c.pc = 0x0100
	c.ime = false
	bus.mem[0x0100] = 0xFB // EI
	bus.mem[0x0101] = 0x00 // NOP
	irq := &fakeInterrupts{}

	c.Step(irq)
	assert.False(t, c.ime, "IME must not take effect until after the instruction following EI")
	c.Step(irq)
	assert.True(t, c.ime)
}
