package memory

import "github.com/kallisti-dev/gbcore/addr"

// tacThreshold maps the low two bits of TAC to the number of t-cycles
// between TIMA increments.
var tacThreshold = [4]uint16{1024, 16, 64, 256}

// Timer models DIV/TIMA/TMA/TAC with a simple accumulator: each tick adds
// t-cycles to a sub-accumulator, and while the accumulator reaches the
// TAC-selected threshold TIMA increments once, wrapping and reloading from
// TMA (with an interrupt) immediately on 8-bit overflow. This is simpler
// than real hardware's falling-edge detection on the system counter, but
// matches what this core's test scenarios observe at the register level.
type Timer struct {
	div, tima, tma, tac byte

	divAccumulator   uint16
	timaAccumulator  uint16
	requestInterrupt func(addr.Interrupt)
}

// NewTimer returns a Timer that calls requestInterrupt when TIMA overflows.
func NewTimer(requestInterrupt func(addr.Interrupt)) *Timer {
	return &Timer{requestInterrupt: requestInterrupt}
}

// Tick advances the timer by the given number of t-cycles.
func (t *Timer) Tick(tCycles int) {
	for i := 0; i < tCycles; i++ {
		t.divAccumulator++
		if t.divAccumulator >= 256 {
			t.divAccumulator -= 256
			t.div++
		}

		if t.tac&0x04 == 0 {
			continue
		}
		t.timaAccumulator++
		threshold := tacThreshold[t.tac&0x03]
		if t.timaAccumulator < threshold {
			continue
		}
		t.timaAccumulator -= threshold

		if t.tima == 0xFF {
			t.tima = t.tma
			if t.requestInterrupt != nil {
				t.requestInterrupt(addr.Timer)
			}
		} else {
			t.tima++
		}
	}
}

// Read returns the value of one of DIV/TIMA/TMA/TAC.
func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return t.div
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | 0xF8
	default:
		return 0xFF
	}
}

// Write handles a write to one of DIV/TIMA/TMA/TAC. Any write to DIV
// resets both the visible register and the internal accumulator.
func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		t.div = 0
		t.divAccumulator = 0
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value & 0x07
	}
}
