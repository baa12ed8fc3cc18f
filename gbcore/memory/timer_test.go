package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kallisti-dev/gbcore/addr"
)

func TestTimerOverflowReloadsAndInterrupts(t *testing.T) {
	var fired []addr.Interrupt
	timer := NewTimer(func(i addr.Interrupt) { fired = append(fired, i) })

	timer.Write(addr.TAC, 0x05) // enable, step 16
	timer.Write(addr.TMA, 0xAB)
	timer.Write(addr.TIMA, 0xFF)

	timer.Tick(16)

	assert.Equal(t, byte(0xAB), timer.Read(addr.TIMA))
	assert.Equal(t, []addr.Interrupt{addr.Timer}, fired)
}

func TestTimerDisabledDoesNotAdvanceTIMA(t *testing.T) {
	timer := NewTimer(nil)
	timer.Write(addr.TAC, 0x01) // step 16, disabled
	timer.Tick(1000)
	assert.Equal(t, byte(0x00), timer.Read(addr.TIMA))
}

func TestDIVResetOnWrite(t *testing.T) {
	timer := NewTimer(nil)
	timer.Tick(256)
	assert.Equal(t, byte(0x01), timer.Read(addr.DIV))
	timer.Write(addr.DIV, 0x99)
	assert.Equal(t, byte(0x00), timer.Read(addr.DIV))
}
