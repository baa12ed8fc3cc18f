// Package integration exercises the CPU, PPU, timer and bus together
// through the Emulator façade, rather than any component in isolation.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kallisti-dev/gbcore"
	"github.com/kallisti-dev/gbcore/memory"
)

// blankCartridge returns a minimal NoMBC ROM image: an infinite loop at
// the entry point, just enough header to parse.
func blankCartridge() []byte {
	data := make([]byte, 0x8000)
	copy(data[0x0134:], []byte("INTEGRATION"))
	data[0x0100] = 0x00 // NOP
	data[0x0101] = 0x18 // JR -2
	data[0x0102] = 0xFE
	// header checksum byte is not validated by NewCartridge beyond length,
	// so the rest of the header can stay zeroed (cart type 0x00 = NoMBC).
	return data
}

func TestStepFrameConsumesExactlyOneFrameOfTCycles(t *testing.T) {
	data := blankCartridge()
	emu, err := gbcore.NewWithCartridgeBytes(data)
	require.NoError(t, err)

	before := emu.FrameCount()
	emu.StepFrame()
	assert.Equal(t, before+1, emu.FrameCount())
}

func TestPPUAdvancesAcrossMultipleFrames(t *testing.T) {
	data := blankCartridge()
	emu, err := gbcore.NewWithCartridgeBytes(data)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		emu.StepFrame()
	}
	assert.Equal(t, uint64(3), emu.FrameCount())
}

func TestJoypadInterruptReachesCPUThroughFullStepLoop(t *testing.T) {
	data := blankCartridge()
	// Entry point: DI; EI; HALT; loop forever after waking.
	data[0x0100] = 0xF3 // DI
	data[0x0101] = 0xFB // EI
	data[0x0102] = 0x76 // HALT
	data[0x0103] = 0x18 // JR -2 (spin once woken)
	data[0x0104] = 0xFE

	emu, err := gbcore.NewWithCartridgeBytes(data)
	require.NoError(t, err)

	// Run DI, EI, HALT.
	for emu.InstructionCount() < 3 {
		emu.Step()
	}
	assert.True(t, emu.CPU().Halted())

	emu.MMU().Write(0xFFFF, 0x10) // IE: enable the joypad interrupt
	emu.MMU().Write(0xFF00, 0x00) // select both button groups so the press edge is visible
	emu.Press(memory.JoypadStart)

	for i := 0; i < 10 && emu.CPU().Halted(); i++ {
		emu.Step()
	}
	assert.False(t, emu.CPU().Halted(), "HALT must wake once a joypad interrupt becomes pending")
}

func TestInstructionAndFrameCountersAdvanceMonotonically(t *testing.T) {
	data := blankCartridge()
	emu, err := gbcore.NewWithCartridgeBytes(data)
	require.NoError(t, err)

	var lastInstr uint64
	for i := 0; i < 1000; i++ {
		emu.Step()
		assert.GreaterOrEqual(t, emu.InstructionCount(), lastInstr)
		lastInstr = emu.InstructionCount()
	}
}
