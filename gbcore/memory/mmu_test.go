package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kallisti-dev/gbcore/addr"
)

func TestOAMDMACopiesFromSource(t *testing.T) {
	m := New(nil)
	for i := uint16(0); i < 160; i++ {
		m.Write(0xC000+i, byte(i))
	}

	m.Write(addr.DMA, 0xC0)

	for i := uint16(0); i < 160; i++ {
		assert.Equal(t, byte(i), m.Read(addr.OAMStart+i))
	}
}

func TestEchoMirrorsWRAM(t *testing.T) {
	m := New(nil)
	m.Write(0xC010, 0x7A)
	assert.Equal(t, byte(0x7A), m.Read(0xE010))
}

func TestIFUpperBitsAlwaysRead1(t *testing.T) {
	m := New(nil)
	m.Write(addr.IF, 0x01)
	assert.Equal(t, byte(0xE1), m.Read(addr.IF))
}

func TestJoypadSelectionComposesBothMatrices(t *testing.T) {
	m := New(nil)
	m.PressKey(JoypadA)
	m.PressKey(JoypadRight)

	m.Write(addr.P1, 0x00) // select both nibbles
	got := m.Read(addr.P1)
	assert.Equal(t, byte(0), got&0x01, "A pressed must read as 0 in the composed nibble")
}

func TestUnusedOAMRangeReturnsStoredBytes(t *testing.T) {
	m := New(nil)
	m.Write(0xFEA0, 0x55)
	assert.Equal(t, byte(0x55), m.Read(0xFEA0))
}
