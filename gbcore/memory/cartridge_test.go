package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalROM(cartType, romSizeCode, ramSizeCode byte) []byte {
	data := make([]byte, 0x8000)
	copy(data[0x0134:], []byte("TESTGAME"))
	data[0x0147] = cartType
	data[0x0148] = romSizeCode
	data[0x0149] = ramSizeCode
	return data
}

func TestCartridgeParsesTitleAndMBCType(t *testing.T) {
	data := minimalROM(0x01, 0x00, 0x00)
	cart, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, "TESTGAME", cart.Title())
	assert.Equal(t, MBC1Type, cart.MBCType())
}

func TestCartridgeRejectsUnsupportedType(t *testing.T) {
	data := minimalROM(0x06, 0x00, 0x00) // MBC2, out of scope
	_, err := NewCartridge(data)
	assert.Error(t, err)
}

func TestCartridgeRAMBankCountFromSizeCode(t *testing.T) {
	data := minimalROM(0x03, 0x00, 0x03) // MBC1+RAM+BATTERY, 32KB RAM
	cart, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), cart.RAMBankCount())
	assert.True(t, cart.HasBattery())
}

func TestCartridgeTitleCleanup(t *testing.T) {
	data := minimalROM(0x00, 0x00, 0x00)
	for i := range data[0x0134:0x0142] {
		data[0x0134+i] = 0
	}
	cart, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, "(Untitled)", cart.Title())
}
