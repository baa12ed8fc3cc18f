package memory

import (
	"fmt"
	"unicode"
)

// MBCType identifies which memory bank controller a cartridge uses.
type MBCType uint8

const (
	NoMBCType MBCType = iota
	MBC1Type
	MBC3Type
	MBCUnknownType
)

const (
	titleAddress = 0x0134
	titleLength  = 11

	cartTypeAddress    = 0x0147
	romSizeAddress     = 0x0148
	ramSizeAddress     = 0x0149
	headerChecksumAddr = 0x014D
)

// ramSizeTable maps the 0x0149 RAM size code to bytes of external RAM.
var ramSizeTable = [...]uint32{0, 0, 8192, 32768, 131072, 65536}

// Cartridge holds the raw ROM image and the header fields decoded from it.
type Cartridge struct {
	data []byte

	title          string
	mbcType        MBCType
	hasBattery     bool
	romSize        uint32
	ramBankCount   uint8
	headerChecksum byte
}

// NewCartridge parses a raw ROM image into a Cartridge.
//
// An unsupported or unrecognized MBC type is reported as an error rather
// than silently degraded: the caller's ROM would otherwise run with memory
// banking it never asked for.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < 0x150 {
		return nil, fmt.Errorf("memory: cartridge image too small (%d bytes)", len(data))
	}

	cart := &Cartridge{data: data}
	cart.title = cleanGameboyTitle(data[titleAddress : titleAddress+titleLength])
	cart.headerChecksum = data[headerChecksumAddr]

	mbcType, hasBattery, err := decodeCartType(data[cartTypeAddress])
	if err != nil {
		return nil, err
	}
	cart.mbcType = mbcType
	cart.hasBattery = hasBattery

	cart.romSize = 0x8000 << data[romSizeAddress]

	ramCode := data[ramSizeAddress]
	if int(ramCode) >= len(ramSizeTable) {
		return nil, fmt.Errorf("memory: unknown RAM size code 0x%02X", ramCode)
	}
	ramBytes := ramSizeTable[ramCode]
	cart.ramBankCount = uint8(ramBytes / 0x2000)

	return cart, nil
}

func decodeCartType(code byte) (MBCType, bool, error) {
	switch code {
	case 0x00:
		return NoMBCType, false, nil
	case 0x01, 0x02:
		return MBC1Type, false, nil
	case 0x03:
		return MBC1Type, true, nil
	case 0x0F, 0x10, 0x11, 0x12:
		return MBC3Type, false, nil
	case 0x13:
		return MBC3Type, true, nil
	default:
		return MBCUnknownType, false, fmt.Errorf("memory: unsupported cartridge type 0x%02X", code)
	}
}

// cleanGameboyTitle converts a raw title field into a printable string,
// turning NUL padding into spaces and non-printable bytes into '?'.
func cleanGameboyTitle(titleBytes []byte) string {
	runes := make([]rune, 0, len(titleBytes))
	for _, b := range titleBytes {
		switch {
		case b == 0:
			runes = append(runes, ' ')
		case unicode.IsPrint(rune(b)):
			runes = append(runes, rune(b))
		default:
			runes = append(runes, '?')
		}
	}

	title := trimSpace(string(runes))
	if title == "" {
		return "(Untitled)"
	}
	return title
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && s[start] == ' ' {
		start++
	}
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}

// Title returns the cleaned cartridge title from the header.
func (c *Cartridge) Title() string { return c.title }

// MBCType returns the decoded memory bank controller type.
func (c *Cartridge) MBCType() MBCType { return c.mbcType }

// HasBattery reports whether the cartridge type byte indicates battery-backed RAM.
func (c *Cartridge) HasBattery() bool { return c.hasBattery }

// RAMBankCount returns the number of 8KB external RAM banks.
func (c *Cartridge) RAMBankCount() uint8 { return c.ramBankCount }

// HeaderChecksum returns the raw header checksum byte at 0x014D.
// It is informational only: a mismatch does not fail construction.
func (c *Cartridge) HeaderChecksum() byte { return c.headerChecksum }

// Data returns the raw ROM bytes.
func (c *Cartridge) Data() []byte { return c.data }
