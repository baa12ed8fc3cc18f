// Package memory implements the DMG address space: cartridge decoding and
// bank switching, work/video/high RAM, and the region-dispatched bus that
// ties them together with the timer, joypad and serial components.
package memory

import (
	"fmt"
	"log/slog"

	"github.com/kallisti-dev/gbcore/addr"
	"github.com/kallisti-dev/gbcore/bit"
)

type region uint8

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionUnused
	regionIO
	regionHRAM
)

// MMU is the memory-mapped bus: every CPU and PPU memory access goes
// through Read/Write, which dispatch by address region to the cartridge's
// MBC, flat RAM, or one of the I/O components.
type MMU struct {
	mbc    MBC
	vram   [0x2000]byte
	wram   [0x2000]byte
	oam    [0xA0]byte
	unused [0x60]byte
	hram   [0x7F]byte
	ie     byte
	ifReg  byte

	lcdc, stat, scy, scx, ly, lyc byte
	bgp, obp0, obp1               byte
	wy, wx                        byte

	regionMap [256]region

	timer  *Timer
	joypad *Joypad
	serial interface {
		Read(uint16) byte
		Write(uint16, byte)
		Tick(int)
	}

	logger *slog.Logger
}

// New returns an MMU with no cartridge loaded (all ROM/ExtRAM reads are
// 0xFF), LCDC at its post-boot value 0x91 (LCD and background on) and the
// other I/O registers at zero.
func New(logger *slog.Logger) *MMU {
	if logger == nil {
		logger = slog.Default()
	}
	m := &MMU{logger: logger}
	m.lcdc = 0x91
	initRegionMap(m)
	m.timer = NewTimer(m.RequestInterrupt)
	m.joypad = NewJoypad(m.RequestInterrupt)
	return m
}

// NewWithCartridge returns an MMU backed by cart's decoded MBC.
func NewWithCartridge(cart *Cartridge, logger *slog.Logger) (*MMU, error) {
	m := New(logger)
	switch cart.MBCType() {
	case NoMBCType:
		m.mbc = NewNoMBC(cart.Data())
	case MBC1Type:
		m.mbc = NewMBC1(cart.Data(), cart.HasBattery(), cart.RAMBankCount())
	case MBC3Type:
		m.mbc = NewMBC3(cart.Data(), cart.HasBattery(), cart.RAMBankCount())
	default:
		return nil, fmt.Errorf("memory: unsupported MBC type %d", cart.MBCType())
	}
	return m, nil
}

// SetSerial installs the serial port component. Kept as a setter (rather
// than a constructor parameter) so memory and serial don't import each
// other: the façade wires the concrete *serial.LogSink in after both are
// constructed.
func (m *MMU) SetSerial(s interface {
	Read(uint16) byte
	Write(uint16, byte)
	Tick(int)
}) {
	m.serial = s
}

func initRegionMap(m *MMU) {
	for i := 0; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		m.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		m.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		m.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	m.regionMap[0xFE] = regionOAM
	m.regionMap[0xFF] = regionIO
}

// Tick advances the timer and then the serial port by tCycles. The joypad
// has no per-tick state: P1 is composed when it is read.
func (m *MMU) Tick(tCycles int) {
	m.timer.Tick(tCycles)
	if m.serial != nil {
		m.serial.Tick(tCycles)
	}
}

// PressKey marks a joypad button as held.
func (m *MMU) PressKey(key JoypadKey) { m.joypad.Press(key) }

// ReleaseKey marks a joypad button as released.
func (m *MMU) ReleaseKey(key JoypadKey) { m.joypad.Release(key) }

// RequestInterrupt sets the IF bit for the given interrupt source.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	m.ifReg = bit.Set(interrupt.Bit(), m.ifReg)
}

// InterruptEnable returns the IE register.
func (m *MMU) InterruptEnable() byte { return m.ie }

// InterruptFlags returns the IF register.
func (m *MMU) InterruptFlags() byte { return m.ifReg }

// ClearInterruptFlag clears the IF bit for the given interrupt source,
// called once the CPU begins servicing it.
func (m *MMU) ClearInterruptFlag(interrupt addr.Interrupt) {
	m.ifReg = bit.Reset(interrupt.Bit(), m.ifReg)
}

// ReadBit reports whether the given bit of the byte at address is set.
func (m *MMU) ReadBit(index uint8, address uint16) bool {
	return bit.IsSet(index, m.Read(address))
}

// Read returns the byte at address, dispatching by memory region.
func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc == nil {
			return 0xFF
		}
		return m.mbc.Read(address)
	case regionVRAM:
		return m.vram[address-0x8000]
	case regionWRAM:
		return m.wram[address-0xC000]
	case regionEcho:
		return m.wram[address-0xE000]
	case regionOAM:
		if address <= addr.OAMEnd {
			return m.oam[address-addr.OAMStart]
		}
		return m.unused[address-0xFEA0]
	case regionIO:
		return m.readIO(address)
	default:
		return 0xFF
	}
}

// Write stores value at address, dispatching by memory region.
func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc != nil {
			m.mbc.Write(address, value)
		}
	case regionVRAM:
		m.vram[address-0x8000] = value
	case regionWRAM:
		m.wram[address-0xC000] = value
	case regionEcho:
		m.wram[address-0xE000] = value
	case regionOAM:
		if address <= addr.OAMEnd {
			m.oam[address-addr.OAMStart] = value
		} else {
			m.unused[address-0xFEA0] = value
		}
	case regionIO:
		m.writeIO(address, value)
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		return m.joypad.Read()
	case address == addr.SB || address == addr.SC:
		if m.serial != nil {
			return m.serial.Read(address)
		}
		return 0xFF
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return m.timer.Read(address)
	case address == addr.IF:
		return m.ifReg | 0xE0
	case address == addr.LCDC:
		return m.lcdc
	case address == addr.STAT:
		return m.stat | 0x80
	case address == addr.SCY:
		return m.scy
	case address == addr.SCX:
		return m.scx
	case address == addr.LY:
		return m.ly
	case address == addr.LYC:
		return m.lyc
	case address == addr.BGP:
		return m.bgp
	case address == addr.OBP0:
		return m.obp0
	case address == addr.OBP1:
		return m.obp1
	case address == addr.WY:
		return m.wy
	case address == addr.WX:
		return m.wx
	case address == addr.IE:
		return m.ie
	case address >= 0xFF80 && address <= 0xFFFE:
		return m.hram[address-0xFF80]
	default:
		return 0xFF
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		m.joypad.WriteSelect(value)
	case address == addr.SB || address == addr.SC:
		if m.serial != nil {
			m.serial.Write(address, value)
		}
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		m.timer.Write(address, value)
	case address == addr.IF:
		m.ifReg = value & 0x1F
	case address == addr.LCDC:
		m.lcdc = value
	case address == addr.STAT:
		m.stat = (m.stat & 0x07) | (value &^ 0x07)
	case address == addr.SCY:
		m.scy = value
	case address == addr.SCX:
		m.scx = value
	case address == addr.LY:
		// read-only on real hardware
	case address == addr.LYC:
		m.lyc = value
	case address == addr.DMA:
		m.runDMA(value)
	case address == addr.BGP:
		m.bgp = value
	case address == addr.OBP0:
		m.obp0 = value
	case address == addr.OBP1:
		m.obp1 = value
	case address == addr.WY:
		m.wy = value
	case address == addr.WX:
		m.wx = value
	case address == addr.IE:
		m.ie = value
	case address >= 0xFF80 && address <= 0xFFFE:
		m.hram[address-0xFF80] = value
	}
}

// runDMA performs the synchronous 160-byte OAM DMA copy triggered by a
// write to 0xFF46: source is value<<8, destination is OAM 0xFE00-0xFE9F.
func (m *MMU) runDMA(value byte) {
	source := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		m.oam[i] = m.Read(source + i)
	}
}

// SetLY is used by the PPU to update the LY register.
func (m *MMU) SetLY(line byte) {
	m.ly = line
}

// STATMode returns the current mode bits (0-1) of STAT.
func (m *MMU) STATMode() byte { return m.stat & 0x03 }

// SetSTATMode rewrites the mode bits (0-1) of STAT, leaving the rest intact.
func (m *MMU) SetSTATMode(mode byte) {
	m.stat = (m.stat & 0xFC) | (mode & 0x03)
}

// SetLYCFlag rewrites STAT bit 2 (LYC==LY coincidence).
func (m *MMU) SetLYCFlag(set bool) {
	if set {
		m.stat = bit.Set(2, m.stat)
	} else {
		m.stat = bit.Reset(2, m.stat)
	}
}

// LCDC returns the raw LCD control register.
func (m *MMU) LCDC() byte { return m.lcdc }

// STAT returns the raw LCD status register.
func (m *MMU) STAT() byte { return m.stat }

// LY returns the current scanline register.
func (m *MMU) LY() byte { return m.ly }

// LYC returns the LY-compare register.
func (m *MMU) LYC() byte { return m.lyc }

// SCY returns the background scroll-Y register.
func (m *MMU) SCY() byte { return m.scy }

// SCX returns the background scroll-X register.
func (m *MMU) SCX() byte { return m.scx }

// WY returns the window Y position register.
func (m *MMU) WY() byte { return m.wy }

// WX returns the window X position register.
func (m *MMU) WX() byte { return m.wx }

// BGP returns the background palette register.
func (m *MMU) BGP() byte { return m.bgp }

// OBP0 returns sprite palette 0.
func (m *MMU) OBP0() byte { return m.obp0 }

// OBP1 returns sprite palette 1.
func (m *MMU) OBP1() byte { return m.obp1 }
