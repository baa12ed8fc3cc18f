package memory

import (
	"github.com/kallisti-dev/gbcore/addr"
	"github.com/kallisti-dev/gbcore/bit"
)

// JoypadKey identifies one of the eight DMG buttons.
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// Joypad tracks button/d-pad state and composes the 0xFF00 register value
// from the guest's selection bits each time the register is read, matching
// the hardware's lazy, selection-dependent read.
type Joypad struct {
	buttons uint8 // bit clear = pressed; bits 0-3 = A,B,Select,Start
	dpad    uint8 // bit clear = pressed; bits 0-3 = Right,Left,Up,Down

	selectBits       uint8 // bits 4-5 of P1 as last written by the guest
	requestInterrupt func(addr.Interrupt)
}

// NewJoypad returns a Joypad with no buttons pressed.
func NewJoypad(requestInterrupt func(addr.Interrupt)) *Joypad {
	return &Joypad{
		buttons:          0x0F,
		dpad:             0x0F,
		selectBits:       0x30,
		requestInterrupt: requestInterrupt,
	}
}

// Press marks key as held down, raising a Joypad interrupt on the
// high-to-low transition of the corresponding bit.
func (j *Joypad) Press(key JoypadKey) {
	before := j.Read()
	switch {
	case key <= JoypadDown:
		j.dpad = bit.Reset(uint8(key), j.dpad)
	default:
		j.buttons = bit.Reset(uint8(key)-4, j.buttons)
	}
	after := j.composedLine()
	if before&^after&0x0F != 0 && j.requestInterrupt != nil {
		j.requestInterrupt(addr.Joypad)
	}
}

// Release marks key as no longer held down.
func (j *Joypad) Release(key JoypadKey) {
	switch {
	case key <= JoypadDown:
		j.dpad = bit.Set(uint8(key), j.dpad)
	default:
		j.buttons = bit.Set(uint8(key)-4, j.buttons)
	}
}

// WriteSelect updates the selection bits (4-5) written by the guest to P1.
func (j *Joypad) WriteSelect(value uint8) {
	j.selectBits = value & 0x30
}

// Read composes and returns the current value of the 0xFF00 register.
func (j *Joypad) Read() uint8 {
	return 0xC0 | j.selectBits | (j.composedLine() & 0x0F)
}

func (j *Joypad) composedLine() uint8 {
	selectDpad := !bit.IsSet(4, j.selectBits)
	selectButtons := !bit.IsSet(5, j.selectBits)

	switch {
	case selectButtons && !selectDpad:
		return j.buttons
	case selectDpad && !selectButtons:
		return j.dpad
	case selectButtons && selectDpad:
		return j.buttons & j.dpad
	default:
		return 0x0F
	}
}
