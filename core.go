// Package gbcore is the Gameboy façade from spec §4.7: it owns the CPU,
// PPU and memory bus, and implements the fixed per-m-cycle ordering that
// spec §5 requires (CPU interrupt check, then instruction/service/idle,
// then the PPU tick, then the timer and serial ticks; the joypad register
// is composed on read and has no tick).
package gbcore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kallisti-dev/gbcore/addr"
	"github.com/kallisti-dev/gbcore/cpu"
	"github.com/kallisti-dev/gbcore/memory"
	"github.com/kallisti-dev/gbcore/serial"
	"github.com/kallisti-dev/gbcore/video"
)

const cyclesPerFrame = 70224

// Emulator owns one Gameboy instance: its bus, CPU and PPU, and the
// bookkeeping a host shell or test needs (frame/instruction counters,
// serial output).
type Emulator struct {
	cpu *cpu.CPU
	ppu *video.PPU
	mem *memory.MMU

	instructionCount uint64
	totalTCycles     int

	logger *slog.Logger
}

// New returns an Emulator with no cartridge loaded; useful for CPU/bus
// unit tests that don't need a ROM image.
func New() *Emulator {
	return newWithLogger(slog.Default())
}

// NewWithFile loads the ROM at path and returns a ready-to-run Emulator.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gbcore: reading ROM %q: %w", path, err)
	}
	return NewWithCartridgeBytes(data)
}

// NewWithCartridgeBytes parses data as a cartridge image and returns a
// ready-to-run Emulator.
func NewWithCartridgeBytes(data []byte) (*Emulator, error) {
	cart, err := memory.NewCartridge(data)
	if err != nil {
		return nil, fmt.Errorf("gbcore: parsing cartridge: %w", err)
	}

	e := newWithLogger(slog.Default())
	mem, err := memory.NewWithCartridge(cart, e.logger)
	if err != nil {
		return nil, fmt.Errorf("gbcore: building bus: %w", err)
	}
	e.attach(mem)

	e.logger.Debug("cartridge loaded",
		"title", cart.Title(), "mbc", cart.MBCType(), "ramBanks", cart.RAMBankCount())
	return e, nil
}

func newWithLogger(logger *slog.Logger) *Emulator {
	e := &Emulator{logger: logger}
	e.attach(memory.New(logger))
	return e
}

func (e *Emulator) attach(mem *memory.MMU) {
	e.mem = mem
	e.mem.SetSerial(serial.NewLogSink(func() { e.mem.RequestInterrupt(addr.Serial) }, serial.WithLogger(e.logger)))
	e.cpu = cpu.New(mem)
	e.ppu = video.NewPPU(mem)
}

// Step runs one fetch-decode-execute cycle (or one interrupt service, or
// one halted idle), then ticks the PPU and then the timer and serial port
// by the same m-cycle count. Returns the number of m-cycles consumed.
func (e *Emulator) Step() int {
	mCycles := e.cpu.Step(e.mem)
	tCycles := mCycles * 4

	e.ppu.Tick(tCycles)
	e.mem.Tick(tCycles)

	e.instructionCount++
	e.totalTCycles += tCycles
	return mCycles
}

// StepFrame runs Step repeatedly until a full frame's worth of t-cycles
// (70224) has elapsed, then returns.
func (e *Emulator) StepFrame() {
	accumulated := 0
	for accumulated < cyclesPerFrame {
		mCycles := e.Step()
		accumulated += mCycles * 4
	}
}

// Press marks button as held down.
func (e *Emulator) Press(button memory.JoypadKey) { e.mem.PressKey(button) }

// Release marks button as no longer held.
func (e *Emulator) Release(button memory.JoypadKey) { e.mem.ReleaseKey(button) }

// LCD returns the current framebuffer: 160x144 palette indices in {0,1,2,3}.
func (e *Emulator) LCD() *video.FrameBuffer { return e.ppu.Frame() }

// SerialOut returns the current value of the serial data register (0xFF01).
func (e *Emulator) SerialOut() byte { return e.mem.Read(0xFF01) }

// FrameCount returns the number of frames the PPU has completed.
func (e *Emulator) FrameCount() uint64 { return e.ppu.FrameCount() }

// InstructionCount returns the number of Step calls made so far.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// MMU returns the underlying bus, for tests and debug tooling.
func (e *Emulator) MMU() *memory.MMU { return e.mem }

// CPU returns the underlying CPU, for tests and debug tooling.
func (e *Emulator) CPU() *cpu.CPU { return e.cpu }
