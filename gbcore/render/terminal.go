package render

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kallisti-dev/gbcore/video"
)

const frameTime = time.Second / 60

var shadeChars = [4]rune{'█', '▓', '▒', ' '}

// Machine is the subset of *gbcore.Emulator the terminal renderer drives.
type Machine interface {
	StepFrame()
	LCD() *video.FrameBuffer
}

// Terminal is a tcell-based presentation backend: one character cell per
// pixel, shaded by palette index.
type Terminal struct {
	screen  tcell.Screen
	machine Machine
	running bool
}

// NewTerminal initializes a tcell screen for machine.
func NewTerminal(machine Machine) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, machine: machine, running: true}, nil
}

// Run drives the machine at 60 Hz until the user quits (Escape) or the
// process receives SIGINT/SIGTERM.
func (t *Terminal) Run() error {
	defer t.screen.Fini()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.pollInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for t.running {
		select {
		case <-ticker.C:
			t.machine.StepFrame()
			t.draw()
			t.screen.Show()
		case <-signals:
			return nil
		}
	}
	return nil
}

func (t *Terminal) pollInput() {
	for t.running {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape {
				t.running = false
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) draw() {
	frame := t.machine.LCD()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y := 0; y < video.Height; y++ {
		row := frame.Row(y)
		for x := 0; x < video.Width; x++ {
			t.screen.SetContent(x, y, shadeChars[row[x]&0x03], nil, style)
		}
	}
}
