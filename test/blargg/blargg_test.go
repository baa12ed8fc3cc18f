// Package blargg runs the Blargg cpu_instrs conformance ROMs, if present.
//
// These ROMs are not distributed with this repository. Drop the
// individual test ROMs (01-special.gb .. 11-op a,(hl).gb) under
// testdata/ to exercise this suite; the combined cpu_instrs.gb is not
// looked for. A subtest whose ROM is absent skips.
package blargg

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kallisti-dev/gbcore"
)

// lineCollector is a slog.Handler that captures the "line" attribute of
// every "serial" record the emulator's LogSink emits, in order. Blargg
// ROMs report PASS/FAIL by printing a line over the serial port, so
// watching the logger is simpler and more reliable than polling the
// serial data register every instruction.
type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineCollector) Enabled(context.Context, slog.Level) bool { return true }
func (l *lineCollector) WithAttrs(attrs []slog.Attr) slog.Handler { return l }
func (l *lineCollector) WithGroup(name string) slog.Handler       { return l }
func (l *lineCollector) Handle(_ context.Context, r slog.Record) error {
	if r.Message != "serial" {
		return nil
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "line" {
			l.mu.Lock()
			l.lines = append(l.lines, a.Value.String())
			l.mu.Unlock()
		}
		return true
	})
	return nil
}

func (l *lineCollector) text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

var cpuInstrsROMs = []string{
	"01-special.gb",
	"02-interrupts.gb",
	"03-op sp,hl.gb",
	"04-op r,imm.gb",
	"05-op rp.gb",
	"06-ld r,r.gb",
	"07-jr,jp,call,ret,rst.gb",
	"08-misc instrs.gb",
	"09-op r,r.gb",
	"10-bit ops.gb",
	"11-op a,(hl).gb",
}

// maxInstructions bounds how long a conformance run is allowed to spin
// before declaring it hung rather than waiting forever.
const maxInstructions = 200_000_000

func TestBlarggCPUInstrs(t *testing.T) {
	for _, name := range cpuInstrsROMs {
		name := name
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("testdata", name)
			data, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				t.Skipf("test ROM not present: %s", path)
			}
			require.NoError(t, err)

			prev := slog.Default()
			collector := &lineCollector{}
			slog.SetDefault(slog.New(collector))
			defer slog.SetDefault(prev)

			emu, err := gbcore.NewWithCartridgeBytes(data)
			require.NoError(t, err)

			deadline := time.Now().Add(30 * time.Second)

			for i := 0; i < maxInstructions; i++ {
				emu.Step()

				text := collector.text()
				if strings.Contains(text, "Passed") {
					return
				}
				if strings.Contains(text, "Failed") {
					t.Fatalf("ROM reported failure:\n%s", text)
				}
				if i%4096 == 0 && time.Now().After(deadline) {
					t.Fatalf("timed out waiting for Passed/Failed, output so far:\n%s", text)
				}
			}
			t.Fatalf("exceeded instruction budget without a result, output so far:\n%s", collector.text())
		})
	}
}
