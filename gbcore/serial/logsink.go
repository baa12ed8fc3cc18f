// Package serial implements the observational serial port sink used in
// place of a real link-cable peer: it tracks SB/SC state and completes
// transfers so that host tooling and conformance tests can watch bytes go
// out over 0xFF01/0xFF02 the way real test ROMs are observed.
package serial

import (
	"log/slog"

	"github.com/kallisti-dev/gbcore/addr"
	"github.com/kallisti-dev/gbcore/bit"
)

const transferCycles = 4096 // t-cycles: 8 bits at the 8192 Hz internal clock

// LogSink is a serial port with no connected peer: every transfer receives
// 0xFF back and is logged one line at a time, split on NUL/CR/LF.
type LogSink struct {
	irqHandler func()
	logger     *slog.Logger

	sb, sc         byte
	transferActive bool
	countdown      int
	line           []byte
}

// Option configures a LogSink at construction time.
type Option func(*LogSink)

// WithLogger overrides the default logger used for completed lines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *LogSink) { s.logger = logger }
}

// NewLogSink returns a LogSink that calls irq when a transfer completes.
func NewLogSink(irq func(), opts ...Option) *LogSink {
	s := &LogSink{irqHandler: irq, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Read returns the value of SB or SC.
func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E
	default:
		return 0xFF
	}
}

// Write handles a guest write to SB or SC.
func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStartTransfer()
	}
}

// Tick advances any in-flight transfer by the given number of t-cycles.
func (s *LogSink) Tick(tCycles int) {
	if !s.transferActive {
		return
	}
	s.countdown -= tCycles
	if s.countdown <= 0 {
		s.completeTransfer()
	}
}

// Reset clears the port to its post-boot idle state.
func (s *LogSink) Reset() {
	s.sb = 0
	s.sc = 0
	s.transferActive = false
	s.countdown = 0
	s.line = s.line[:0]
}

func (s *LogSink) maybeStartTransfer() {
	if s.transferActive {
		return
	}
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.transferActive = true
	s.countdown = transferCycles
}

func (s *LogSink) completeTransfer() {
	s.sb = 0xFF
	s.sc = bit.Reset(7, s.sc)
	s.transferActive = false
	s.countdown = 0
	if s.irqHandler != nil {
		s.irqHandler()
	}
}
