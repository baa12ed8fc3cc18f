//go:build !sdl2

package render

import (
	"errors"

	"github.com/kallisti-dev/gbcore/video"
)

// SDL2 is the no-cgo stand-in used when the module is built without the
// sdl2 tag: every method reports that the backend wasn't compiled in.
type SDL2 struct{}

// NewSDL2 always fails: build with -tags sdl2 to get a real backend.
func NewSDL2() (*SDL2, error) {
	return nil, errors.New("render: sdl2 backend not built (rebuild with -tags sdl2)")
}

// Draw never runs; SDL2 stubs always fail at construction.
func (s *SDL2) Draw(frame *video.FrameBuffer) error {
	return errors.New("render: sdl2 backend not built (rebuild with -tags sdl2)")
}

// Destroy is a no-op on the stub.
func (s *SDL2) Destroy() {}
