//go:build sdl2

package render

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/kallisti-dev/gbcore/video"
)

const renderScale = 3

// SDL2 is an optional windowed presentation backend, built only when the
// sdl2 build tag is set (it needs cgo and a system SDL2 library this
// module can't assume is present).
type SDL2 struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

// NewSDL2 opens a window sized to the DMG framebuffer scaled by renderScale.
func NewSDL2() (*SDL2, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("render: sdl2 init: %w", err)
	}

	window, renderer, err := sdl.CreateWindowAndRenderer(
		video.Width*renderScale, video.Height*renderScale, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("render: sdl2 window: %w", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		return nil, fmt.Errorf("render: sdl2 texture: %w", err)
	}

	return &SDL2{window: window, renderer: renderer, texture: texture}, nil
}

// Draw uploads frame to the texture and presents it.
func (s *SDL2) Draw(frame *video.FrameBuffer) error {
	pixels := make([]byte, video.Size*4)
	for i, idx := range frame.Pixels {
		rgba := RGBA[idx&0x03]
		copy(pixels[i*4:i*4+4], rgba[:])
	}

	if err := s.texture.Update(nil, pixels, video.Width*4); err != nil {
		return err
	}
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

// Destroy releases the window, renderer and texture.
func (s *SDL2) Destroy() {
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
