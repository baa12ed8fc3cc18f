// Package render holds host-presentation helpers shared by the CLI
// backends (terminal, optional SDL2): converting the core's palette-index
// framebuffer into a form a display library can draw, and the actual
// backends themselves.
package render

// RGBA is the classic DMG four-shade palette, index matching the core's
// palette indices {0,1,2,3}.
var RGBA = [4][4]uint8{
	0: {0xFF, 0xFF, 0xFF, 0xFF}, // white
	1: {0x98, 0x98, 0x98, 0xFF}, // light grey
	2: {0x4C, 0x4C, 0x4C, 0xFF}, // dark grey
	3: {0x00, 0x00, 0x00, 0xFF}, // black
}
