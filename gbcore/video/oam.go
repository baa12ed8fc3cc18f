package video

// sprite is one decoded OAM entry plus its original table index, which
// breaks X-position ties during priority resolution.
type sprite struct {
	y, x      int
	tileIndex uint8
	flags     uint8
	oamIndex  int
}

func (s sprite) bgPriority() bool { return s.flags&0x80 != 0 }
func (s sprite) flipY() bool      { return s.flags&0x40 != 0 }
func (s sprite) flipX() bool      { return s.flags&0x20 != 0 }
func (s sprite) paletteOBP1() bool { return s.flags&0x10 != 0 }

// scanSprites reads all 40 OAM entries and returns up to 10 whose
// vertical range contains line, in OAM order, per spec §4.4.
func scanSprites(mem vramReader, line int, height int) []sprite {
	sprites := make([]sprite, 0, 10)
	for i := 0; i < 40; i++ {
		base := uint16(0xFE00 + i*4)
		rawY := int(mem.Read(base))
		rawX := int(mem.Read(base + 1))
		tile := mem.Read(base + 2)
		flags := mem.Read(base + 3)

		spriteY := rawY - 16
		if rawX == 0 {
			continue
		}
		if line < spriteY || line >= spriteY+height {
			continue
		}

		sprites = append(sprites, sprite{
			y: spriteY, x: rawX - 8,
			tileIndex: tile, flags: flags, oamIndex: i,
		})
		if len(sprites) == 10 {
			break
		}
	}
	return sprites
}
