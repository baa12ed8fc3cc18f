package video

// spritePriorityBuffer tracks, per column of the current scanline, which
// sprite (by OAM index) currently owns that pixel and at what X it was
// placed. Ownership model instead of a full pre-sort: a candidate sprite
// claims a pixel only if the pixel is unowned, or the candidate's X is
// strictly smaller than the X of whichever sprite owns it (leftmost wins;
// ties keep the earlier, lower-OAM-index sprite since it was placed first).
type spritePriorityBuffer struct {
	ownerIndex [Width]int
	ownerX     [Width]int
}

func (b *spritePriorityBuffer) clear() {
	for i := range b.ownerIndex {
		b.ownerIndex[i] = -1
		b.ownerX[i] = 0xFF
	}
}

// tryClaim reports whether spriteIndex successfully claims column x at
// sprite-x position spriteX, recording ownership if so.
func (b *spritePriorityBuffer) tryClaim(x int, spriteIndex int, spriteX int) bool {
	if x < 0 || x >= Width {
		return false
	}
	if b.ownerIndex[x] == -1 || spriteX < b.ownerX[x] {
		b.ownerIndex[x] = spriteIndex
		b.ownerX[x] = spriteX
		return true
	}
	return false
}

func (b *spritePriorityBuffer) owner(x int) int {
	return b.ownerIndex[x]
}
