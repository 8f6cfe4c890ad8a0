// Package display implements the 64x32 monochrome CHIP-8 framebuffer.
package display

// Screen dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Default colors used by Snapshot callers, in ARGB8888.
const (
	Foreground uint32 = 0xFFFFFFFF
	Background uint32 = 0x00000000
)

// Display is a row-major grid of 1-bit pixels.
type Display struct {
	pixels [Height][Width]bool
	dirty  bool
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = [Height][Width]bool{}
	d.dirty = true
}

// Draw XORs the 8 pixel wide sprite rows onto the screen. The origin is
// wrapped into the screen and every pixel wraps around the edges.
// It returns whether any pixel was turned off.
func (d *Display) Draw(x, y byte, sprite []byte) bool {
	originX := int(x) % Width
	originY := int(y) % Height
	collision := false

	for row, line := range sprite {
		py := (originY + row) % Height
		for bit := range 8 {
			if line&(0x80>>bit) == 0 {
				continue
			}
			px := (originX + bit) % Width
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	d.dirty = true
	return collision
}

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates wrap around the screen.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, Height)][wrap(x, Width)]
}

// Snapshot returns a copy of the screen with each pixel mapped to fg or bg.
func (d *Display) Snapshot(fg, bg uint32) []uint32 {
	buf := make([]uint32, Width*Height)
	for y := range Height {
		for x := range Width {
			if d.pixels[y][x] {
				buf[y*Width+x] = fg
			} else {
				buf[y*Width+x] = bg
			}
		}
	}
	return buf
}

// Dirty returns whether the screen changed since the last TakeFrame.
func (d *Display) Dirty() bool {
	return d.dirty
}

// TakeFrame returns a snapshot in the default colors and resets the dirty flag.
func (d *Display) TakeFrame() []uint32 {
	d.dirty = false
	return d.Snapshot(Foreground, Background)
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
