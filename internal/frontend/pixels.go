package frontend

// BytesPerPixel is the size of a pixel in an RGBA buffer.
const BytesPerPixel = 4

// FillRGBA converts ARGB pixels to the R, G, B, A byte order of an RGBA32
// texture. The alpha channel is always opaque. The buffer has to hold
// BytesPerPixel bytes per pixel of the frame.
func FillRGBA(buffer []byte, frame []uint32) {
	for i, c := range frame {
		offset := i * BytesPerPixel
		buffer[offset+0] = byte(c >> 16)
		buffer[offset+1] = byte(c >> 8)
		buffer[offset+2] = byte(c)
		buffer[offset+3] = 0xFF
	}
}
