package raw

// RAW10 CSI-2 packed format: 4 pixels (10 bits each) → 5 bytes.
// The fifth byte carries the four pixels' two high-order bits, pixel 0 in
// bits 0-1 through pixel 3 in bits 6-7.

// Raw10Stride returns the packed bytes per line for the given width.
func Raw10Stride(width uint32) uint32 {
	return (width*10 + 7) / 8
}

// UnpackRaw10 expands a packed RAW10 buffer into 16-bit samples, 10
// meaningful low bits, upper bits zero. dst must hold width*height elements.
//
// When width is not a multiple of 4 the final group of a row is truncated by
// the stride; missing group bytes read as zero and only the leading valid
// pixels are emitted, so exactly width samples per row are produced.
func UnpackRaw10(src []byte, width, height uint32, dst []uint16) error {
	if uint64(len(dst)) != uint64(width)*uint64(height) {
		return ErrSizeMismatch
	}
	stride := Raw10Stride(width)
	if uint64(len(src)) < uint64(stride)*uint64(height) {
		return ErrShortInput
	}

	out := 0
	for y := uint32(0); y < height; y++ {
		line := src[y*stride : (y+1)*stride]
		for x := uint32(0); x < width; x += 4 {
			var g [5]byte
			copy(g[:], line)
			if len(line) > 5 {
				line = line[5:]
			} else {
				line = nil
			}

			p0 := uint16(g[0]) | uint16(g[4]&0x03)<<8
			p1 := uint16(g[1]) | uint16(g[4]>>2&0x03)<<8
			p2 := uint16(g[2]) | uint16(g[4]>>4&0x03)<<8
			p3 := uint16(g[3]) | uint16(g[4]>>6&0x03)<<8

			dst[out] = p0
			out++
			if x+1 < width {
				dst[out] = p1
				out++
			}
			if x+2 < width {
				dst[out] = p2
				out++
			}
			if x+3 < width {
				dst[out] = p3
				out++
			}
		}
	}
	return nil
}
