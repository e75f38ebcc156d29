package raw

import (
	"errors"
	"testing"
)

// packRaw10 packs samples with the inverse 4-pixel/5-byte rule, truncating
// the final group of a row at the stride like the sensor does.
func packRaw10(pixels []uint16, width, height uint32) []byte {
	stride := Raw10Stride(width)
	buf := make([]byte, stride*height)
	for y := uint32(0); y < height; y++ {
		row := buf[y*stride : (y+1)*stride]
		off := 0
		for x := uint32(0); x < width; x += 4 {
			var p [4]uint16
			for i := uint32(0); i < 4; i++ {
				if x+i < width {
					p[i] = pixels[y*width+x+i]
				}
			}
			g := [5]byte{
				byte(p[0]), byte(p[1]), byte(p[2]), byte(p[3]),
				byte(p[0]>>8&0x03) | byte(p[1]>>8&0x03)<<2 |
					byte(p[2]>>8&0x03)<<4 | byte(p[3]>>8&0x03)<<6,
			}
			off += copy(row[off:], g[:])
		}
	}
	return buf
}

func TestUnpackUniformValue(t *testing.T) {
	const width, height = 8, 4
	for _, v := range []uint16{0, 1, 255, 256, 511, 512, 1000, 1023} {
		pixels := make([]uint16, width*height)
		for i := range pixels {
			pixels[i] = v
		}
		packed := packRaw10(pixels, width, height)

		dst := make([]uint16, width*height)
		if err := UnpackRaw10(packed, width, height, dst); err != nil {
			t.Fatalf("v=%d: UnpackRaw10: %v", v, err)
		}
		for i, got := range dst {
			if got != v {
				t.Fatalf("v=%d: sample %d: got %d", v, i, got)
			}
		}
	}
}

func TestUnpackRoundTrip(t *testing.T) {
	const width, height = 16, 3
	pixels := make([]uint16, width*height)
	for i := range pixels {
		pixels[i] = uint16((i*37 + 11) % 1024)
	}
	packed := packRaw10(pixels, width, height)

	dst := make([]uint16, width*height)
	if err := UnpackRaw10(packed, width, height, dst); err != nil {
		t.Fatalf("UnpackRaw10: %v", err)
	}
	for i := range pixels {
		if dst[i] != pixels[i] {
			t.Fatalf("sample %d: got %d, want %d", i, dst[i], pixels[i])
		}
	}
}

func TestUnpackPartialGroup(t *testing.T) {
	// width=6: stride rounds to 8 bytes, the second group is truncated.
	// Values stay below 256 so the truncated high-bit byte carries no data.
	const width, height = 6, 2
	pixels := make([]uint16, width*height)
	for i := range pixels {
		pixels[i] = uint16((i * 19) % 256)
	}
	if Raw10Stride(width) != 8 {
		t.Fatalf("stride: got %d, want 8", Raw10Stride(width))
	}
	packed := packRaw10(pixels, width, height)

	dst := make([]uint16, width*height)
	if err := UnpackRaw10(packed, width, height, dst); err != nil {
		t.Fatalf("UnpackRaw10: %v", err)
	}
	for i := range pixels {
		if dst[i] != pixels[i] {
			t.Fatalf("sample %d: got %d, want %d", i, dst[i], pixels[i])
		}
	}
}

func TestUnpackErrors(t *testing.T) {
	const width, height = 8, 2
	packed := make([]byte, Raw10Stride(width)*height)

	t.Run("size_mismatch", func(t *testing.T) {
		dst := make([]uint16, width*height-1)
		if err := UnpackRaw10(packed, width, height, dst); !errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("got %v, want ErrSizeMismatch", err)
		}
	})

	t.Run("short_input", func(t *testing.T) {
		dst := make([]uint16, width*height)
		if err := UnpackRaw10(packed[:len(packed)-1], width, height, dst); !errors.Is(err, ErrShortInput) {
			t.Fatalf("got %v, want ErrShortInput", err)
		}
	})

	t.Run("exact_input_ok", func(t *testing.T) {
		dst := make([]uint16, width*height)
		if err := UnpackRaw10(packed, width, height, dst); err != nil {
			t.Fatalf("UnpackRaw10: %v", err)
		}
	})
}
