package capture

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/weaming/gscam/raw"
)

func TestUnpackSinglePlaneOnly(t *testing.T) {
	const width, height = 4, 1
	frame := &MappedFrame{
		Data:   make([]byte, raw.Raw10Stride(width)*height),
		Planes: []Plane{{0, 5}, {5, 5}},
	}
	dst := make([]uint16, width*height)
	if err := frame.Unpack(width, height, dst); !errors.Is(err, raw.ErrUnsupportedLayout) {
		t.Fatalf("got %v, want ErrUnsupportedLayout", err)
	}
}

func TestUnpackPlaneBounds(t *testing.T) {
	frame := &MappedFrame{
		Data:   make([]byte, 4),
		Planes: []Plane{{Offset: 0, Length: 10}},
	}
	dst := make([]uint16, 4)
	if err := frame.Unpack(4, 1, dst); !errors.Is(err, raw.ErrShortInput) {
		t.Fatalf("got %v, want ErrShortInput", err)
	}
}

func TestUnpackWithPlaneOffset(t *testing.T) {
	const width, height = 4, 1
	// one group: bytes 0..3 low, byte 4 high bits
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0b11100100}
	header := []byte{0xAA, 0xBB} // driver-side prefix skipped via plane offset
	frame := &MappedFrame{
		Data:   append(header, payload...),
		Planes: []Plane{{Offset: 2, Length: 5}},
	}

	dst := make([]uint16, width*height)
	if err := frame.Unpack(width, height, dst); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	want := []uint16{0x001, 0x102, 0x203, 0x304}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("pixel %d: got %#x, want %#x", i, dst[i], want[i])
		}
	}
}

func TestFileSourceFraming(t *testing.T) {
	const width, height = 4, 2
	frameSize := int(raw.Raw10Stride(width) * height)

	path := filepath.Join(t.TempDir(), "frames.raw10")
	data := make([]byte, frameSize*2)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := OpenFileSource(path, width, height, 0.008, 1.0)
	if err != nil {
		t.Fatalf("OpenFileSource: %v", err)
	}
	defer src.Close()

	for i := 0; i < 2; i++ {
		frame, err := src.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if len(frame.Data) != frameSize {
			t.Fatalf("frame %d: got %d bytes, want %d", i, len(frame.Data), frameSize)
		}
		if len(frame.Planes) != 1 || frame.Planes[0].Length != uint32(frameSize) {
			t.Fatalf("frame %d: bad plane table %v", i, frame.Planes)
		}
		if frame.Data[0] != byte(i*frameSize) {
			t.Fatalf("frame %d: starts with %d", i, frame.Data[0])
		}
	}
	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("after last frame: got %v, want io.EOF", err)
	}
}

func TestFileSourceTrailingPartialFrame(t *testing.T) {
	const width, height = 4, 2
	frameSize := int(raw.Raw10Stride(width) * height)

	path := filepath.Join(t.TempDir(), "frames.raw10")
	if err := os.WriteFile(path, make([]byte, frameSize+3), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := OpenFileSource(path, width, height, 0.008, 1.0)
	if err != nil {
		t.Fatalf("OpenFileSource: %v", err)
	}
	defer src.Close()

	if _, err := src.Next(); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if _, err := src.Next(); !errors.Is(err, raw.ErrShortInput) {
		t.Fatalf("partial frame: got %v, want ErrShortInput", err)
	}
}
