// Package capture is the boundary to the frame acquisition layer. The codec
// never touches driver objects; it only sees MappedFrame records handed over
// this package's narrow interfaces.
package capture

import (
	"fmt"
	"io"
	"os"

	"github.com/weaming/gscam/raw"
)

// Plane describes one image plane inside a mapped buffer.
type Plane struct {
	Offset uint32
	Length uint32
}

// MappedFrame is an owned mapping record for one hardware buffer: the mapped
// span, its plane table and the acquisition parameters the driver reported.
// It is valid for the buffer's whole acquisition lifetime and is passed
// explicitly into unpacking, never recovered through a side channel.
type MappedFrame struct {
	Data   []byte
	Planes []Plane

	ExposureSeconds float64
	AnalogGain      float64
}

// Unpack expands the frame's RAW10 payload into dst (width*height samples).
// Only single-plane frames are supported.
func (f *MappedFrame) Unpack(width, height uint32, dst []uint16) error {
	if len(f.Planes) != 1 {
		return fmt.Errorf("%w: %d 个平面", raw.ErrUnsupportedLayout, len(f.Planes))
	}
	p := f.Planes[0]
	if uint64(p.Offset)+uint64(p.Length) > uint64(len(f.Data)) {
		return raw.ErrShortInput
	}
	return raw.UnpackRaw10(f.Data[p.Offset:p.Offset+p.Length], width, height, dst)
}

// FrameSource supplies mapped frames one at a time. Next returns io.EOF once
// the source is drained.
type FrameSource interface {
	Next() (*MappedFrame, error)
	Close() error
}

// FileSource reads consecutive packed RAW10 frames of stride*height bytes
// from a file, standing in for the camera driver.
type FileSource struct {
	file      *os.File
	frameSize uint32

	exposureSeconds float64
	analogGain      float64
}

// OpenFileSource opens a packed frame file for the given geometry.
func OpenFileSource(path string, width, height uint32, exposureSeconds, analogGain float64) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame file: %w", err)
	}
	return &FileSource{
		file:            f,
		frameSize:       raw.Raw10Stride(width) * height,
		exposureSeconds: exposureSeconds,
		analogGain:      analogGain,
	}, nil
}

// Next reads the next packed frame. A trailing partial frame yields
// raw.ErrShortInput.
func (s *FileSource) Next() (*MappedFrame, error) {
	buf := make([]byte, s.frameSize)
	n, err := io.ReadFull(s.file, buf)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: 帧数据只有 %d/%d 字节", raw.ErrShortInput, n, s.frameSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	return &MappedFrame{
		Data:            buf,
		Planes:          []Plane{{Offset: 0, Length: s.frameSize}},
		ExposureSeconds: s.exposureSeconds,
		AnalogGain:      s.analogGain,
	}, nil
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}
