package raw

import (
	"errors"
)

// Metadata carries the per-frame information needed to describe a Bayer
// sample buffer in the output container.
type Metadata struct {
	Width  uint32
	Height uint32
	Bayer  BayerPattern

	BitsPerSample uint16 // storage depth, fixed 16
	BlackLevel    uint16
	WhiteLevel    uint16

	// Informational acquisition parameters, not encoded as tags
	AnalogGain      float64
	ExposureSeconds float64

	Illuminant uint16 // DNG CalibrationIlluminant1 code
	Model      string // camera model string (UniqueCameraModel)
}

// DefaultMetadata returns IMX296 defaults for the given geometry and mosaic.
func DefaultMetadata(width, height uint32, bayer BayerPattern) Metadata {
	return Metadata{
		Width:           width,
		Height:          height,
		Bayer:           bayer,
		BitsPerSample:   DefaultBitsPerSample,
		BlackLevel:      DefaultBlackLevel,
		WhiteLevel:      DefaultWhiteLevel,
		AnalogGain:      DefaultAnalogGain,
		ExposureSeconds: float64(DefaultExposureUs) / 1e6,
		Illuminant:      LightSourceD65,
		Model:           DefaultModel,
	}
}

// PixelCount returns width*height.
func (m *Metadata) PixelCount() int {
	return int(m.Width) * int(m.Height)
}

// Validation errors, detected before any byte is written.
var (
	// ErrSizeMismatch output buffer length does not equal width*height
	ErrSizeMismatch = errors.New("样本缓冲区长度与 width*height 不符")
	// ErrShortInput packed input shorter than stride*height
	ErrShortInput = errors.New("打包数据不足一帧")
	// ErrUnsupportedLayout frame carries more than one image plane
	ErrUnsupportedLayout = errors.New("不支持的多平面布局")
)
