package output

// 标准 TIFF 标签
const (
	TagImageWidth           = 256
	TagImageLength          = 257
	TagBitsPerSample        = 258
	TagCompression          = 259
	TagPhotometricInterpret = 262
	TagStripOffsets         = 273
	TagSamplesPerPixel      = 277
	TagRowsPerStrip         = 278
	TagStripByteCounts      = 279
	TagPlanarConfiguration  = 284
)

// CFA / DNG 标签
const (
	TagCFARepeatPatternDim   = 33421
	TagCFAPattern            = 33422
	TagDNGVersion            = 50706
	TagUniqueCameraModel     = 50708
	TagCFAPlaneColor         = 50710
	TagBlackLevel            = 50714
	TagWhiteLevel            = 50717
	TagColorMatrix1          = 50721
	TagDefaultScale          = 50733
	TagCalibrationIlluminant = 50778
)

// TIFF 数据类型
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeSByte     = 6
	TypeUndefined = 7
	TypeSShort    = 8
	TypeSLong     = 9
	TypeSRational = 10
)

// 固定取值
const (
	CompressionNone  = 1
	PhotometricCFA   = 32803
	PlanarContiguous = 1
)
