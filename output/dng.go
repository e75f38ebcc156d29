package output

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/weaming/gscam/raw"
)

// 极简 TIFF/DNG 写入器：写出单目录 baseline TIFF 加 DNG 标签，
// RawTherapee / Darktable / dcraw 均可直接打开。
// 完整的 DNG 标签覆盖不在此范围。

// ErrDimensionMismatch 样本缓冲区长度与 width*height 不符
var ErrDimensionMismatch = errors.New("样本缓冲区长度与 width*height 不符")

const headerSize = 8 // "II" + 42 + 目录偏移

// WriteDNG 将 16-bit Bayer 样本和元数据序列化为 DNG 字节流。
// 相同输入产生逐字节相同的输出（无时间戳，无随机填充）。
func WriteDNG(w io.Writer, meta *raw.Metadata, pixels []uint16) error {
	if len(pixels) != meta.PixelCount() {
		return fmt.Errorf("%w: %d != %d*%d", ErrDimensionMismatch, len(pixels), meta.Width, meta.Height)
	}

	b := NewIFDBuilder()
	addGeometryTags(b, meta)
	addStripTags(b, meta)
	addCFATags(b, meta.Bayer)
	addDNGTags(b, meta)

	// 阶段一：布局完全由元数据决定，在写出任何字节前解析所有偏移
	dirOffset, end := b.Layout(headerSize)
	stripOffset := end
	if stripOffset%2 != 0 {
		stripOffset++
	}
	b.SetLong(TagStripOffsets, stripOffset)
	b.SetLong(TagStripByteCounts, meta.Width*meta.Height*2)

	// 阶段二：头部、数据块、目录、像素条带，一次顺序写出
	var hdr [headerSize]byte
	hdr[0], hdr[1] = 'I', 'I' // little-endian
	binary.LittleEndian.PutUint16(hdr[2:4], 42)
	binary.LittleEndian.PutUint32(hdr[4:8], dirOffset)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if err := b.Write(w); err != nil {
		return err
	}
	if end%2 != 0 {
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}
	return writeSamplesLE(w, pixels)
}

// addGeometryTags 几何与存储描述
func addGeometryTags(b *IFDBuilder, meta *raw.Metadata) {
	b.AddLong(TagImageWidth, meta.Width)
	b.AddLong(TagImageLength, meta.Height)
	b.AddShort(TagBitsPerSample, meta.BitsPerSample)
	b.AddShort(TagCompression, CompressionNone)
	b.AddShort(TagPhotometricInterpret, PhotometricCFA)
	b.AddShort(TagSamplesPerPixel, 1)
	b.AddShort(TagPlanarConfiguration, PlanarContiguous)
}

// addStripTags 单条带：偏移和字节数在布局后填入
func addStripTags(b *IFDBuilder, meta *raw.Metadata) {
	b.ReserveLong(TagStripOffsets)
	b.AddLong(TagRowsPerStrip, meta.Height)
	b.ReserveLong(TagStripByteCounts)
}

// addCFATags 马赛克布局
func addCFATags(b *IFDBuilder, bayer raw.BayerPattern) {
	b.AddShortArray(TagCFARepeatPatternDim, []uint16{2, 2})
	patt := bayer.CFAPattern()
	b.AddByteArray(TagCFAPattern, patt[:])
	plane := raw.CFAPlaneColor()
	b.AddByteArray(TagCFAPlaneColor, plane[:])
}

// addDNGTags DNG 特定标签
func addDNGTags(b *IFDBuilder, meta *raw.Metadata) {
	b.AddByteArray(TagDNGVersion, []byte{1, 4, 0, 0})
	b.AddASCII(TagUniqueCameraModel, meta.Model)
	b.AddShort(TagBlackLevel, meta.BlackLevel)
	b.AddShort(TagWhiteLevel, meta.WhiteLevel)
	b.AddRationalArray(TagDefaultScale, [][2]uint32{{1, 1}, {1, 1}})
	b.AddShort(TagCalibrationIlluminant, meta.Illuminant)
	// ColorMatrix1 写单位矩阵：光源已知、标定未测。
	// 没有真实传感器特性数据之前不要替换成猜测的矩阵。
	b.AddRationalArray(TagColorMatrix1, [][2]uint32{
		{1, 1}, {0, 1}, {0, 1},
		{0, 1}, {1, 1}, {0, 1},
		{0, 1}, {0, 1}, {1, 1},
	})
}

// writeSamplesLE 按小端 16-bit 写出样本
func writeSamplesLE(w io.Writer, pixels []uint16) error {
	buf := make([]byte, len(pixels)*2)
	for i, v := range pixels {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	_, err := w.Write(buf)
	return err
}

// ExportDNG 写入 DNG 文件。I/O 失败后文件状态未定义，由调用方删除重试。
func ExportDNG(path string, meta *raw.Metadata, pixels []uint16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteDNG(w, meta, pixels); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
