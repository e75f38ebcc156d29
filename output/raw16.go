package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/weaming/gscam/raw"
)

// WriteRaw16 按小端 16-bit 连续写出样本，无任何头部
func WriteRaw16(w io.Writer, pixels []uint16) error {
	return writeSamplesLE(w, pixels)
}

// ExportRaw16 写入 .raw 文件（raw16 小端，10 位有效）
func ExportRaw16(path string, pixels []uint16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteRaw16(w, pixels); err != nil {
		return err
	}
	return w.Flush()
}

// ExportPGM 导出为 PGM 格式（ASCII P2 灰度，用于快速查看马赛克数据）
func ExportPGM(path string, meta *raw.Metadata, pixels []uint16) error {
	if len(pixels) != meta.PixelCount() {
		return fmt.Errorf("%w: %d != %d*%d", ErrDimensionMismatch, len(pixels), meta.Width, meta.Height)
	}
	maxval := meta.WhiteLevel
	if maxval == 0 {
		maxval = 65535
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P2\n%d %d\n%d\n", meta.Width, meta.Height, maxval)
	for y := uint32(0); y < meta.Height; y++ {
		row := pixels[y*meta.Width : (y+1)*meta.Width]
		for x, v := range row {
			if x > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%d", v)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
