package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/weaming/gscam/capture"
	"github.com/weaming/gscam/output"
	"github.com/weaming/gscam/raw"
)

// 连续验证错误达到该数量即中止：说明是系统性配置错误而不是偶发 I/O 故障
const maxConsecutiveValidationErrors = 3

type config struct {
	Input      string
	Width      uint
	Height     uint
	Bayer      string
	Frames     int
	ExposureUs int
	Gain       float64
	OutDir     string
	OutFmt     string
	Black      uint
	White      uint
	Verbose    bool
}

func main() {
	cfg := parseFlags()

	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须指定打包帧文件 (-in)")
		os.Exit(1)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		fmt.Fprintln(os.Stderr, "错误: 必须指定有效的 -width 和 -height")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *config {
	cfg := &config{}

	flag.StringVar(&cfg.Input, "in", "", "打包 RAW10 帧文件路径 (必需)")
	flag.UintVar(&cfg.Width, "width", 0, "图像宽度 (必需)")
	flag.UintVar(&cfg.Height, "height", 0, "图像高度 (必需)")
	flag.StringVar(&cfg.Bayer, "bayer", raw.DefaultBayerToken,
		"马赛克排列: RGGB, BGGR, GRBG, GBRG (不区分大小写)")
	flag.IntVar(&cfg.Frames, "frames", raw.DefaultFrameCount, "处理帧数")
	flag.IntVar(&cfg.ExposureUs, "exposure-us", raw.DefaultExposureUs, "曝光时间 (微秒, 仅记录)")
	flag.Float64Var(&cfg.Gain, "gain", raw.DefaultAnalogGain, "模拟增益 (仅记录)")
	flag.StringVar(&cfg.OutDir, "outdir", raw.DefaultOutputDir, "输出目录")
	flag.StringVar(&cfg.OutFmt, "outfmt", raw.DefaultOutputFmt, "输出格式: DNG, RAW, PGM")
	flag.UintVar(&cfg.Black, "black", uint(raw.DefaultBlackLevel), "黑电平 (传感器特性化后常为 64-256)")
	flag.UintVar(&cfg.White, "white", uint(raw.DefaultWhiteLevel), "白电平 (10 位上限 1023)")
	flag.BoolVar(&cfg.Verbose, "v", false, "详细输出")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gscam - Raspberry Pi Global Shutter Camera (IMX296) RAW10 转换\n\n")
		fmt.Fprintf(os.Stderr, "用法: gscam [选项] -in <帧文件> -width W -height H\n\n")
		fmt.Fprintf(os.Stderr, "选项:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n支持的输出格式:\n")
		fmt.Fprintf(os.Stderr, "  DNG  - baseline TIFF/DNG (16-bit Bayer 马赛克)\n")
		fmt.Fprintf(os.Stderr, "  RAW  - raw16 小端样本流, 无头部\n")
		fmt.Fprintf(os.Stderr, "  PGM  - ASCII 灰度图, 用于调试\n")
		fmt.Fprintf(os.Stderr, "\n示例:\n")
		fmt.Fprintf(os.Stderr, "  gscam -in frames.raw10 -width 1456 -height 1088 -bayer rggb -outfmt DNG\n")
	}

	flag.Parse()
	return cfg
}

func run(cfg *config) error {
	logger := raw.NewLogger()
	logger.Quiet = !cfg.Verbose

	bayer, ok := raw.ParseBayerPattern(cfg.Bayer)
	if !ok {
		return fmt.Errorf("无效的马赛克排列: %s", cfg.Bayer)
	}

	outFmt := strings.ToUpper(cfg.OutFmt)
	switch outFmt {
	case "DNG", "RAW", "PGM":
	default:
		return fmt.Errorf("不支持的输出格式: %s (可选 DNG, RAW, PGM)", cfg.OutFmt)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("无法创建输出目录 %s: %w", cfg.OutDir, err)
	}

	width, height := uint32(cfg.Width), uint32(cfg.Height)
	meta := raw.DefaultMetadata(width, height, bayer)
	meta.BlackLevel = uint16(cfg.Black)
	meta.WhiteLevel = uint16(cfg.White)
	meta.AnalogGain = cfg.Gain
	meta.ExposureSeconds = float64(cfg.ExposureUs) / 1e6

	logger.Step("打开帧文件", filepath.Base(cfg.Input))
	source, err := capture.OpenFileSource(cfg.Input, width, height, meta.ExposureSeconds, meta.AnalogGain)
	if err != nil {
		return err
	}
	defer source.Close()
	logger.Done(fmt.Sprintf("%dx%d %s", width, height, bayer))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	pixels := make([]uint16, meta.PixelCount())
	saved := 0
	badFrames := 0

	for saved < cfg.Frames {
		select {
		case <-stop:
			logger.Warn("收到中断信号, 提前结束")
			logger.Total(saved)
			return nil
		default:
		}

		frame, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		name := fmt.Sprintf("imx296_%06d.%s", saved, strings.ToLower(outFmt))
		path := filepath.Join(cfg.OutDir, name)

		if err := saveFrame(frame, &meta, pixels, path, outFmt); err != nil {
			logger.Warn("帧 %d 处理失败: %v", saved, err)
			if isValidationError(err) {
				badFrames++
				if badFrames >= maxConsecutiveValidationErrors {
					return fmt.Errorf("连续 %d 帧验证失败, 配置有误: %w", badFrames, err)
				}
			}
			continue
		}
		badFrames = 0
		logger.Frame(saved, cfg.Frames, name)
		saved++
	}

	logger.Total(saved)
	return nil
}

// saveFrame 解包一帧并按所选格式写出
func saveFrame(frame *capture.MappedFrame, meta *raw.Metadata, pixels []uint16, path, outFmt string) error {
	if err := frame.Unpack(meta.Width, meta.Height, pixels); err != nil {
		return err
	}
	switch outFmt {
	case "RAW":
		return output.ExportRaw16(path, pixels)
	case "PGM":
		return output.ExportPGM(path, meta, pixels)
	default:
		return output.ExportDNG(path, meta, pixels)
	}
}

// isValidationError 区分输入验证错误和偶发 I/O 错误
func isValidationError(err error) bool {
	return errors.Is(err, raw.ErrSizeMismatch) ||
		errors.Is(err, raw.ErrShortInput) ||
		errors.Is(err, raw.ErrUnsupportedLayout) ||
		errors.Is(err, output.ErrDimensionMismatch)
}
