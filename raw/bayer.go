package raw

import "strings"

// BayerPattern identifies the 2x2 color filter array tile ordering.
type BayerPattern int

const (
	BayerRGGB BayerPattern = iota
	BayerBGGR
	BayerGRBG
	BayerGBRG
)

// CFA color indices used in the DNG CFAPattern/CFAPlaneColor tags
const (
	CFARed   = 0
	CFAGreen = 1
	CFABlue  = 2
)

// ParseBayerPattern normalizes a mosaic token (case-insensitive) and maps it
// to a BayerPattern. ok is false for anything but the four canonical tokens.
func ParseBayerPattern(s string) (BayerPattern, bool) {
	switch strings.ToUpper(s) {
	case "RGGB":
		return BayerRGGB, true
	case "BGGR":
		return BayerBGGR, true
	case "GRBG":
		return BayerGRBG, true
	case "GBRG":
		return BayerGBRG, true
	}
	return BayerRGGB, false
}

// CFAPattern returns the 2x2 per-cell color indices, row-major top-left to
// bottom-right. Unrecognized values fall back to RGGB.
func (b BayerPattern) CFAPattern() [4]uint8 {
	switch b {
	case BayerBGGR:
		return [4]uint8{CFABlue, CFAGreen, CFAGreen, CFARed}
	case BayerGRBG:
		return [4]uint8{CFAGreen, CFARed, CFABlue, CFAGreen}
	case BayerGBRG:
		return [4]uint8{CFAGreen, CFABlue, CFARed, CFAGreen}
	}
	return [4]uint8{CFARed, CFAGreen, CFAGreen, CFABlue}
}

// CFAPlaneColor returns the fixed plane color order {R,G,B}, independent of
// the mosaic variant.
func CFAPlaneColor() [3]uint8 {
	return [3]uint8{CFARed, CFAGreen, CFABlue}
}

func (b BayerPattern) String() string {
	switch b {
	case BayerBGGR:
		return "BGGR"
	case BayerGRBG:
		return "GRBG"
	case BayerGBRG:
		return "GBRG"
	}
	return "RGGB"
}
