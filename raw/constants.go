package raw

// Sony IMX296 (Raspberry Pi Global Shutter Camera) defaults.
// Conservative starting points for most lighting; override via CLI flags.
const (
	DefaultModel = "Raspberry Pi Global Shutter Camera IMX296"

	DefaultBitsPerSample uint16 = 16 // storage depth for unpacked samples
	DefaultBlackLevel    uint16 = 0  // often 64-256 once the sensor is characterized
	DefaultWhiteLevel    uint16 = 1023

	DefaultExposureUs  = 8000 // global shutter exposes all pixels at once
	DefaultAnalogGain  = 1.0
	DefaultFrameCount  = 100
	DefaultBayerToken  = "RGGB"
	DefaultOutputDir   = "./out"
	DefaultOutputFmt   = "DNG"
	DefaultBufferCount = 8
)

// DNG CalibrationIlluminant1 codes
const (
	LightSourceUnknown     uint16 = 0
	LightSourceDaylight    uint16 = 1
	LightSourceFluorescent uint16 = 2
	LightSourceTungsten    uint16 = 3
	LightSourceFlash       uint16 = 4
	LightSourceFineWeather uint16 = 9
	LightSourceCloudy      uint16 = 10
	LightSourceShade       uint16 = 11
	LightSourceStandardA   uint16 = 17
	LightSourceStandardB   uint16 = 18
	LightSourceStandardC   uint16 = 19
	LightSourceD65         uint16 = 21
	LightSourceD50         uint16 = 23
)
