package qoi

// A list of opcodes used in the encoded stream. They specify how the bytes are
// encoded. The 8-bit codes OpRgb and OpRgba occupy the two highest payload
// values of OpRun and must be matched before masking with opMask.
const (
	OpRgb   = byte(0b11111110)
	OpRgba  = byte(0b11111111)
	OpIndex = byte(0b00000000)
	OpDiff  = byte(0b01000000)
	OpLuma  = byte(0b10000000)
	OpRun   = byte(0b11000000)
	// opMask is the mask for 2-bit op codes
	opMask = byte(0b11000000)
)

// Magic is the magic code used for files of the QuiteOk image format.
const Magic = "qoif"

// Colorspace values stored in the header. Purely informative, the codec never
// consults them.
const (
	ColorspaceSRGB   = uint8(0)
	ColorspaceLinear = uint8(1)
)

const (
	headerSize  = 14
	paddingSize = 8
	// maxRun is the longest pixel run a single OpRun chunk can hold; the
	// payload values 62 and 63 belong to OpRgb and OpRgba.
	maxRun = 62
	// maxPixels keeps the worst case encoded size (5 bytes per pixel plus
	// header and padding) below 2GB.
	maxPixels = 400_000_000
)
