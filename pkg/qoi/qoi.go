// Package qoi implements the QuiteOk image format: a lossless codec for 8-bit
// RGB and RGBA rasters built from byte-aligned chunks, a 64-entry recency
// index and deltas against the previous pixel.
//
// Encode and Decode are pure in-memory transforms on contiguous pixel
// buffers. EncodeImage and DecodeImage adapt them to the standard library
// image interfaces; the format is registered with image.RegisterFormat.
package qoi

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrInvalidMagic    = errors.New("invalid magic")
	ErrInvalidHeader   = errors.New("invalid header")
	ErrInvalidDesc     = errors.New("invalid image description")
	ErrBufferSize      = errors.New("invalid pixel buffer size")
	ErrInvalidChannels = errors.New("channels must be 0, 3 or 4")
	ErrTooShort        = errors.New("data shorter than header and padding")
	ErrTooLarge        = errors.New("image exceeds pixel limit")
)

// Desc describes the dimensions and pixel layout of an image. It is written
// to the header on encode and filled from the header on decode.
type Desc struct {
	Width      uint32
	Height     uint32
	Channels   uint8 // 3 = RGB, 4 = RGBA
	Colorspace uint8 // ColorspaceSRGB or ColorspaceLinear
}

// pixelCount returns the number of pixels the descriptor spans.
func (d Desc) pixelCount() (int, error) {
	n := uint64(d.Width) * uint64(d.Height)
	if n > maxPixels {
		return 0, fmt.Errorf("%w: %dx%d", ErrTooLarge, d.Width, d.Height)
	}
	return int(n), nil
}

// pixel is one RGBA value. Comparable by struct equality; for 3-channel
// buffers the alpha slot is never written and stays 0 for the whole call.
type pixel struct {
	r, g, b, a uint8
}

// hash generates the recency index slot of a pixel, a number between 0 and 63.
func (p pixel) hash() byte {
	return byte((int(p.r)*3 + int(p.g)*5 + int(p.b)*7 + int(p.a)*11) % 64)
}

func appendHeader(data []byte, desc Desc) []byte {
	data = append(data, Magic...)
	data = binary.BigEndian.AppendUint32(data, desc.Width)
	data = binary.BigEndian.AppendUint32(data, desc.Height)
	return append(data, desc.Channels, desc.Colorspace)
}

// decodeHeader reads the given bytes, decodes them and writes the decoded to
// the Desc. It expects exactly 14 bytes.
func decodeHeader(data []byte, header *Desc) error {
	if len(data) != headerSize {
		return fmt.Errorf("%w: expected length %d, actual %d", ErrInvalidHeader, headerSize, len(data))
	}

	magic := string(data[0:4])
	if magic != Magic {
		return fmt.Errorf("%w: expected %q, actual %q", ErrInvalidMagic, Magic, magic)
	}

	*header = Desc{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   data[12],
		Colorspace: data[13],
	}
	if header.Width == 0 || header.Height == 0 {
		return fmt.Errorf("%w: zero dimension %dx%d", ErrInvalidHeader, header.Width, header.Height)
	}
	if header.Channels < 3 || header.Channels > 4 {
		return fmt.Errorf("%w: channels %d", ErrInvalidHeader, header.Channels)
	}
	if header.Colorspace > 2 {
		return fmt.Errorf("%w: colorspace %d", ErrInvalidHeader, header.Colorspace)
	}
	return nil
}
