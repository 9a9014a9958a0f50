package qoi

import (
	"fmt"
)

// Encode compresses a contiguous pixel buffer of exactly
// desc.Width*desc.Height*desc.Channels bytes into an encoded stream: the
// 14-byte header, the chunk region and 8 bytes of zero padding.
//
// The output never exceeds Width*Height*(Channels+1) + 22 bytes; the buffer
// is sized once up front and never reallocated.
func Encode(pixels []byte, desc Desc) ([]byte, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: zero dimension %dx%d", ErrInvalidDesc, desc.Width, desc.Height)
	}
	if desc.Channels < 3 || desc.Channels > 4 {
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidDesc, desc.Channels)
	}
	if desc.Colorspace > ColorspaceLinear {
		return nil, fmt.Errorf("%w: colorspace %d", ErrInvalidDesc, desc.Colorspace)
	}
	size, err := desc.pixelCount()
	if err != nil {
		return nil, err
	}
	channels := int(desc.Channels)
	if len(pixels) != size*channels {
		return nil, fmt.Errorf("%w: expected %d bytes, actual %d", ErrBufferSize, size*channels, len(pixels))
	}

	data := make([]byte, 0, size*(channels+1)+headerSize+paddingSize)
	data = appendHeader(data, desc)

	// prerequisite; curr's alpha slot stays 0 for 3-channel input
	var prev, curr pixel
	var seen [64]pixel
	run := 0

	for i := 0; i < size; i++ {
		off := i * channels
		curr.r = pixels[off+0]
		curr.g = pixels[off+1]
		curr.b = pixels[off+2]
		if channels == 4 {
			curr.a = pixels[off+3]
		}

		// OpRun
		if curr == prev {
			run++
			if run == maxRun || i == size-1 {
				data = append(data, OpRun|byte(run-1))
				run = 0
			}
			continue
		}
		if run > 0 {
			data = append(data, OpRun|byte(run-1))
			run = 0
		}

		hash := curr.hash()

		// OpIndex; the slot already holds curr, so it is not rewritten
		if seen[hash] == curr {
			data = append(data, OpIndex|hash)
			prev = curr
			continue
		}
		seen[hash] = curr

		// OpRgba
		if curr.a != prev.a {
			data = append(data, OpRgba, curr.r, curr.g, curr.b, curr.a)
			prev = curr
			continue
		}

		// alpha channel is the same; deltas wrap modulo 256
		dr := int8(curr.r - prev.r)
		dg := int8(curr.g - prev.g)
		db := int8(curr.b - prev.b)

		// OpDiff
		if -2 <= dr && dr <= 1 && -2 <= dg && dg <= 1 && -2 <= db && db <= 1 {
			data = append(data, OpDiff|byte(dr+2)<<4|byte(dg+2)<<2|byte(db+2))
			prev = curr
			continue
		}

		drDg := dr - dg
		dbDg := db - dg

		// OpLuma
		if -32 <= dg && dg <= 31 && -8 <= drDg && drDg <= 7 && -8 <= dbDg && dbDg <= 7 {
			data = append(data, OpLuma|byte(dg+32), byte(drDg+8)<<4|byte(dbDg+8))
			prev = curr
			continue
		}

		// OpRgb
		data = append(data, OpRgb, curr.r, curr.g, curr.b)
		prev = curr
	}

	// a pending run always flushes on the final pixel, so only the padding
	// remains
	for i := 0; i < paddingSize; i++ {
		data = append(data, 0)
	}
	return data, nil
}
