package qoi

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func makeTestImage(w, h int, opaque bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(255)
			if !opaque {
				a = uint8((x + y) % 256)
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
				A: a,
			})
		}
	}
	return img
}

func TestImageRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		opaque bool
	}{
		{"opaque", true},
		{"translucent", false},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// given
			src := makeTestImage(64, 48, tc.opaque)
			var buf bytes.Buffer

			// when
			if err := EncodeImage(&buf, src); err != nil {
				t.Fatalf("expected nil error, but got %v", err)
			}
			decoded, err := DecodeImage(&buf)
			if err != nil {
				t.Fatalf("expected nil error, but got %v", err)
			}

			// then
			if decoded.Bounds() != src.Bounds() {
				t.Fatalf("expected bounds %v, but got %v", src.Bounds(), decoded.Bounds())
			}
			for y := 0; y < 48; y++ {
				for x := 0; x < 64; x++ {
					expected := src.NRGBAAt(x, y)
					actual := color.NRGBAModel.Convert(decoded.At(x, y)).(color.NRGBA)
					if expected != actual {
						t.Fatalf("pixel mismatch at (%d, %d): expected %+v, actual %+v", x, y, expected, actual)
					}
				}
			}
		})
	}
}

func TestEncodeImageChannels(t *testing.T) {
	t.Parallel()

	t.Run("should store opaque images with 3 channels", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := EncodeImage(&buf, makeTestImage(8, 8, true)); err != nil {
			t.Fatalf("expected nil error, but got %v", err)
		}
		if channels := buf.Bytes()[12]; channels != 3 {
			t.Fatalf("expected 3 channels in header, but got %d", channels)
		}
	})

	t.Run("should store translucent images with 4 channels", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := EncodeImage(&buf, makeTestImage(8, 8, false)); err != nil {
			t.Fatalf("expected nil error, but got %v", err)
		}
		if channels := buf.Bytes()[12]; channels != 4 {
			t.Fatalf("expected 4 channels in header, but got %d", channels)
		}
	})
}

func TestDecodeImageConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := EncodeImage(&buf, makeTestImage(20, 30, false)); err != nil {
		t.Fatalf("expected nil error, but got %v", err)
	}

	conf, err := DecodeImageConfig(&buf)
	if err != nil {
		t.Fatalf("expected nil error, but got %v", err)
	}
	if conf.Width != 20 || conf.Height != 30 {
		t.Fatalf("expected 20x30, but got %dx%d", conf.Width, conf.Height)
	}
}

func TestRegisteredFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := EncodeImage(&buf, makeTestImage(5, 5, true)); err != nil {
		t.Fatalf("expected nil error, but got %v", err)
	}

	img, format, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("expected nil error, but got %v", err)
	}
	if format != "qoi" {
		t.Fatalf("expected format qoi, but got %q", format)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 5 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}
