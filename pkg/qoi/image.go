package qoi

import (
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("qoi", Magic, DecodeImage, DecodeImageConfig)
}

// EncodeImage encodes a given image to the QuiteOk image format and writes
// the encoded bytes to the writer. Fully opaque images are stored with 3
// channels, everything else with 4.
func EncodeImage(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	desc := Desc{
		Width:      uint32(bounds.Dx()),
		Height:     uint32(bounds.Dy()),
		Channels:   4,
		Colorspace: ColorspaceSRGB,
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		desc.Channels = 3
	}

	channels := int(desc.Channels)
	pixels := make([]byte, bounds.Dx()*bounds.Dy()*channels)
	off := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels[off+0] = c.R
			pixels[off+1] = c.G
			pixels[off+2] = c.B
			if channels == 4 {
				pixels[off+3] = c.A
			}
			off += channels
		}
	}

	data, err := Encode(pixels, desc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// DecodeImage reads all bytes from the reader and decodes an image with the
// QuiteOk image format from it. 3-channel sources come back fully opaque.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	pixels, desc, err := Decode(data, 4)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height)))
	copy(img.Pix, pixels)
	if desc.Channels == 3 {
		// the codec keeps alpha at 0 for RGB streams; as an image that
		// means opaque
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xFF
		}
	}
	return img, nil
}

// DecodeImageConfig decodes only the header of an encoded stream.
func DecodeImageConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, err
	}

	var desc Desc
	if err := decodeHeader(buf, &desc); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(desc.Width),
		Height:     int(desc.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}
