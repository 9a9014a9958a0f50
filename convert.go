package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"qoikit/pkg/qoi"
)

// inputExts lists the file extensions the converter accepts as input. The
// decoders are registered by the image package imports above and by pkg/qoi.
var inputExts = map[string]bool{
	".qoi":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// defaultOutput maps an input path to its converted counterpart: .qoi inputs
// decode to .png, everything else encodes to .qoi.
func defaultOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if strings.EqualFold(filepath.Ext(input), ".qoi") {
		return base + ".png"
	}
	return base + ".qoi"
}

func convertFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".qoi":
		err = qoi.EncodeImage(out, img)
	case ".png":
		err = png.Encode(out, img)
	case ".bmp":
		err = bmp.Encode(out, img)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(outPath))
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}
	return nil
}
