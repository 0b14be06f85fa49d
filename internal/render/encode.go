package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnknownFormat = errors.New("render: unknown image format")

// Formats lists the raster formats understood by Encode.
var Formats = []string{"png", "pgm", "ppm"}

func EncodePNG(w io.Writer, img *image.Gray) error {
	return png.Encode(w, img)
}

// EncodePGM writes a binary (P5) portable graymap.
func EncodePGM(w io.Writer, img *image.Gray) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		if _, err := bw.Write(img.Pix[off : off+b.Dx()]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodePPM writes a plain (P3) pixmap with one gray triplet per line.
func EncodePPM(w io.Writer, img *image.Gray) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := img.GrayAt(x, y).Y
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", v, v, v); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func Encode(w io.Writer, img *image.Gray, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return EncodePNG(w, img)
	case "pgm":
		return EncodePGM(w, img)
	case "ppm":
		return EncodePPM(w, img)
	default:
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownFormat, format, Formats)
	}
}

// WriteFile encodes img into path, creating parent directories. On failure
// no partial file is left behind.
func WriteFile(path string, img *image.Gray, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
