package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/san-kum/attractor/internal/attractor"
)

// DefaultIntensity is the gray level of every marked pixel.
const DefaultIntensity uint8 = 225

var (
	ErrEmptyTrajectory   = errors.New("render: empty trajectory")
	ErrInvalidResolution = errors.New("render: resolution must be positive")
)

// Projector maps trajectory coordinates onto pixel indices. Each axis is
// translated so its minimum lands on 0 and scaled so its maximum lands on
// resolution-1.
type Projector struct {
	Min, Max      attractor.Point
	Width, Height int
}

func NewProjector(t attractor.Trajectory, width, height int) (*Projector, error) {
	if len(t) == 0 {
		return nil, ErrEmptyTrajectory
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, width, height)
	}
	min, max := t.Bounds()
	return &Projector{Min: min, Max: max, Width: width, Height: height}, nil
}

// Index returns the quantized column and row indices of p along x and y,
// before any image orientation is applied.
func (pr *Projector) Index(p attractor.Point) (int, int) {
	return quantize(p.X, pr.Min.X, pr.Max.X, pr.Width), quantize(p.Y, pr.Min.Y, pr.Max.Y, pr.Height)
}

// Pixel returns image coordinates of p with y growing upwards.
func (pr *Projector) Pixel(p attractor.Point) (int, int) {
	xi, yi := pr.Index(p)
	return xi, pr.Height - 1 - yi
}

func quantize(v, min, max float64, res int) int {
	extent := max - min
	if !(extent > 0) {
		return 0
	}
	i := int((v - min) * float64(res-1) / extent)
	if i < 0 {
		return 0
	}
	if i > res-1 {
		return res - 1
	}
	return i
}

// Rasterize marks every trajectory point in a width x height grayscale
// image. All marked pixels share intensity; the rest stay black.
func Rasterize(t attractor.Trajectory, width, height int, intensity uint8) (*image.Gray, error) {
	pr, err := NewProjector(t, width, height)
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for _, p := range t {
		x, y := pr.Pixel(p)
		img.Pix[y*img.Stride+x] = intensity
	}
	return img, nil
}

// Accumulate builds a density image: each visit adds increment to its
// pixel, saturating at 255.
func Accumulate(t attractor.Trajectory, width, height int, increment uint8) (*image.Gray, error) {
	pr, err := NewProjector(t, width, height)
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for _, p := range t {
		x, y := pr.Pixel(p)
		i := y*img.Stride + x
		if img.Pix[i] <= 255-increment {
			img.Pix[i] += increment
		} else {
			img.Pix[i] = 255
		}
	}
	return img, nil
}
