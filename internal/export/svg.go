package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/render"
	"github.com/san-kum/attractor/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(svgHeader(width, height))
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws one square per visited pixel, using the same
// projection as the raster renderer.
func TrajectoryToSVG(t attractor.Trajectory, width, height int, fill string) string {
	pr, err := render.NewProjector(t, width, height)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(float64(width), float64(height)))
	fmt.Fprintf(&sb, `<g fill="%s">`+"\n", fill)

	seen := make([]bool, width*height)
	for _, p := range t {
		x, y := pr.Pixel(p)
		if seen[y*width+x] {
			continue
		}
		seen[y*width+x] = true
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="1" height="1"/>`+"\n", x, y)
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func svgHeader(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)
}
