package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/export"
	"github.com/san-kum/attractor/internal/render"
	"github.com/san-kum/attractor/internal/search"
)

// Images writes every accepted attractor to dir as attractor_<n>.<format>,
// plus attractor_<n>.json when Metadata is set.
type Images struct {
	Dir       string
	Format    string
	Width     int
	Height    int
	Intensity uint8
	Metadata  bool

	// Written collects the paths of the files produced so far.
	Written []string
}

func (im *Images) Report(_ context.Context, index int, out attractor.Outcome, stats search.Stats) error {
	base := filepath.Join(im.Dir, fmt.Sprintf("attractor_%d", index+1))
	path := base + "." + im.Format

	if err := im.write(path, out.Trajectory); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	im.Written = append(im.Written, path)

	if im.Metadata {
		meta := base + ".json"
		if err := export.WriteJSON(meta, export.NewRecord(index, out, stats.Attempts)); err != nil {
			return fmt.Errorf("write %s: %w", meta, err)
		}
		im.Written = append(im.Written, meta)
	}
	return nil
}

func (im *Images) write(path string, t attractor.Trajectory) error {
	if im.Format != "svg" {
		img, err := render.Rasterize(t, im.Width, im.Height, im.Intensity)
		if err != nil {
			return err
		}
		return render.WriteFile(path, img, im.Format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	svg := export.TrajectoryToSVG(t, im.Width, im.Height, "#e1e1e1")
	return os.WriteFile(path, []byte(svg), 0644)
}

// Multi fans an accepted attractor out to several reporters in order.
type Multi []search.Reporter

func (m Multi) Report(ctx context.Context, index int, out attractor.Outcome, stats search.Stats) error {
	for _, r := range m {
		if err := r.Report(ctx, index, out, stats); err != nil {
			return err
		}
	}
	return nil
}
