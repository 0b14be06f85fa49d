package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/attractor/internal/analysis"
	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/export"
	"github.com/san-kum/attractor/internal/maps"
	"github.com/san-kum/attractor/internal/render"
	"github.com/san-kum/attractor/internal/viz"
)

var (
	presetsFile string
	fromFile    string
	// Render parameters
	mapName    string
	coeffs     string
	startX     float64
	startY     float64
	iterations int
	intensity  uint8
	width      int
	height     int
	output     string
	format     string
	preview    bool
)

func renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render a known attractor as a density image",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().StringVar(&presetsFile, "presets", "", "extra presets file (yaml)")
	cmd.Flags().StringVar(&fromFile, "from", "", "render a search result from its json metadata file")
	cmd.Flags().StringVar(&mapName, "map", "clifford", "map kind ("+strings.Join(maps.Names(), ", ")+")")
	cmd.Flags().StringVar(&coeffs, "coeffs", "", "comma-separated coefficients")
	cmd.Flags().Float64Var(&startX, "x", 0.1, "initial x")
	cmd.Flags().Float64Var(&startY, "y", 0.1, "initial y")
	cmd.Flags().IntVar(&iterations, "iter", 1000000, "iterations")
	cmd.Flags().Uint8Var(&intensity, "intensity", 2, "density increment per visit")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <name>.<format>)")
	cmd.Flags().StringVar(&format, "format", "ppm", "image format (png, pgm, ppm, svg)")
	cmd.Flags().BoolVar(&preview, "preview", false, "print a braille preview")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	name := mapName
	p := config.Preset{
		Map:        mapName,
		Initial:    attractor.Point{X: startX, Y: startY},
		Iterations: iterations,
		Intensity:  intensity,
	}

	if len(args) == 1 {
		presets, err := loadPresets()
		if err != nil {
			return err
		}
		preset, err := config.GetPreset(presets, args[0])
		if err != nil {
			return err
		}
		name = args[0]
		p = applyRenderFlags(cmd, preset)
	}

	if fromFile != "" {
		r, err := export.ReadJSON(fromFile)
		if err != nil {
			return err
		}
		name = strings.TrimSuffix(filepath.Base(fromFile), filepath.Ext(fromFile))
		p = applyRenderFlags(cmd, config.Preset{Map: r.Map, Coefficients: r.Coefficients, Initial: r.Initial()})
	}

	if cmd.Flags().Changed("coeffs") || (len(args) == 0 && fromFile == "") {
		a, err := parseCoefficients(coeffs)
		if err != nil {
			return err
		}
		p.Coefficients = a
	}

	m, err := maps.Lookup(p.Map, p.Coefficients)
	if err != nil {
		return err
	}
	if p.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", p.Iterations)
	}

	fmt.Printf("rendering %s (%s, %d iterations)\n", name, m.Name(), p.Iterations)
	start := time.Now()

	bar := newProgress(os.Stdout, "iterating")
	t := maps.IterateFunc(m, p.Initial, p.Iterations, max(p.Iterations/100, 1), func(done int) {
		bar.update(done, p.Iterations)
	})
	bar.finish()

	path := output
	if path == "" {
		path = fmt.Sprintf("%s.%s", name, format)
	}

	bar = newProgress(os.Stdout, "rendering")
	if err := writeRender(path, t, p.Intensity); err != nil {
		return err
	}
	bar.finish()

	lyap := analysis.LyapunovExponent(m, p.Initial, min(p.Iterations, 100000), 1000, 1e-8)
	lo, hi := t.Bounds()
	fmt.Printf("wrote %s in %s\n", path, time.Since(start).Round(time.Millisecond))
	fmt.Printf("bounds: [%.4f, %.4f] x [%.4f, %.4f]\n", lo.X, hi.X, lo.Y, hi.Y)
	fmt.Printf("lyapunov exponent: %.6f\n", lyap)

	if preview {
		c := viz.NewCanvas(60, 20)
		c.Plot(t)
		fmt.Print(c.String())

		if strings.EqualFold(format, "svg") {
			previewPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_preview.svg"
			if err := os.WriteFile(previewPath, []byte(export.CanvasToSVG(c, 4)), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", previewPath)
		}
	}
	return nil
}

func writeRender(path string, t attractor.Trajectory, increment uint8) error {
	if !strings.EqualFold(format, "svg") {
		img, err := render.Accumulate(t, width, height, increment)
		if err != nil {
			return err
		}
		return render.WriteFile(path, img, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	svg := export.TrajectoryToSVG(t, width, height, "#e1e1e1")
	return os.WriteFile(path, []byte(svg), 0644)
}

// progress prints a single self-overwriting status line for one phase.
type progress struct {
	w     io.Writer
	label string
	start time.Time
}

func newProgress(w io.Writer, label string) *progress {
	return &progress{w: w, label: label, start: time.Now()}
}

func (p *progress) update(done, total int) {
	frac := 1.0
	if total > 0 {
		frac = float64(done) / float64(total)
	}
	fmt.Fprintf(p.w, "\r%-10s %s %3.0f%%", p.label, viz.ProgressBar(frac, 30), frac*100)
}

func (p *progress) finish() {
	p.update(1, 1)
	fmt.Fprintf(p.w, " %s\n", time.Since(p.start).Round(time.Millisecond))
}

// applyRenderFlags lets explicit flags override the preset values.
func applyRenderFlags(cmd *cobra.Command, p config.Preset) config.Preset {
	if cmd.Flags().Changed("map") {
		p.Map = mapName
	}
	if cmd.Flags().Changed("x") {
		p.Initial.X = startX
	}
	if cmd.Flags().Changed("y") {
		p.Initial.Y = startY
	}
	if cmd.Flags().Changed("iter") || p.Iterations == 0 {
		p.Iterations = iterations
	}
	if cmd.Flags().Changed("intensity") || p.Intensity == 0 {
		p.Intensity = intensity
	}
	return p
}

func parseCoefficients(s string) (attractor.Coefficients, error) {
	var a attractor.Coefficients
	if strings.TrimSpace(s) == "" {
		return a, fmt.Errorf("--coeffs is required without a preset")
	}

	fields := strings.Split(s, ",")
	if len(fields) > attractor.NumCoefficients {
		return a, fmt.Errorf("at most %d coefficients, got %d", attractor.NumCoefficients, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return a, fmt.Errorf("coefficient %d: %w", i, err)
		}
		a[i] = v
	}
	return a, nil
}

func loadPresets() (map[string]config.Preset, error) {
	if presetsFile == "" {
		return config.Presets, nil
	}
	return config.LoadPresets(presetsFile)
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMAP\tSTART\tDESCRIPTION")
	for _, name := range config.ListPresets(presets) {
		p := presets[name]
		fmt.Fprintf(w, "%s\t%s\t(%g, %g)\t%s\n", name, p.Map, p.Initial.X, p.Initial.Y, p.Description)
	}
	return w.Flush()
}
