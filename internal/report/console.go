package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/search"
	"github.com/san-kum/attractor/internal/viz"
)

const separatorWidth = 85

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// Console prints the coefficients and initial point of every accepted
// attractor, optionally with ascii plots and a braille preview.
type Console struct {
	w       io.Writer
	plot    bool
	preview bool
	width   int
	height  int
}

type ConsoleOption func(*Console)

// WithPlot adds ascii plots of the x and y series.
func WithPlot() ConsoleOption { return func(c *Console) { c.plot = true } }

// WithPreview adds a braille rendering of the attractor sized in terminal
// cells.
func WithPreview(width, height int) ConsoleOption {
	return func(c *Console) { c.preview, c.width, c.height = true, width, height }
}

func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w, width: 60, height: 20}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Report(_ context.Context, index int, out attractor.Outcome, stats search.Stats) error {
	_, err := io.WriteString(c.w, c.Format(index, out, stats))
	return err
}

// Format renders the report for one attractor.
func (c *Console) Format(index int, out attractor.Outcome, stats search.Stats) string {
	rule := ruleStyle.Render(strings.Repeat("-", separatorWidth))

	var s strings.Builder
	s.WriteString(rule + "\n")
	s.WriteString(titleStyle.Render(fmt.Sprintf("Attractor %d", index+1)) + "\n\n")
	s.WriteString(out.Coefficients.String() + "\n\n")
	s.WriteString(fmt.Sprintf("%f\n%f\n\n", out.Initial.X, out.Initial.Y))

	s.WriteString(labelStyle.Render("attempts") + valueStyle.Render(fmt.Sprintf("%d (diverged %d, converged %d, weak %d)",
		stats.Attempts, stats.Diverged, stats.Converged, stats.InsufficientChaos)) + "\n")
	s.WriteString(labelStyle.Render("lyapunov") + valueStyle.Render(fmt.Sprintf("%.2f (mean %.4f)", out.Lyapunov, out.Exponent())) + "\n")
	s.WriteString(labelStyle.Render("points") + valueStyle.Render(fmt.Sprintf("%d", len(out.Trajectory))) + "\n")
	s.WriteString(labelStyle.Render("elapsed") + valueStyle.Render(stats.Elapsed.String()) + "\n")

	if c.plot && len(out.Trajectory) > 1 {
		s.WriteString("\n" + graphStyle.Render(Series(out.Trajectory.Xs(), "x")) + "\n")
		s.WriteString("\n" + graphStyle.Render(Series(out.Trajectory.Ys(), "y")) + "\n")
	}
	if c.preview && len(out.Trajectory) > 0 {
		s.WriteString("\n" + viz.Preview(out.Trajectory, c.width, c.height))
	}

	s.WriteString(rule + "\n")
	return s.String()
}

// Series plots the tail of a coordinate series, sampled down to fit.
func Series(data []float64, caption string) string {
	const width, window = 80, 400
	if len(data) > window {
		data = data[len(data)-window:]
	}
	return asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Caption(caption+" (last "+fmt.Sprint(len(data))+" steps)"),
	)
}
