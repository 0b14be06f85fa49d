package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/sampler"
	"github.com/san-kum/attractor/internal/search"
)

const (
	historyCapacity = 40
	progressBuffer  = 64
)

type TickMsg time.Time

type progressMsg struct {
	stats search.Stats
	out   attractor.Outcome
}

type foundMsg struct {
	gen   int
	out   attractor.Outcome
	stats search.Stats
	err   error
}

// SearchModel runs the attractor search in the background and shows its
// progress together with a preview of the latest accepted attractor.
type SearchModel struct {
	ctx      context.Context
	cancel   context.CancelFunc
	searcher *search.Searcher
	updates  chan progressMsg

	// Each search runs under its own context; gen tags its result so a
	// paused search's late reply is dropped.
	findCtx    context.Context
	findCancel context.CancelFunc
	gen        int

	searching bool
	paused    bool
	auto      bool
	frame     int
	found     []attractor.Outcome
	stats     search.Stats
	total     search.Stats
	history   []float64
	err       error

	width, height int
}

// NewSearchModel builds a model searching with s and p. opts are passed to
// the searcher; a progress hook is added on top of them.
func NewSearchModel(ctx context.Context, s *sampler.Sampler, p attractor.Params, opts ...search.Option) SearchModel {
	ctx, cancel := context.WithCancel(ctx)
	updates := make(chan progressMsg, progressBuffer)

	opts = append(opts, search.WithProgress(func(st search.Stats, out attractor.Outcome) {
		select {
		case updates <- progressMsg{stats: st, out: out}:
		default:
		}
	}))

	m := SearchModel{
		ctx:      ctx,
		cancel:   cancel,
		searcher: search.New(s, p, opts...),
		updates:  updates,
		auto:     true,
		width:    60,
		height:   20,
	}
	m, _ = m.start()
	return m
}

func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(tick(), m.listen(), m.find())
}

// start launches the next search, replacing any running one.
func (m SearchModel) start() (SearchModel, tea.Cmd) {
	if m.findCancel != nil {
		m.findCancel()
	}
	m.findCtx, m.findCancel = context.WithCancel(m.ctx)
	m.gen++
	m.searching, m.paused, m.stats, m.err = true, false, search.Stats{}, nil
	return m, m.find()
}

func (m SearchModel) pause() SearchModel {
	m.findCancel()
	m.gen++
	m.searching, m.paused = false, true
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m SearchModel) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.updates:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m SearchModel) find() tea.Cmd {
	ctx, gen := m.findCtx, m.gen
	return func() tea.Msg {
		out, stats, err := m.searcher.Find(ctx)
		return foundMsg{gen: gen, out: out, stats: stats, err: err}
	}
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case " ", "space":
			switch {
			case m.searching:
				return m.pause(), nil
			case m.paused:
				return m.start()
			}
		case "a":
			m.auto = !m.auto
		case "n":
			if !m.searching {
				return m.start()
			}
		}
	case tea.WindowSizeMsg:
		m.width = max(20, msg.Width-52)
		m.height = max(5, msg.Height-6)
	case TickMsg:
		m.frame++
		return m, tick()
	case progressMsg:
		m.stats = msg.stats
		if msg.out.Updates > 0 {
			m.history = append(m.history, msg.out.Lyapunov)
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, m.listen()
	case foundMsg:
		return m.handleFound(msg)
	}
	return m, nil
}

func (m SearchModel) handleFound(msg foundMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.searching = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}

	m.found = append(m.found, msg.out)
	m.stats = msg.stats
	m.total.Attempts += msg.stats.Attempts
	m.total.Diverged += msg.stats.Diverged
	m.total.Converged += msg.stats.Converged
	m.total.InsufficientChaos += msg.stats.InsufficientChaos
	m.total.Elapsed += msg.stats.Elapsed

	if m.auto {
		return m.start()
	}
	return m, nil
}

// Found returns the attractors accepted so far.
func (m SearchModel) Found() []attractor.Outcome { return m.found }

func (m SearchModel) View() string {
	var canvas string
	if n := len(m.found); n > 0 {
		canvas = panelStyle.Render(Preview(m.found[n-1].Trajectory, m.width, m.height))
	} else {
		canvas = panelStyle.Render(NewCanvas(m.width, m.height).String())
	}

	var s strings.Builder
	s.WriteString(GradientText("STRANGE ATTRACTOR SEARCH", "#00ffff", "#ff00ff") + "\n\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusFailed.Render("FAILED") + " " + Subtle.Render(m.err.Error()) + "\n\n")
	case m.searching:
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.frame)+" SEARCHING") + "\n\n")
	case m.paused:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("IDLE") + "\n\n")
	}

	s.WriteString(metric("found", fmt.Sprintf("%d", len(m.found))))
	s.WriteString(metric("attempts", fmt.Sprintf("%d", m.stats.Attempts)))
	s.WriteString(metric("diverged", fmt.Sprintf("%d", m.stats.Diverged)))
	s.WriteString(metric("converged", fmt.Sprintf("%d", m.stats.Converged)))
	s.WriteString(metric("weak chaos", fmt.Sprintf("%d", m.stats.InsufficientChaos)))
	s.WriteString(metric("total tries", fmt.Sprintf("%d", m.total.Attempts)))
	s.WriteString("\n" + MetricLabel.Render("lyapunov") + SparklineChart(m.history, 28) + "\n")

	if n := len(m.found); n > 0 {
		last := m.found[n-1]
		s.WriteString("\n" + Separator(40) + "\n")
		s.WriteString(metric("sum", fmt.Sprintf("%.1f", last.Lyapunov)))
		s.WriteString(metric("initial", fmt.Sprintf("%.6f, %.6f", last.Initial.X, last.Initial.Y)))
		for i := 0; i < attractor.NumCoefficients; i += 3 {
			a := last.Coefficients
			s.WriteString(metric(fmt.Sprintf("a%d-a%d", i, i+2), fmt.Sprintf("% .4f % .4f % .4f", a[i], a[i+1], a[i+2])))
		}
	}

	auto := "off"
	if m.auto {
		auto = "on"
	}
	s.WriteString("\n" + KeyHint.Render(fmt.Sprintf("N:Next  SP:Pause  A:Auto (%s)  Q:Quit", auto)))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, statsStyle.Render(s.String()))
}

func metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}
