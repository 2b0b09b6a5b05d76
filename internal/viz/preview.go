package viz

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gradloop/internal/anim"
	"github.com/san-kum/gradloop/internal/gradient"
	"github.com/san-kum/gradloop/internal/rgb"
	"github.com/san-kum/gradloop/internal/schedule"
	"golang.org/x/image/draw"
)

const (
	maxCols = 72
	maxRows = 12
)

type TickMsg time.Time

// Preview plays the animation in the terminal, downscaled so one cell is
// one sampled pixel.
type Preview struct {
	params  anim.Params
	total   int
	frame   int
	cols    int
	rows    int
	running bool
}

func NewPreview(p anim.Params) Preview {
	m := Preview{params: p, total: p.TotalFrames(), running: true}
	m.resize(maxCols + 4)
	return m
}

func (m *Preview) resize(termWidth int) {
	if m.params.Width <= 0 || m.params.Height <= 0 {
		m.cols, m.rows = 1, 1
		return
	}
	cols := termWidth - 4
	if cols > maxCols {
		cols = maxCols
	}
	if cols > m.params.Width {
		cols = m.params.Width
	}
	if cols < 1 {
		cols = 1
	}
	// terminal cells are roughly twice as tall as they are wide
	rows := cols * m.params.Height / m.params.Width / 2
	if rows < 1 {
		rows = 1
	}
	if rows > maxRows {
		rows = maxRows
	}
	m.cols, m.rows = cols, rows
}

func (m Preview) Frame() int { return m.frame }

func (m Preview) Running() bool { return m.running }

func (m Preview) Progress() float64 { return schedule.Progress(m.frame, m.total) }

func (m Preview) tick() tea.Cmd {
	rate := m.params.Timing.FrameRate
	if rate <= 0 {
		rate = schedule.DefaultFrameRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Preview) Init() tea.Cmd {
	return m.tick()
}

func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.frame = 0
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
	case TickMsg:
		if m.running && m.total > 0 {
			m.frame = (m.frame + 1) % m.total
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Preview) cells() *image.RGBA {
	p := m.params
	frame := gradient.Render(p.Start, p.End, p.Width, p.Height, m.Progress())
	dst := image.NewRGBA(image.Rect(0, 0, m.cols, m.rows))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
	return dst
}

func (m Preview) View() string {
	p := m.params
	img := m.cells()

	var canvas strings.Builder
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			c := img.RGBAAt(x, y)
			canvas.WriteString(Swatch(rgb.Color{R: c.R, G: c.G, B: c.B}, 1))
		}
		if y < m.rows-1 {
			canvas.WriteString("\n")
		}
	}

	status := StatusRunning.Render("PLAYING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(GradientText("gradloop preview", p.Start, p.End) + "  " + status + "\n\n")
	s.WriteString(Panel.Render(canvas.String()) + "\n")
	s.WriteString(MetricLabel.Render("colors") + MetricValue.Render(fmt.Sprintf("%s → %s", p.Start, p.End)) + "\n")
	s.WriteString(MetricLabel.Render("size") + MetricValue.Render(fmt.Sprintf("%dx%d, %ds", p.Width, p.Height, p.Duration)) + "\n")
	s.WriteString(MetricLabel.Render("frame") + MetricValue.Render(fmt.Sprintf("%d/%d", m.frame+1, m.total)) + "\n")
	s.WriteString(MetricLabel.Render("progress") + ProgressBar(m.Progress(), 30) + " " + MetricValue.Render(fmt.Sprintf("%.2f", m.Progress())) + "\n")
	s.WriteString(KeyHint.Render("space: pause  r: restart  q: quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}

// RunPreview blocks until the user quits the preview.
func RunPreview(p anim.Params) error {
	_, err := tea.NewProgram(NewPreview(p)).Run()
	return err
}
