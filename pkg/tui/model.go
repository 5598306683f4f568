// Package tui hosts a pull-to-refresh list in the terminal with Bubble Tea.
//
// Each row is one terminal line and offsets are measured in lines. Holding
// the left mouse button is the touch: pressing grants, dragging scrolls and
// releasing lets the list spring back. Refreshes and next-page loads run
// against an in-memory [Feed] after a configurable delay.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/go-drift/pullrefresh/pkg/animation"
	"github.com/go-drift/pullrefresh/pkg/config"
	"github.com/go-drift/pullrefresh/pkg/list"
	"github.com/go-drift/pullrefresh/pkg/logging"
	"github.com/go-drift/pullrefresh/pkg/pull"
	"github.com/go-drift/pullrefresh/pkg/scroll"
)

// Terminal defaults, in lines.
const (
	DefaultPullDistance = 3
	DefaultFooterHeight = 1

	frameInterval = 16 * time.Millisecond
	chromeLines   = 2 // title and status bar
	defaultWidth  = 80
	defaultHeight = 24
)

// frameMsg drives ballistics and timers. Both read the animation clock, so
// the tick time itself is informational.
type frameMsg time.Time

// loadedMsg reports that a simulated load has finished.
type loadedMsg struct {
	side pull.Side
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for the model and its machine.
func WithLogger(l *zerolog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithStyles replaces the default palette.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// Model is the Bubble Tea model of the demo list.
type Model struct {
	cfg    config.Resolved
	styles Styles
	logger *zerolog.Logger

	machine    *pull.Machine
	view       *list.View[string]
	controller *scroll.Controller
	position   *scroll.Position
	drag       *scroll.Drag
	timers     *animation.Timers
	feed       *Feed
	spinner    spinner.Model

	width   int
	height  int
	lines   []string
	pending []tea.Cmd
}

// New builds the demo model from a resolved configuration.
func New(cfg config.Resolved, opts ...Option) *Model {
	m := &Model{
		cfg:    cfg,
		styles: DefaultStyles(),
		width:  defaultWidth,
		height: defaultHeight,
		timers: animation.NewTimers(nil),
		feed:   NewFeed(cfg.Title, cfg.PageSize, cfg.Pages),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.Logger()
	}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(m.styles.Spinner))

	pullCfg := cfg.Pull
	if pullCfg.PullDistance == 0 {
		pullCfg.PullDistance = DefaultPullDistance
	}
	if pullCfg.FooterHeight == 0 {
		pullCfg.FooterHeight = DefaultFooterHeight
	}
	pullCfg.LoadedAllData = m.feed.LoadedAll

	m.machine = pull.New(pullCfg,
		pull.WithScheduler(m.timers),
		pull.WithLogger(m.logger),
		pull.WithOnRefresh(func() { m.startLoad(pull.SideRefresh) }),
		pull.WithOnInfinite(func() { m.startLoad(pull.SideInfinite) }),
	)

	m.controller = &scroll.Controller{}
	m.position = scroll.NewPosition(m.controller, scroll.BouncingPhysics{}, nil)
	// Only touch-driven movement reaches the machine. The settle after a
	// release and keyboard scrolling must not re-arm it.
	m.controller.AddListener(func() {
		if m.drag != nil {
			m.machine.Scroll(m.position.Metrics(0))
		}
	})

	m.view = &list.View[string]{
		Machine:    m.machine,
		Defaults:   DefaultRenderers(m.styles, func() string { return m.spinner.View() }),
		RowCount:   m.feed.Len,
		RowBuilder: func(i int) string { return m.styles.Row.Render(m.feed.Row(i)) },
		Scroller:   m.controller,
	}
	m.layout()
	return m
}

// Machine exposes the underlying state machine.
func (m *Model) Machine() *pull.Machine { return m.machine }

// Feed exposes the demo data source.
func (m *Model) Feed() *Feed { return m.feed }

// Offset returns the current scroll offset in lines.
func (m *Model) Offset() float64 { return m.position.Offset() }

// Init starts the frame clock and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), m.spinner.Tick)
}

// Update handles terminal input, frame ticks and completed loads.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			m.scrollBy(1)
		case "k", "up":
			m.scrollBy(-1)
		case "r":
			m.logger.Debug().Msg("re-render requested")
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case frameMsg:
		m.step()
		cmds = append(cmds, frameTick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case loadedMsg:
		m.finishLoad(msg.side)
	}

	m.layout()
	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.drag = scroll.BeginDrag(m.position, float64(msg.Y))
		m.machine.Grant(m.position.Metrics(0))
	case msg.Action == tea.MouseActionMotion && m.drag != nil:
		m.drag.Update(float64(msg.Y))
	case msg.Action == tea.MouseActionRelease && m.drag != nil:
		drag := m.drag
		m.drag = nil
		m.machine.Release()
		drag.End()
	}
}

// scrollBy moves the list without a gesture, staying inside the content.
func (m *Model) scrollBy(lines float64) {
	if m.drag != nil {
		return
	}
	target := scroll.Clamp(m.position.Offset()+lines, m.position.MinExtent(), m.position.MaxExtent())
	m.controller.JumpTo(target)
}

func (m *Model) step() {
	scroll.StepBallistics()
	m.timers.Step()
}

func (m *Model) startLoad(side pull.Side) {
	m.logger.Info().Stringer("side", side).Dur("delay", m.cfg.LoadDelay).Msg("load started")
	m.pending = append(m.pending, tea.Tick(m.cfg.LoadDelay, func(time.Time) tea.Msg {
		return loadedMsg{side: side}
	}))
}

func (m *Model) finishLoad(side pull.Side) {
	switch side {
	case pull.SideRefresh:
		m.feed.Refresh()
		m.machine.HideHeader()
	case pull.SideInfinite:
		m.feed.NextPage()
		m.machine.HideFooter()
	}
	m.logger.Info().Stringer("side", side).Int("rows", m.feed.Len()).Msg("load finished")
}

func (m *Model) viewportLines() int {
	return max(m.height-chromeLines, 1)
}

// layout runs one render pass and feeds the resulting sizes back to the
// scroll position. Blank lines pad short content to the viewport, so a list
// at rest never reports bottom overscroll.
func (m *Model) layout() {
	frame := m.view.Build()
	lines := make([]string, 0, len(frame.Rows)+2)
	if frame.HasHeader {
		lines = append(lines, frame.Header)
	}
	lines = append(lines, frame.Rows...)
	if frame.HasFooter {
		lines = append(lines, frame.Footer)
	}
	m.lines = lines

	viewport := float64(m.viewportLines())
	content := math.Max(float64(len(lines)), viewport)
	m.position.OverscrollLimit = math.Max(viewport/2, m.machine.Config().PullDistance*2)
	m.view.OnLayout(float64(m.width), viewport)
	m.view.OnContentSizeChange(float64(m.width), content)
	m.position.Layout(viewport, content)
}

// View renders the title, the visible slice of the list and a status bar.
func (m *Model) View() string {
	viewport := m.viewportLines()
	first := int(math.Floor(m.position.Offset()))
	body := make([]string, viewport)
	for i := range body {
		if idx := first + i; idx >= 0 && idx < len(m.lines) {
			body[i] = m.lines[idx]
		}
	}

	status := fmt.Sprintf("%s  offset %.1f  rows %d  drag to pull · j/k scroll · q quit",
		m.machine.State(), m.position.Offset(), m.feed.Len())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.cfg.Title),
		strings.Join(body, "\n"),
		m.styles.Status.Render(status),
	)
}
