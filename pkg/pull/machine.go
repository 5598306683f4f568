package pull

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/pullrefresh/pkg/animation"
	"github.com/go-drift/pullrefresh/pkg/errors"
	"github.com/go-drift/pullrefresh/pkg/logging"
)

// Scheduler runs fn once after d and returns a function that cancels it.
// Implementations must invoke fn on the goroutine that drives the Machine.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// Listener is notified after every state change.
type Listener func(from, to State)

// Option configures a Machine.
type Option func(*Machine)

// WithOnRefresh sets the callback fired when a refresh is released.
func WithOnRefresh(fn func()) Option {
	return func(m *Machine) { m.onRefresh = fn }
}

// WithOnInfinite sets the callback fired when a next-page load is released.
func WithOnInfinite(fn func()) Option {
	return func(m *Machine) { m.onInfinite = fn }
}

// WithScheduler sets the scheduler for the MaxShowTime reset. The default is
// animation.DefaultTimers.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.scheduler = s }
}

// WithLogger sets the logger used for transitions and default callbacks.
func WithLogger(l *zerolog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

type listenerEntry struct {
	id int
	fn Listener
}

// Machine tracks one pull gesture at a time.
type Machine struct {
	cfg   Config
	state State

	// generation increments on every transition; a scheduled reset only
	// applies while the generation that scheduled it is current.
	generation  uint64
	cancelReset func()

	footerRendered        bool
	initialInfiniteOffset float64

	contentSize    Size
	hasContentSize bool
	frameSize      Size
	hasFrameSize   bool

	onRefresh  func()
	onInfinite func()
	scheduler  Scheduler
	logger     *zerolog.Logger

	listeners      []listenerEntry
	nextListenerID int
}

// New creates a Machine in state None.
func New(cfg Config, opts ...Option) *Machine {
	m := &Machine{cfg: cfg.WithDefaults()}
	for _, opt := range opts {
		opt(m)
	}
	if m.scheduler == nil {
		m.scheduler = animation.DefaultTimers
	}
	if m.onRefresh == nil {
		m.onRefresh = func() { m.log().Info().Msg("onRefresh") }
	}
	if m.onInfinite == nil {
		m.onInfinite = func() { m.log().Info().Msg("onInfinite") }
	}
	return m
}

func (m *Machine) log() *zerolog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return logging.Logger()
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Config returns the active configuration with defaults applied.
func (m *Machine) Config() Config {
	return m.cfg
}

// Configure replaces the configuration, as when the host re-renders with new
// settings. The current state is kept.
func (m *Machine) Configure(cfg Config) {
	m.cfg = cfg.WithDefaults()
}

// AddListener registers fn for state changes and returns a function that
// removes it.
func (m *Machine) AddListener(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	id := m.nextListenerID
	m.nextListenerID++
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, entry := range m.listeners {
			if entry.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// Grant handles the start of a touch. It only acts from None: a touch that
// begins above the top arms the refresh side, one that begins below the
// bottom arms the infinite side and records the overscroll baseline.
func (m *Machine) Grant(metrics *Metrics) {
	if m.state != None || !m.accept(metrics, "grant") {
		return
	}
	m.initialInfiniteOffset = 0
	if metrics.TopOverscroll() < 0 {
		m.setState(RefreshIdle, "grant")
		return
	}
	bottom := metrics.BottomOverscroll()
	if bottom <= 0 {
		return
	}
	if m.cfg.loadedAll() {
		m.setState(InfiniteLoadedAll, "grant")
		return
	}
	m.initialInfiniteOffset = math.Max(bottom, 0)
	m.setState(InfiniteIdle, "grant")
}

// Scroll handles a scroll position update.
func (m *Machine) Scroll(metrics *Metrics) {
	if !m.accept(metrics, "scroll") {
		return
	}
	pullDistance := m.cfg.PullDistance

	switch status := m.state; status {
	case None, InfiniteLoadedAll, RefreshIdle, WillRefresh:
		y := metrics.TopOverscroll()
		if status != WillRefresh && y < -pullDistance {
			m.setState(WillRefresh, "scroll")
		} else if status == WillRefresh && y >= -pullDistance {
			m.setState(RefreshIdle, "scroll")
			m.scheduleReset(RefreshIdle)
		}
		if m.state != None {
			return
		}
	}

	switch status := m.state; status {
	case None, InfiniteIdle, WillInfinite:
		if m.cfg.loadedAll() {
			m.setState(InfiniteLoadedAll, "scroll")
			return
		}
		y := metrics.BottomOverscroll() - m.initialInfiniteOffset
		if m.footerRendered {
			y += m.cfg.FooterHeight
		}
		if status != WillInfinite && y > pullDistance {
			m.setState(WillInfinite, "scroll")
		} else if status == WillInfinite && y <= pullDistance {
			m.setState(InfiniteIdle, "scroll")
			m.scheduleReset(InfiniteIdle)
		}
	}
}

// Release handles the end of a touch. Releasing an armed state moves to the
// in-flight state and fires its callback without waiting for it; the caller
// must later dismiss with HideHeader or HideFooter.
func (m *Machine) Release() {
	switch m.state {
	case RefreshIdle, InfiniteIdle, InfiniteLoadedAll:
		m.setState(None, "release")
	case WillRefresh:
		m.setState(Refreshing, "release")
		m.invoke("pull.onRefresh", m.onRefresh)
	case WillInfinite:
		m.setState(Infiniting, "release")
		m.invoke("pull.onInfinite", m.onInfinite)
	}
}

// HideHeader forces the machine back to None, typically once a refresh has
// completed.
func (m *Machine) HideHeader() {
	m.setState(None, "hideHeader")
}

// HideFooter forces the machine back to None, typically once a next-page
// load has completed.
func (m *Machine) HideFooter() {
	m.setState(None, "hideFooter")
}

// HeaderState returns the current state and whether it renders a header.
func (m *Machine) HeaderState() (State, bool) {
	s := m.state
	return s, s.Side() == SideRefresh
}

// FooterState is the footer render decision. It returns the current state
// and whether it renders a footer, and remembers the answer: the next scroll
// computation compensates for the footer's height while it is rendered.
// Hosts must call it on every render pass.
func (m *Machine) FooterState() (State, bool) {
	s := m.state
	m.footerRendered = s.Side() == SideInfinite
	return s, m.footerRendered
}

// FooterRendered reports the outcome of the last FooterState call.
func (m *Machine) FooterRendered() bool {
	return m.footerRendered
}

// InitialInfiniteOffset returns the bottom overscroll recorded when the
// current pull-up gesture was granted.
func (m *Machine) InitialInfiniteOffset() float64 {
	return m.initialInfiniteOffset
}

// SetContentSize records the content size reported by the host.
func (m *Machine) SetContentSize(width, height float64) {
	m.contentSize = Size{Width: width, Height: height}
	m.hasContentSize = true
}

// SetFrameSize records the viewport size reported by the host's layout pass.
func (m *Machine) SetFrameSize(width, height float64) {
	m.frameSize = Size{Width: width, Height: height}
	m.hasFrameSize = true
}

// ContentSize returns the last content size, or false before any was reported.
func (m *Machine) ContentSize() (Size, bool) {
	return m.contentSize, m.hasContentSize
}

// FrameSize returns the last viewport size, or false before any was reported.
func (m *Machine) FrameSize() (Size, bool) {
	return m.frameSize, m.hasFrameSize
}

func (m *Machine) accept(metrics *Metrics, op string) bool {
	if metrics.Valid() {
		return true
	}
	m.log().Debug().Str("op", op).Msg("ignoring event without usable scroll metrics")
	return false
}

func (m *Machine) setState(to State, op string) {
	from := m.state
	if from == to {
		return
	}
	if m.cancelReset != nil {
		m.cancelReset()
		m.cancelReset = nil
	}
	m.state = to
	m.generation++
	m.log().Debug().Str("op", op).Stringer("from", from).Stringer("to", to).Msg("pull transition")
	for _, entry := range append([]listenerEntry(nil), m.listeners...) {
		entry.fn(from, to)
	}
}

// scheduleReset arms the MaxShowTime reset for the idle state just entered.
func (m *Machine) scheduleReset(idle State) {
	if m.cfg.MaxShowTime <= 0 || m.scheduler == nil || m.state != idle {
		return
	}
	generation := m.generation
	m.cancelReset = m.scheduler.Schedule(m.cfg.MaxShowTime, func() {
		if m.generation != generation {
			return
		}
		m.cancelReset = nil
		m.setState(None, "timeout")
	})
}

func (m *Machine) invoke(op string, fn func()) {
	if fn == nil {
		return
	}
	defer errors.RecoverCallback(op, m.state)
	fn()
}
