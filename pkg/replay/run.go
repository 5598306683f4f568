package replay

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-drift/pullrefresh/pkg/animation"
	"github.com/go-drift/pullrefresh/pkg/pull"
	pulltest "github.com/go-drift/pullrefresh/pkg/testing"
)

// Step is the outcome of one replayed event.
type Step struct {
	Index     int        `json:"index"`
	Op        string     `json:"op"`
	From      pull.State `json:"from"`
	To        pull.State `json:"to"`
	Refreshes int        `json:"refreshes,omitempty"`
	Infinites int        `json:"infinites,omitempty"`
}

func (s Step) String() string {
	line := fmt.Sprintf("%d %s %s -> %s", s.Index, s.Op, s.From, s.To)
	var callbacks []string
	for i := 0; i < s.Refreshes; i++ {
		callbacks = append(callbacks, "onRefresh")
	}
	for i := 0; i < s.Infinites; i++ {
		callbacks = append(callbacks, "onInfinite")
	}
	if len(callbacks) > 0 {
		line += " [" + strings.Join(callbacks, " ") + "]"
	}
	return line
}

// Option configures Run.
type Option func(*runner)

// WithLogger sets the logger handed to the replayed machine.
func WithLogger(l *zerolog.Logger) Option {
	return func(r *runner) { r.logger = l }
}

// WithListener observes every transition, including those fired by timers
// during a wait.
func WithListener(fn pull.Listener) Option {
	return func(r *runner) { r.listener = fn }
}

type runner struct {
	logger    *zerolog.Logger
	listener  pull.Listener
	clock     *pulltest.FakeClock
	timers    *animation.Timers
	machine   *pull.Machine
	loadedAll bool
	refreshes int
	infinites int
}

// Run validates t and replays it through a fresh Machine, returning one
// Step per event.
func Run(t *Trace, opts ...Option) ([]Step, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	cfg, _ := t.Config.ToPull()

	r := &runner{
		clock:     pulltest.NewFakeClock(),
		loadedAll: t.LoadedAll,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.timers = animation.NewTimers(r.clock)
	cfg.LoadedAllData = func() bool { return r.loadedAll }

	machineOpts := []pull.Option{
		pull.WithScheduler(r.timers),
		pull.WithOnRefresh(func() { r.refreshes++ }),
		pull.WithOnInfinite(func() { r.infinites++ }),
	}
	if r.logger != nil {
		machineOpts = append(machineOpts, pull.WithLogger(r.logger))
	}
	r.machine = pull.New(cfg, machineOpts...)
	if r.listener != nil {
		r.machine.AddListener(r.listener)
	}

	steps := make([]Step, 0, len(t.Events))
	for i, e := range t.Events {
		op, _ := e.Op()
		from := r.machine.State()
		refreshes, infinites := r.refreshes, r.infinites
		r.apply(op, e)
		steps = append(steps, Step{
			Index:     i,
			Op:        op,
			From:      from,
			To:        r.machine.State(),
			Refreshes: r.refreshes - refreshes,
			Infinites: r.infinites - infinites,
		})
	}
	return steps, nil
}

func (r *runner) apply(op string, e Event) {
	m := r.machine
	switch op {
	case OpGrant:
		m.Grant(e.Grant.toPull())
	case OpScroll:
		m.Scroll(e.Scroll.toPull())
	case OpRelease:
		m.Release()
	case OpHideHeader:
		m.HideHeader()
	case OpHideFooter:
		m.HideFooter()
	case OpRender:
		m.HeaderState()
		m.FooterState()
	case OpWait:
		d, _ := waitDuration(e.Wait)
		r.clock.Advance(d)
		r.timers.Step()
	case OpLayout:
		m.SetFrameSize(e.Layout.Width, e.Layout.Height)
	case OpContentSize:
		m.SetContentSize(e.ContentSize.Width, e.ContentSize.Height)
	case OpSetLoadedAll:
		r.loadedAll = *e.SetLoadedAll
	}
}
