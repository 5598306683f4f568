package testing

import (
	"errors"
	gotesting "testing"
	"time"

	"github.com/go-drift/pullrefresh/pkg/animation"
	"github.com/go-drift/pullrefresh/pkg/pull"
	"github.com/go-drift/pullrefresh/pkg/scroll"
)

// FrameInterval is the step used by Pump and PumpAndSettle.
const FrameInterval = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: list did not settle")

// Transition is one recorded state change.
type Transition struct {
	From pull.State
	To   pull.State
}

// ListTester wires a pull.Machine to a headless scroll host with bouncing
// physics, a fake clock and a private timer queue.
type ListTester struct {
	// InsetTop is reported as the content inset with every event.
	InsetTop float64

	clock       *FakeClock
	restoreClk  func()
	timers      *animation.Timers
	controller  *scroll.Controller
	position    *scroll.Position
	machine     *pull.Machine
	drag        *scroll.Drag
	removeHooks []func()

	refreshes   int
	infinites   int
	transitions []Transition
}

// NewListTester creates a tester. Call Cleanup() when done, or use
// NewListTesterWithT() instead. Extra options are applied after the
// tester's own, so WithOnRefresh/WithOnInfinite replace the counters.
func NewListTester(cfg pull.Config, opts ...pull.Option) *ListTester {
	clk := NewFakeClock()
	t := &ListTester{
		clock:      clk,
		timers:     animation.NewTimers(clk),
		controller: &scroll.Controller{},
	}
	t.restoreClk = clk.Install()

	base := []pull.Option{
		pull.WithScheduler(t.timers),
		pull.WithOnRefresh(func() { t.refreshes++ }),
		pull.WithOnInfinite(func() { t.infinites++ }),
	}
	t.machine = pull.New(cfg, append(base, opts...)...)
	t.position = scroll.NewPosition(t.controller, scroll.BouncingPhysics{}, nil)
	t.removeHooks = append(t.removeHooks,
		t.machine.AddListener(func(from, to pull.State) {
			t.transitions = append(t.transitions, Transition{From: from, To: to})
		}),
		t.controller.AddListener(func() {
			if t.drag != nil {
				t.machine.Scroll(t.position.Metrics(t.InsetTop))
			}
		}),
	)
	return t
}

// NewListTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewListTesterWithT(t gotesting.TB, cfg pull.Config, opts ...pull.Option) *ListTester {
	tester := NewListTester(cfg, opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock and detaches the scroll host.
func (t *ListTester) Cleanup() {
	for _, remove := range t.removeHooks {
		remove()
	}
	t.removeHooks = nil
	t.position.Detach()
	if t.restoreClk != nil {
		t.restoreClk()
		t.restoreClk = nil
	}
}

// Machine returns the machine under test.
func (t *ListTester) Machine() *pull.Machine { return t.machine }

// Position returns the scroll position.
func (t *ListTester) Position() *scroll.Position { return t.position }

// Controller returns the scroll controller.
func (t *ListTester) Controller() *scroll.Controller { return t.controller }

// Clock returns the fake clock.
func (t *ListTester) Clock() *FakeClock { return t.clock }

// Timers returns the queue the machine schedules resets on.
func (t *ListTester) Timers() *animation.Timers { return t.timers }

// State returns the machine's current state.
func (t *ListTester) State() pull.State { return t.machine.State() }

// Refreshes returns how many times onRefresh fired.
func (t *ListTester) Refreshes() int { return t.refreshes }

// Infinites returns how many times onInfinite fired.
func (t *ListTester) Infinites() int { return t.infinites }

// Transitions returns every state change recorded so far.
func (t *ListTester) Transitions() []Transition {
	return append([]Transition(nil), t.transitions...)
}

// Layout sets the viewport and content heights and reports them to the
// machine's layout callbacks.
func (t *ListTester) Layout(viewport, content float64) {
	t.position.Layout(viewport, content)
	t.machine.SetFrameSize(0, viewport)
	t.machine.SetContentSize(0, content)
}

// Render runs the header and footer render decisions, as a host does on
// every frame.
func (t *ListTester) Render() (header, footer bool) {
	_, header = t.machine.HeaderState()
	_, footer = t.machine.FooterState()
	return header, footer
}

// Press starts a touch at pointer y and grants it to the machine.
func (t *ListTester) Press(y float64) {
	t.drag = scroll.BeginDrag(t.position, y)
	t.machine.Grant(t.position.Metrics(t.InsetTop))
}

// MoveTo moves the active touch to pointer y.
func (t *ListTester) MoveTo(y float64) {
	if t.drag == nil {
		return
	}
	t.drag.Update(y)
}

// Release ends the active touch. Movement during the settle that follows
// is not reported to the machine.
func (t *ListTester) Release() {
	drag := t.drag
	t.drag = nil
	t.machine.Release()
	if drag != nil {
		drag.End()
	}
}

// DragFrom presses at start, moves by delta and releases.
func (t *ListTester) DragFrom(start, delta float64) {
	t.Press(start)
	t.MoveTo(start + delta)
	t.Release()
}

// Pump advances the clock by d in frame-sized steps, firing timers and
// stepping the settle on each frame.
func (t *ListTester) Pump(d time.Duration) {
	for d > 0 {
		step := min(d, FrameInterval)
		d -= step
		t.clock.Advance(step)
		t.timers.Step()
		t.position.Step(step.Seconds())
	}
}

// PumpAndSettle pumps frames until the scroll position is at rest and no
// timers are pending, or timeout elapses.
func (t *ListTester) PumpAndSettle(timeout time.Duration) error {
	for elapsed := time.Duration(0); elapsed < timeout; elapsed += FrameInterval {
		if !t.position.Settling() && t.timers.Pending() == 0 {
			return nil
		}
		t.Pump(FrameInterval)
	}
	if t.position.Settling() || t.timers.Pending() > 0 {
		return ErrSettleTimeout
	}
	return nil
}
