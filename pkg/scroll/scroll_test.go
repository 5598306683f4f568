package scroll

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/pullrefresh/pkg/animation"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func useStepClock(t *testing.T) *stepClock {
	t.Helper()
	c := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := animation.SetClock(c)
	t.Cleanup(func() { animation.SetClock(prev) })
	return c
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestScrollPosition_ClampingStopsAtEdges(t *testing.T) {
	p := NewPosition(nil, ClampingPhysics{}, nil)
	p.Layout(600, 2000)

	p.ApplyUserOffset(-50)
	if p.Offset() != 0 {
		t.Errorf("expected offset 0 at top, got %v", p.Offset())
	}
	p.ApplyUserOffset(5000)
	if p.Offset() != 1400 {
		t.Errorf("expected offset 1400 at bottom, got %v", p.Offset())
	}
}

func TestScrollPosition_BouncingResistsOverscroll(t *testing.T) {
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.Layout(600, 2000)

	// At the edge there is no overscroll yet, so the first step is free.
	p.ApplyUserOffset(-50)
	if p.Offset() != -50 {
		t.Fatalf("expected offset -50, got %v", p.Offset())
	}

	// 50/600 of the viewport overscrolled: resistance 1/(1+2.4*0.0833).
	p.ApplyUserOffset(-50)
	want := -50 - 50/1.2
	if !near(p.Offset(), want) {
		t.Errorf("expected offset %v, got %v", want, p.Offset())
	}

	// Runaway drags stop at 35% of the viewport.
	p.ApplyUserOffset(-10000)
	if p.Offset() != -210 {
		t.Errorf("expected overscroll limit -210, got %v", p.Offset())
	}
	if p.Overscroll() != -210 {
		t.Errorf("expected overscroll -210, got %v", p.Overscroll())
	}
}

func TestScrollPosition_OverscrollLimit(t *testing.T) {
	p := NewPosition(nil, &BouncingPhysics{}, nil)
	p.OverscrollLimit = 40
	p.Layout(600, 2000)
	p.SetOffset(1500)
	if p.Offset() != 1440 {
		t.Errorf("expected offset clamped to 1440, got %v", p.Offset())
	}
	if p.Overscroll() != 40 {
		t.Errorf("expected overscroll 40, got %v", p.Overscroll())
	}
}

func TestScrollPosition_LayoutWithShortContent(t *testing.T) {
	p := NewPosition(nil, ClampingPhysics{}, nil)
	p.Layout(600, 100)
	if p.MinExtent() != 0 || p.MaxExtent() != 0 {
		t.Errorf("expected extents [0, 0], got [%v, %v]", p.MinExtent(), p.MaxExtent())
	}
}

func TestScrollPosition_Metrics(t *testing.T) {
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.Layout(600, 2000)
	p.SetOffset(-30)

	m := p.Metrics(10)
	if m.TopOverscroll() != -20 {
		t.Errorf("expected top overscroll -20, got %v", m.TopOverscroll())
	}
	if m.ViewportHeight != 600 || m.ContentHeight != 2000 {
		t.Errorf("unexpected metrics %+v", *m)
	}

	p.SetOffset(1450)
	if got := p.Metrics(0).BottomOverscroll(); got != 50 {
		t.Errorf("expected bottom overscroll 50, got %v", got)
	}
}

func TestScrollPosition_NotifiesOnChange(t *testing.T) {
	updates := 0
	p := NewPosition(nil, ClampingPhysics{}, func() { updates++ })
	p.Layout(600, 2000)

	p.SetOffset(100)
	p.SetOffset(100)
	if updates != 1 {
		t.Errorf("expected 1 update, got %d", updates)
	}
}

func TestScrollPosition_SpringsBackFromOverscroll(t *testing.T) {
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.Layout(600, 2000)
	p.SetOffset(-80)

	p.StartBallistic(0)
	if !p.Settling() {
		t.Fatal("expected an overscrolled position to settle")
	}
	for i := 0; i < 600 && !p.Step(1.0/60); i++ {
	}
	if p.Settling() {
		t.Fatal("expected the spring to finish within 10 seconds")
	}
	if p.Offset() != 0 {
		t.Errorf("expected offset 0, got %v", p.Offset())
	}
}

func TestScrollPosition_FlingDecelerates(t *testing.T) {
	p := NewPosition(nil, ClampingPhysics{}, nil)
	p.Layout(600, 2000)
	p.SetOffset(500)

	p.StartBallistic(1000)
	if !p.Settling() {
		t.Fatal("expected fling to start")
	}
	for i := 0; i < 600 && !p.Step(1.0/60); i++ {
	}
	if p.Offset() <= 500 || p.Offset() > 1400 {
		t.Errorf("expected fling to move forward within range, got %v", p.Offset())
	}
}

func TestScrollPosition_SlowReleaseInRangeDoesNotFling(t *testing.T) {
	p := NewPosition(nil, ClampingPhysics{}, nil)
	p.Layout(600, 2000)
	p.StartBallistic(1)
	if p.Settling() {
		t.Error("expected no ballistic for a near-zero velocity")
	}
	p.StartBallistic(math.NaN())
	if p.Settling() {
		t.Error("expected no ballistic for NaN velocity")
	}
}

func TestStepBallistics_UsesClock(t *testing.T) {
	clock := useStepClock(t)
	p := NewPosition(nil, BouncingPhysics{}, nil)
	t.Cleanup(p.Detach)
	p.Layout(600, 2000)
	p.SetOffset(-100)

	p.StartBallistic(0)
	if !p.Settling() {
		t.Fatal("expected an active ballistic")
	}
	for i := 0; i < 600 && p.Settling(); i++ {
		clock.advance(16 * time.Millisecond)
		StepBallistics()
	}
	if p.Settling() {
		t.Fatal("expected ballistics to finish")
	}
	if p.Offset() != 0 {
		t.Errorf("expected offset 0, got %v", p.Offset())
	}
}

func TestScrollPosition_SpringRetargetsWhenContentShrinks(t *testing.T) {
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.Layout(20, 21)
	p.SetOffset(5)

	p.StartBallistic(0)
	p.Step(1.0 / 60)
	// The footer is removed mid-settle, pulling the bottom edge up a line.
	p.Layout(20, 20)
	for i := 0; i < 600 && !p.Step(1.0/60); i++ {
	}
	if p.Settling() {
		t.Fatal("expected the spring to finish")
	}
	if p.Offset() != 0 {
		t.Errorf("expected offset 0 at the new bottom edge, got %v", p.Offset())
	}
}

func TestController_JumpToAndListeners(t *testing.T) {
	c := &Controller{InitialScrollOffset: 40}
	if c.Offset() != 40 {
		t.Errorf("expected initial offset 40 before attach, got %v", c.Offset())
	}

	calls := 0
	remove := c.AddListener(func() { calls++ })

	p := NewPosition(c, ClampingPhysics{}, nil)
	if !c.Attached() {
		t.Fatal("expected controller to be attached")
	}
	p.Layout(600, 2000)
	if c.ViewportExtent() != 600 {
		t.Errorf("expected viewport extent 600, got %v", c.ViewportExtent())
	}
	if p.Offset() != 40 {
		t.Errorf("expected position to start at 40, got %v", p.Offset())
	}

	before := calls
	c.JumpTo(300)
	if p.Offset() != 300 {
		t.Errorf("expected offset 300, got %v", p.Offset())
	}
	if calls != before+1 {
		t.Errorf("expected one notification, got %d", calls-before)
	}

	remove()
	c.JumpTo(10)
	if calls != before+1 {
		t.Error("expected no notification after remove")
	}
}

func TestController_ScrollToRequiresAttachment(t *testing.T) {
	c := &Controller{}
	c.ScrollTo(0, 200)
	if c.Offset() != 0 {
		t.Errorf("expected unattached ScrollTo to be ignored, got %v", c.Offset())
	}

	p := NewPosition(c, ClampingPhysics{}, nil)
	p.Layout(600, 2000)
	c.ScrollTo(0, 200)
	if p.Offset() != 200 {
		t.Errorf("expected offset 200, got %v", p.Offset())
	}

	p.Detach()
	if c.Attached() {
		t.Error("expected detach to clear the controller")
	}
	c.ScrollTo(0, 0)
	if p.Offset() != 200 {
		t.Errorf("expected detached position to stay at 200, got %v", p.Offset())
	}
}

func TestDrag_MovesAgainstPointer(t *testing.T) {
	clock := useStepClock(t)
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.Layout(600, 2000)
	p.SetOffset(100)

	d := BeginDrag(p, 300)
	clock.advance(10 * time.Millisecond)
	if delta := d.Update(340); delta != 40 {
		t.Errorf("expected delta 40, got %v", delta)
	}
	if p.Offset() != 60 {
		t.Errorf("expected dragging down to reduce offset to 60, got %v", p.Offset())
	}
	clock.advance(10 * time.Millisecond)
	d.Update(300)
	if p.Offset() != 100 {
		t.Errorf("expected offset 100, got %v", p.Offset())
	}
}

func TestDrag_Velocity(t *testing.T) {
	clock := useStepClock(t)
	p := NewPosition(nil, ClampingPhysics{}, nil)
	p.Layout(600, 2000)
	p.SetOffset(700)

	d := BeginDrag(p, 300)
	for i := 1; i <= 5; i++ {
		clock.advance(10 * time.Millisecond)
		d.Update(300 - float64(i)*10)
	}
	// 50 units over 50ms.
	if v := d.Velocity(); !near(v, -1000) {
		t.Errorf("expected velocity -1000, got %v", v)
	}

	// Samples older than the window are dropped.
	clock.advance(200 * time.Millisecond)
	d.Update(250)
	if v := d.Velocity(); v != 0 {
		t.Errorf("expected stale samples to be dropped, got %v", v)
	}

	d.End()
	d.End()
	if d.Update(0) != 0 {
		t.Error("expected updates after End to be ignored")
	}
}

func TestDrag_CancelSettlesOverscroll(t *testing.T) {
	useStepClock(t)
	p := NewPosition(nil, BouncingPhysics{}, nil)
	t.Cleanup(p.Detach)
	p.Layout(600, 2000)

	d := BeginDrag(p, 100)
	d.Update(160)
	if p.Overscroll() >= 0 {
		t.Fatalf("expected top overscroll, got %v", p.Overscroll())
	}
	d.Cancel()
	if !p.Settling() {
		t.Error("expected cancel to spring back")
	}
}
