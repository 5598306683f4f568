package scroll

import (
	"time"

	"github.com/go-drift/pullrefresh/pkg/animation"
)

// velocityWindow is how far back pointer samples count toward the release
// velocity.
const velocityWindow = 100 * time.Millisecond

type dragSample struct {
	y    float64
	time time.Time
}

// Drag is one vertical pointer drag applied to a Position. Pointer
// coordinates grow downward, so dragging down moves the offset toward and
// past the top edge.
type Drag struct {
	position *Position
	lastY    float64
	samples  []dragSample
	done     bool
}

// BeginDrag starts a drag at pointer y, halting any running settle.
func BeginDrag(position *Position, y float64) *Drag {
	position.StopBallistic()
	d := &Drag{position: position, lastY: y}
	d.sample(y)
	return d
}

// Update moves the pointer to y and applies the movement with physics.
// It returns the raw pointer delta.
func (d *Drag) Update(y float64) float64 {
	if d.done {
		return 0
	}
	delta := y - d.lastY
	d.lastY = y
	d.sample(y)
	if delta != 0 {
		d.position.ApplyUserOffset(-delta)
	}
	return delta
}

// Velocity estimates the pointer velocity in units per second from recent
// samples.
func (d *Drag) Velocity() float64 {
	if len(d.samples) < 2 {
		return 0
	}
	first, last := d.samples[0], d.samples[len(d.samples)-1]
	dt := last.time.Sub(first.time).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.y - first.y) / dt
}

// End releases the pointer and hands the position to the ballistic settle.
func (d *Drag) End() {
	if d.done {
		return
	}
	d.done = true
	d.position.StartBallistic(-d.Velocity())
}

// Cancel abandons the drag and settles without inertia.
func (d *Drag) Cancel() {
	if d.done {
		return
	}
	d.done = true
	d.position.StartBallistic(0)
}

func (d *Drag) sample(y float64) {
	now := animation.Now()
	d.samples = append(d.samples, dragSample{y: y, time: now})
	cut := 0
	for cut < len(d.samples)-1 && now.Sub(d.samples[cut].time) > velocityWindow {
		cut++
	}
	d.samples = d.samples[cut:]
}
