package scroll

import (
	"math"
	"sync"
	"time"

	"github.com/go-drift/pullrefresh/pkg/animation"
	"github.com/go-drift/pullrefresh/pkg/pull"
)

// Position stores the current scroll offset and extents.
type Position struct {
	offset     float64
	min        float64
	max        float64
	content    float64
	viewport   float64
	physics    Physics
	onUpdate   func()
	controller *Controller
	ballistic  *ballisticState

	// OverscrollLimit bounds how far past either edge bouncing physics may
	// move the offset. Zero derives it from the viewport.
	OverscrollLimit float64
}

// NewPosition creates a new scroll position attached to controller.
func NewPosition(controller *Controller, physics Physics, onUpdate func()) *Position {
	if physics == nil {
		physics = ClampingPhysics{}
	}
	position := &Position{
		offset:     0,
		physics:    physics,
		onUpdate:   onUpdate,
		controller: controller,
	}
	if controller != nil {
		position.offset = controller.InitialScrollOffset
		controller.attach(position)
	}
	return position
}

// Detach unhooks the position from its controller, as when the host view
// unmounts.
func (p *Position) Detach() {
	p.StopBallistic()
	if p.controller != nil {
		p.controller.detach(p)
		p.controller = nil
	}
}

// Offset returns the current scroll offset.
func (p *Position) Offset() float64 {
	return p.offset
}

// MinExtent returns the smallest in-range offset.
func (p *Position) MinExtent() float64 { return p.min }

// MaxExtent returns the largest in-range offset.
func (p *Position) MaxExtent() float64 { return p.max }

// SetOffset updates the scroll offset.
func (p *Position) SetOffset(value float64) {
	allowOverscroll := isBouncing(p.physics)
	clamped := p.clampOffset(value, allowOverscroll)
	if clamped == p.offset {
		return
	}
	p.offset = clamped
	p.notify()
}

// SetExtents updates the min/max scroll extents.
func (p *Position) SetExtents(min, max float64) {
	if max < min {
		max = min
	}
	changed := min != p.min || max != p.max
	p.min = min
	p.max = max
	if changed && p.ballistic != nil && p.ballistic.spring != nil && isOverscrolled(p) {
		// Aim the running spring-back at the new edge.
		p.ballistic.initSpring()
	}
	p.SetOffset(p.offset)
}

// Layout records the viewport and content heights and derives the extents.
func (p *Position) Layout(viewport, content float64) {
	p.content = content
	p.viewport = viewport
	if p.controller != nil {
		p.controller.setViewportExtent(viewport)
	}
	p.SetExtents(0, math.Max(content-viewport, 0))
}

// Metrics converts the position into a pull.Metrics snapshot.
func (p *Position) Metrics(insetTop float64) *pull.Metrics {
	return &pull.Metrics{
		InsetTop:       insetTop,
		OffsetY:        p.offset,
		ViewportHeight: viewportExtentForPosition(p),
		ContentHeight:  p.content,
	}
}

// Overscroll returns how far the offset lies outside the extents: negative
// past the top, positive past the bottom, zero in range.
func (p *Position) Overscroll() float64 {
	switch {
	case p.offset < p.min:
		return p.offset - p.min
	case p.offset > p.max:
		return p.offset - p.max
	default:
		return 0
	}
}

// ApplyUserOffset applies a drag delta with physics.
func (p *Position) ApplyUserOffset(delta float64) {
	p.StopBallistic()
	if p.physics == nil {
		p.SetOffset(p.offset + delta)
		return
	}
	adjusted := p.physics.ApplyPhysicsToUserOffset(p, delta)
	proposed := p.offset + adjusted
	overscroll := p.physics.ApplyBoundaryConditions(p, proposed)
	proposed -= overscroll
	p.SetOffset(proposed)
}

// StartBallistic begins inertial scrolling with the provided velocity.
func (p *Position) StartBallistic(velocity float64) {
	p.StopBallistic()
	velocity = p.normalizeBallisticVelocity(velocity)
	// Always animate back when overscrolled.
	if !isOverscrolled(p) && math.Abs(velocity) < 5 {
		return
	}
	p.ballistic = newBallisticState(p, velocity)
	registerBallistic(p)
	p.notify()
}

func (p *Position) normalizeBallisticVelocity(velocity float64) float64 {
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return 0
	}
	velocity *= 0.9
	viewport := viewportExtentForPosition(p)
	maxAbs := Clamp(viewport*5.4, 1080, 4500)
	return Clamp(velocity, -maxAbs, maxAbs)
}

// StopBallistic halts any ongoing inertial scroll.
func (p *Position) StopBallistic() {
	if p.ballistic != nil {
		unregisterBallistic(p)
		p.ballistic = nil
	}
}

// Settling reports whether a ballistic simulation is running.
func (p *Position) Settling() bool {
	return p.ballistic != nil
}

// Step advances the ballistic simulation by dt seconds and reports whether
// the position is at rest.
func (p *Position) Step(dt float64) bool {
	if p.ballistic == nil {
		return true
	}
	if p.ballistic.advance(dt) {
		p.StopBallistic()
		return true
	}
	return false
}

func (p *Position) notify() {
	if p.onUpdate != nil {
		p.onUpdate()
	}
	if p.controller != nil {
		p.controller.notifyListeners()
	}
}

func (p *Position) clampOffset(value float64, allowOverscroll bool) float64 {
	if !allowOverscroll {
		return Clamp(value, p.min, p.max)
	}
	limit := p.OverscrollLimit
	if limit <= 0 {
		limit = Clamp(viewportExtentForPosition(p)*0.35, 80, 220)
	}
	return Clamp(value, p.min-limit, p.max+limit)
}

func viewportExtentForPosition(p *Position) float64 {
	if p != nil && p.viewport > 0 {
		return p.viewport
	}
	if p != nil && p.controller != nil && p.controller.viewportExtent > 0 {
		return p.controller.viewportExtent
	}
	return 600
}

func isOverscrolled(position *Position) bool {
	return position.offset < position.min || position.offset > position.max
}

type ballisticState struct {
	position *Position
	velocity float64
	lastTime time.Time
	spring   *animation.SpringSimulation
}

func newBallisticState(position *Position, velocity float64) *ballisticState {
	b := &ballisticState{
		position: position,
		velocity: velocity,
		lastTime: animation.Now(),
	}
	// If overscrolled, create spring simulation immediately
	if isOverscrolled(position) && isBouncing(position.physics) {
		b.initSpring()
	}
	return b
}

func (b *ballisticState) initSpring() {
	pos := b.position
	target := pos.max
	if pos.offset < pos.min {
		target = pos.min
	}
	b.spring = animation.NewSpringSimulation(
		animation.IOSSpring(),
		pos.offset,
		b.velocity,
		target,
	)
}

func (b *ballisticState) step(now time.Time) bool {
	if now.Before(b.lastTime) {
		b.lastTime = now
		return false
	}
	dt := now.Sub(b.lastTime).Seconds()
	b.lastTime = now
	// Cap dt so a stalled frame does not jump the list.
	const maxDt = 0.032
	if dt > maxDt {
		dt = maxDt
	}
	return b.advance(dt)
}

func (b *ballisticState) advance(dt float64) bool {
	if dt <= 0 {
		return false
	}
	pos := b.position

	if b.spring == nil && isOverscrolled(pos) && isBouncing(pos.physics) {
		b.initSpring()
	}
	if b.spring != nil {
		done := b.spring.Step(dt)
		pos.offset = b.spring.Position()
		b.velocity = b.spring.Velocity()
		pos.notify()
		return done
	}

	velocity := b.velocity
	decel := 2200.0 + 0.385*math.Abs(velocity)
	if velocity > 0 {
		velocity = math.Max(velocity-decel*dt, 0)
	} else if velocity < 0 {
		velocity = math.Min(velocity+decel*dt, 0)
	}
	b.velocity = velocity
	pos.offset = pos.clampOffset(pos.offset+velocity*dt, isBouncing(pos.physics))
	pos.notify()

	return math.Abs(velocity) < 5
}

var ballisticMu sync.Mutex
var ballisticPositions = make(map[*Position]struct{})

func registerBallistic(position *Position) {
	ballisticMu.Lock()
	ballisticPositions[position] = struct{}{}
	ballisticMu.Unlock()
}

func unregisterBallistic(position *Position) {
	ballisticMu.Lock()
	delete(ballisticPositions, position)
	ballisticMu.Unlock()
}

// StepBallistics advances every settling position to the animation clock's
// current time. Hosts call it once per frame.
func StepBallistics() {
	ballisticMu.Lock()
	if len(ballisticPositions) == 0 {
		ballisticMu.Unlock()
		return
	}
	now := animation.Now()
	positions := make([]*Position, 0, len(ballisticPositions))
	for position := range ballisticPositions {
		positions = append(positions, position)
	}
	ballisticMu.Unlock()

	for _, position := range positions {
		if position.ballistic == nil {
			continue
		}
		if position.ballistic.step(now) {
			position.StopBallistic()
		}
	}
}
