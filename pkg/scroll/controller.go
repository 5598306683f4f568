package scroll

import "slices"

// Controller observes and moves the positions attached to it.
type Controller struct {
	InitialScrollOffset float64
	positions           []*Position
	viewportExtent      float64
	listeners           map[int]func()
	nextListenerID      int
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() float64 {
	if len(c.positions) > 0 {
		return c.positions[0].Offset()
	}
	return c.InitialScrollOffset
}

// ViewportExtent returns the current viewport extent.
func (c *Controller) ViewportExtent() float64 {
	return c.viewportExtent
}

// Attached reports whether any position is attached, i.e. the host view is
// mounted.
func (c *Controller) Attached() bool {
	return len(c.positions) > 0
}

// AddListener registers a callback for scroll changes.
func (c *Controller) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	return func() {
		delete(c.listeners, id)
	}
}

// JumpTo moves all attached positions to a new offset.
func (c *Controller) JumpTo(offset float64) {
	c.InitialScrollOffset = offset
	if len(c.positions) == 0 {
		c.notifyListeners()
		return
	}
	for _, position := range c.positions {
		position.StopBallistic()
		position.SetOffset(offset)
	}
}

// ScrollTo scrolls attached positions to y. The list is vertical, so x is
// ignored. Before any position is attached this is a no-op.
func (c *Controller) ScrollTo(_, y float64) {
	if !c.Attached() {
		return
	}
	c.JumpTo(y)
}

func (c *Controller) attach(position *Position) {
	if slices.Contains(c.positions, position) {
		return
	}
	c.positions = append(c.positions, position)
}

func (c *Controller) detach(position *Position) {
	for i, existing := range c.positions {
		if existing == position {
			c.positions = append(c.positions[:i], c.positions[i+1:]...)
			return
		}
	}
}

func (c *Controller) setViewportExtent(extent float64) {
	if extent == c.viewportExtent {
		return
	}
	c.viewportExtent = extent
	c.notifyListeners()
}

func (c *Controller) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}
