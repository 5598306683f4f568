package pull

import "math"

// Metrics is the scroll snapshot a host reports with each event.
type Metrics struct {
	// InsetTop is the extra scrollable padding above the content.
	InsetTop float64
	// OffsetY is the vertical content offset. Negative values are
	// overscroll past the top.
	OffsetY float64
	// ViewportHeight is the height of the visible area.
	ViewportHeight float64
	// ContentHeight is the total height of the scrollable content.
	ContentHeight float64
}

// Valid reports whether every field is a finite number.
func (m *Metrics) Valid() bool {
	if m == nil {
		return false
	}
	for _, v := range [...]float64{m.InsetTop, m.OffsetY, m.ViewportHeight, m.ContentHeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TopOverscroll returns InsetTop+OffsetY. Negative means pulled down past
// the top edge.
func (m *Metrics) TopOverscroll() float64 {
	return m.InsetTop + m.OffsetY
}

// BottomOverscroll returns how far the viewport extends past the end of the
// content. Positive means pulled up past the bottom edge.
func (m *Metrics) BottomOverscroll() float64 {
	return m.InsetTop + m.OffsetY + m.ViewportHeight - m.ContentHeight
}

// Size is a width/height pair reported by layout callbacks.
type Size struct {
	Width  float64
	Height float64
}
