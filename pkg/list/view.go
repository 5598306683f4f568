// Package list adapts a host list view to a [pull.Machine].
//
// A [View] owns nothing but the per-state render props and the row
// delegation. The host renders whatever [View.Build] returns on each pass and
// forwards its layout callbacks; W is the host's element type (a widget, a
// string, a render node).
//
// Example:
//
//	v := &list.View[string]{
//	    Machine:    m,
//	    Renderers:  list.Renderers[string]{Refreshing: func() string { return "…" }},
//	    RowCount:   func() int { return len(items) },
//	    RowBuilder: func(i int) string { return items[i] },
//	}
//	frame := v.Build()
package list

import "github.com/go-drift/pullrefresh/pkg/pull"

// Scroller is the host's scroll responder.
type Scroller interface {
	ScrollTo(x, y float64)
}

// Renderers holds one optional render prop per non-None state, plus the
// placeholder shown when the list has no rows.
type Renderers[W any] struct {
	RefreshIdle       func() W
	WillRefresh       func() W
	Refreshing        func() W
	InfiniteIdle      func() W
	WillInfinite      func() W
	Infiniting        func() W
	InfiniteLoadedAll func() W
	EmptyRow          func() W
}

// For returns the render prop for s, or nil.
func (r Renderers[W]) For(s pull.State) func() W {
	switch s {
	case pull.RefreshIdle:
		return r.RefreshIdle
	case pull.WillRefresh:
		return r.WillRefresh
	case pull.Refreshing:
		return r.Refreshing
	case pull.InfiniteIdle:
		return r.InfiniteIdle
	case pull.WillInfinite:
		return r.WillInfinite
	case pull.Infiniting:
		return r.Infiniting
	case pull.InfiniteLoadedAll:
		return r.InfiniteLoadedAll
	default:
		return nil
	}
}

// Or returns r with every nil render prop taken from fallback.
func (r Renderers[W]) Or(fallback Renderers[W]) Renderers[W] {
	pick := func(a, b func() W) func() W {
		if a != nil {
			return a
		}
		return b
	}
	return Renderers[W]{
		RefreshIdle:       pick(r.RefreshIdle, fallback.RefreshIdle),
		WillRefresh:       pick(r.WillRefresh, fallback.WillRefresh),
		Refreshing:        pick(r.Refreshing, fallback.Refreshing),
		InfiniteIdle:      pick(r.InfiniteIdle, fallback.InfiniteIdle),
		WillInfinite:      pick(r.WillInfinite, fallback.WillInfinite),
		Infiniting:        pick(r.Infiniting, fallback.Infiniting),
		InfiniteLoadedAll: pick(r.InfiniteLoadedAll, fallback.InfiniteLoadedAll),
		EmptyRow:          pick(r.EmptyRow, fallback.EmptyRow),
	}
}

// Frame is the output of one render pass.
type Frame[W any] struct {
	State     pull.State
	Header    W
	HasHeader bool
	Rows      []W
	Footer    W
	HasFooter bool
}

// View binds a Machine to a host list.
type View[W any] struct {
	// Machine drives the header and footer. Required.
	Machine *pull.Machine
	// Renderers are the caller's render props.
	Renderers Renderers[W]
	// Defaults fill in any render prop Renderers leaves nil.
	Defaults Renderers[W]
	// RowCount returns the number of data rows. Nil means zero.
	RowCount func() int
	// RowBuilder renders the row at index.
	RowBuilder func(index int) W
	// Scroller is the mounted host scroll view, or nil before mount.
	Scroller Scroller
}

func (v *View[W]) render(s pull.State) (W, bool) {
	var zero W
	fn := v.Renderers.For(s)
	if fn == nil {
		fn = v.Defaults.For(s)
	}
	if fn == nil {
		return zero, false
	}
	return fn(), true
}

// Header renders the header affordance for the current state.
func (v *View[W]) Header() (W, bool) {
	s, shown := v.Machine.HeaderState()
	if !shown {
		var zero W
		return zero, false
	}
	return v.render(s)
}

// Footer runs the footer render decision and renders the footer affordance.
// It must be called on every render pass, even when the result is unused.
func (v *View[W]) Footer() (W, bool) {
	s, shown := v.Machine.FooterState()
	if !shown {
		var zero W
		return zero, false
	}
	return v.render(s)
}

// Rows renders the data rows. An empty list renders the EmptyRow
// placeholder instead.
func (v *View[W]) Rows() []W {
	n := 0
	if v.RowCount != nil {
		n = v.RowCount()
	}
	if n <= 0 || v.RowBuilder == nil {
		empty := v.Renderers.EmptyRow
		if empty == nil {
			empty = v.Defaults.EmptyRow
		}
		if empty == nil {
			return nil
		}
		return []W{empty()}
	}
	rows := make([]W, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, v.RowBuilder(i))
	}
	return rows
}

// Build renders header, rows and footer for one pass.
func (v *View[W]) Build() Frame[W] {
	f := Frame[W]{State: v.Machine.State()}
	f.Header, f.HasHeader = v.Header()
	f.Rows = v.Rows()
	f.Footer, f.HasFooter = v.Footer()
	return f
}

// ScrollTo forwards to the host scroll view. Before mount it does nothing.
func (v *View[W]) ScrollTo(x, y float64) {
	if v.Scroller == nil {
		return
	}
	v.Scroller.ScrollTo(x, y)
}

// OnLayout records the viewport size from the host's layout pass.
func (v *View[W]) OnLayout(width, height float64) {
	v.Machine.SetFrameSize(width, height)
}

// OnContentSizeChange records the content size reported by the host.
func (v *View[W]) OnContentSizeChange(width, height float64) {
	v.Machine.SetContentSize(width, height)
}

// ContentSize returns the last reported content size.
func (v *View[W]) ContentSize() (pull.Size, bool) {
	return v.Machine.ContentSize()
}

// FrameSize returns the last reported viewport size.
func (v *View[W]) FrameSize() (pull.Size, bool) {
	return v.Machine.FrameSize()
}
