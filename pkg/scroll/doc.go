// Package scroll is a headless vertical scroll host.
//
// It models what a list view does between raw pointer input and the scroll
// metrics consumed by package pull: a [Position] with extents and
// overscroll, [Physics] that shape drags near the edges, drag sessions, and a
// ballistic settle that springs an overscrolled list back into range.
//
// Hosts own the event loop. They feed pointer movement into [Drag], read
// [Position.Metrics] after every change, and call [StepBallistics] (or
// [Position.Step]) once per frame.
package scroll
