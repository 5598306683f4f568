// Package pull implements the state machine behind pull-to-refresh and
// pull-up-to-load-more lists.
//
// A [Machine] consumes three event streams from a host scroll view: a grant
// when a touch starts ([Machine.Grant]), scroll position updates
// ([Machine.Scroll]) and the release of the touch ([Machine.Release]). From
// the raw offsets it decides when the user has pulled far enough to arm a
// refresh or a next-page load, and fires the corresponding callback when the
// touch ends in an armed state.
//
// # States
//
// The machine holds exactly one [State]. Refresh-side and infinite-side
// states never coexist:
//
//	None ──► RefreshIdle ◄──► WillRefresh ──► Refreshing ──► None
//	None ──► InfiniteIdle ◄──► WillInfinite ──► Infiniting ──► None
//	None ──► InfiniteLoadedAll ──► None
//
// Refreshing and Infiniting only leave through [Machine.HideHeader] or
// [Machine.HideFooter], which the caller invokes once its asynchronous work
// completes.
//
// # Threading
//
// A Machine is not safe for concurrent use. All methods must be called from
// the host's UI goroutine. The optional MaxShowTime reset is scheduled on a
// [Scheduler] that the host steps from the same goroutine (see
// animation.StepTimers).
//
// # Example
//
//	m := pull.New(pull.Config{PullDistance: 60},
//	    pull.WithOnRefresh(func() { go reload() }),
//	)
//	m.Grant(&pull.Metrics{OffsetY: -5, ViewportHeight: 600, ContentHeight: 2000})
//	m.Scroll(&pull.Metrics{OffsetY: -75, ViewportHeight: 600, ContentHeight: 2000})
//	m.Release() // Refreshing; reload() runs
//	// later, from the UI goroutine:
//	m.HideHeader()
package pull
