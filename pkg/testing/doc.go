// Package testing provides helpers for testing pull-to-refresh lists.
//
// # Quick Start
//
// Create a tester, lay out the list, and drive gestures:
//
//	func TestPullToRefresh(t *testing.T) {
//	    tester := pulltest.NewListTesterWithT(t, pull.Config{PullDistance: 60})
//	    tester.Layout(600, 2000)
//
//	    tester.Press(100)
//	    tester.MoveTo(400) // pull down past the threshold
//	    tester.Release()
//
//	    if tester.Refreshes() != 1 {
//	        t.Error("expected one refresh")
//	    }
//	}
//
// # Time
//
// The tester installs a [FakeClock] as the animation clock and owns the
// timer queue the machine schedules on, so MaxShowTime resets and the
// spring-back settle are deterministic:
//
//	tester.Pump(500 * time.Millisecond)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import pulltest "github.com/go-drift/pullrefresh/pkg/testing"
package testing
