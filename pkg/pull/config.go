package pull

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/pullrefresh/pkg/errors"
)

const (
	// DefaultFooterHeight is the footer height used when none is configured.
	DefaultFooterHeight = 50
	// DefaultPullDistance is the trigger threshold used when none is configured.
	DefaultPullDistance = 60
)

// Config holds the per-list settings of a Machine.
type Config struct {
	// FooterHeight is the height of the footer affordance. Once the footer
	// is rendered it is added back to bottom overscroll so the trigger
	// threshold stays physically consistent.
	FooterHeight float64
	// PullDistance is how far past an edge the content must be dragged
	// before releasing triggers an action.
	PullDistance float64
	// MaxShowTime resets an idle affordance back to None after it has been
	// shown for this long. Zero disables the reset.
	MaxShowTime time.Duration
	// LoadedAllData reports whether the data source has no more pages.
	// Nil means more pages are always available.
	LoadedAllData func() bool
}

// WithDefaults returns a copy of c with zero or invalid values replaced by
// defaults. Invalid values are reported through the errors package.
func (c Config) WithDefaults() Config {
	if c.PullDistance == 0 {
		c.PullDistance = DefaultPullDistance
	} else if bad(c.PullDistance) {
		reportConfig(fmt.Errorf("pull distance must be positive, got %v", c.PullDistance))
		c.PullDistance = DefaultPullDistance
	}
	if c.FooterHeight == 0 {
		c.FooterHeight = DefaultFooterHeight
	} else if bad(c.FooterHeight) {
		reportConfig(fmt.Errorf("footer height must be positive, got %v", c.FooterHeight))
		c.FooterHeight = DefaultFooterHeight
	}
	if c.MaxShowTime < 0 {
		reportConfig(fmt.Errorf("max show time must not be negative, got %v", c.MaxShowTime))
		c.MaxShowTime = 0
	}
	return c
}

func (c Config) loadedAll() bool {
	return c.LoadedAllData != nil && c.LoadedAllData()
}

func bad(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}

func reportConfig(err error) {
	errors.Report(&errors.PullError{
		Op:   "pull.Config",
		Kind: errors.KindConfig,
		Err:  err,
	})
}
