// Package replay runs recorded event traces through a pull.Machine.
//
// A trace is a YAML document listing the events a host would deliver:
//
//	config:
//	  pull_distance: 60
//	  max_show_time: 1s
//	loaded_all: false
//	events:
//	  - grant: {offset_y: -5, viewport_height: 600, content_height: 2000}
//	  - scroll: {offset_y: -75, viewport_height: 600, content_height: 2000}
//	  - release: true
//	  - wait: 1s
//	  - hide_header: true
//
// Replays are deterministic: waits advance a private clock and step the
// machine's timers, so the MaxShowTime reset fires exactly where the trace
// says it does.
package replay

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/pullrefresh/pkg/config"
	"github.com/go-drift/pullrefresh/pkg/errors"
	"github.com/go-drift/pullrefresh/pkg/pull"
)

// Event operation names.
const (
	OpGrant        = "grant"
	OpScroll       = "scroll"
	OpRelease      = "release"
	OpHideHeader   = "hide_header"
	OpHideFooter   = "hide_footer"
	OpRender       = "render"
	OpWait         = "wait"
	OpLayout       = "layout"
	OpContentSize  = "content_size"
	OpSetLoadedAll = "set_loaded_all"
)

// Trace is a recorded session.
type Trace struct {
	Config    config.PullConfig `yaml:"config"`
	LoadedAll bool              `yaml:"loaded_all"`
	Events    []Event           `yaml:"events"`
}

// Metrics is the YAML form of pull.Metrics.
type Metrics struct {
	InsetTop       float64 `yaml:"inset_top"`
	OffsetY        float64 `yaml:"offset_y"`
	ViewportHeight float64 `yaml:"viewport_height"`
	ContentHeight  float64 `yaml:"content_height"`
}

// Size is the YAML form of pull.Size.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Event is one host event. Exactly one field must be set.
type Event struct {
	Grant        *Metrics `yaml:"grant,omitempty"`
	Scroll       *Metrics `yaml:"scroll,omitempty"`
	Release      bool     `yaml:"release,omitempty"`
	HideHeader   bool     `yaml:"hide_header,omitempty"`
	HideFooter   bool     `yaml:"hide_footer,omitempty"`
	Render       bool     `yaml:"render,omitempty"`
	Wait         string   `yaml:"wait,omitempty"`
	Layout       *Size    `yaml:"layout,omitempty"`
	ContentSize  *Size    `yaml:"content_size,omitempty"`
	SetLoadedAll *bool    `yaml:"set_loaded_all,omitempty"`
}

// Op returns the name of the single operation e carries.
func (e Event) Op() (string, error) {
	var ops []string
	add := func(set bool, name string) {
		if set {
			ops = append(ops, name)
		}
	}
	add(e.Grant != nil, OpGrant)
	add(e.Scroll != nil, OpScroll)
	add(e.Release, OpRelease)
	add(e.HideHeader, OpHideHeader)
	add(e.HideFooter, OpHideFooter)
	add(e.Render, OpRender)
	add(e.Wait != "", OpWait)
	add(e.Layout != nil, OpLayout)
	add(e.ContentSize != nil, OpContentSize)
	add(e.SetLoadedAll != nil, OpSetLoadedAll)

	switch len(ops) {
	case 1:
		return ops[0], nil
	case 0:
		return "", fmt.Errorf("event has no operation")
	default:
		return "", fmt.Errorf("event has several operations: %s", strings.Join(ops, ", "))
	}
}

func (m *Metrics) toPull() *pull.Metrics {
	return &pull.Metrics{
		InsetTop:       m.InsetTop,
		OffsetY:        m.OffsetY,
		ViewportHeight: m.ViewportHeight,
		ContentHeight:  m.ContentHeight,
	}
}

// Load reads a trace file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return Parse(data)
}

// Parse decodes a trace document.
func Parse(data []byte) (*Trace, error) {
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	return &t, nil
}

// Validate checks that every event carries exactly one valid operation.
func (t *Trace) Validate() error {
	if _, err := t.Config.ToPull(); err != nil {
		return &errors.PullError{Op: "replay", Kind: errors.KindConfig, Err: err, Timestamp: time.Now()}
	}
	for i, e := range t.Events {
		op, err := e.Op()
		if err != nil {
			return traceError(i, err)
		}
		if op == OpWait {
			if _, err := waitDuration(e.Wait); err != nil {
				return traceError(i, err)
			}
		}
	}
	return nil
}

func waitDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid wait %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("wait must not be negative, got %s", s)
	}
	return d, nil
}

func traceError(index int, err error) *errors.PullError {
	return &errors.PullError{
		Op:        "replay",
		Kind:      errors.KindTrace,
		Err:       err,
		Index:     index,
		Timestamp: time.Now(),
	}
}
