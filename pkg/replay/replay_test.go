package replay

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/pullrefresh/pkg/errors"
	"github.com/go-drift/pullrefresh/pkg/pull"
)

func runFile(t *testing.T, name string) []Step {
	t.Helper()
	trace, err := Load(filepath.Join("testdata", name))
	require.NoError(t, err)
	nop := zerolog.Nop()
	steps, err := Run(trace, WithLogger(&nop))
	require.NoError(t, err)
	return steps
}

func lines(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.String()
	}
	return out
}

func TestRunRefresh(t *testing.T) {
	assert.Equal(t, []string{
		"0 layout none -> none",
		"1 content_size none -> none",
		"2 grant none -> refresh-idle",
		"3 scroll refresh-idle -> will-refresh",
		"4 release will-refresh -> refreshing [onRefresh]",
		"5 release refreshing -> refreshing",
		"6 hide_header refreshing -> none",
	}, lines(runFile(t, "refresh.yaml")))
}

func TestRunTimeout(t *testing.T) {
	assert.Equal(t, []string{
		"0 scroll none -> will-refresh",
		"1 scroll will-refresh -> refresh-idle",
		"2 wait refresh-idle -> refresh-idle",
		"3 scroll refresh-idle -> will-refresh",
		"4 release will-refresh -> refreshing [onRefresh]",
		"5 wait refreshing -> refreshing",
		"6 hide_header refreshing -> none",
		"7 scroll none -> will-refresh",
		"8 scroll will-refresh -> refresh-idle",
		"9 wait refresh-idle -> none",
	}, lines(runFile(t, "timeout.yaml")))
}

func TestRunInfinite(t *testing.T) {
	assert.Equal(t, []string{
		"0 grant none -> infinite-idle",
		"1 render infinite-idle -> infinite-idle",
		"2 scroll infinite-idle -> infinite-idle",
		"3 scroll infinite-idle -> will-infinite",
		"4 release will-infinite -> infiniting [onInfinite]",
		"5 set_loaded_all infiniting -> infiniting",
		"6 hide_footer infiniting -> none",
		"7 grant none -> infinite-loaded-all",
		"8 release infinite-loaded-all -> none",
		"9 release none -> none",
	}, lines(runFile(t, "infinite.yaml")))
}

func TestRunMalformed(t *testing.T) {
	trace, err := Load(filepath.Join("testdata", "malformed.yaml"))
	require.NoError(t, err)

	_, err = Run(trace)
	require.Error(t, err)

	var pullErr *errors.PullError
	require.ErrorAs(t, err, &pullErr)
	assert.Equal(t, errors.KindTrace, pullErr.Kind)
	assert.Equal(t, 1, pullErr.Index)
	assert.Contains(t, err.Error(), "event=1")
	assert.Contains(t, err.Error(), "release, hide_header")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind errors.ErrorKind
		want string
	}{
		{"empty event", "events: [{}]", errors.KindTrace, "no operation"},
		{"bad wait", "events: [{wait: later}]", errors.KindTrace, "invalid wait"},
		{"negative wait", "events: [{wait: -1s}]", errors.KindTrace, "must not be negative"},
		{"bad config", "config: {max_show_time: nope}\nevents: []", errors.KindConfig, "max_show_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			err = trace.Validate()
			var pullErr *errors.PullError
			require.ErrorAs(t, err, &pullErr)
			assert.Equal(t, tt.kind, pullErr.Kind)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunListener(t *testing.T) {
	trace, err := Parse([]byte(`
config: {max_show_time: 1s}
events:
  - scroll: {offset_y: -61, viewport_height: 600, content_height: 2000}
  - scroll: {offset_y: -59, viewport_height: 600, content_height: 2000}
  - wait: 2s
`))
	require.NoError(t, err)

	var seen []pull.State
	nop := zerolog.Nop()
	_, err = Run(trace, WithLogger(&nop), WithListener(func(_, to pull.State) { seen = append(seen, to) }))
	require.NoError(t, err)
	assert.Equal(t, []pull.State{pull.WillRefresh, pull.RefreshIdle, pull.None}, seen)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read trace")
}
