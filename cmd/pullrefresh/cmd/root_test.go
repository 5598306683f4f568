package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixture(name string) string {
	return filepath.Join("..", "..", "..", "pkg", "replay", "testdata", name)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pullrefresh version 0.1.0-dev (built unknown)\n", out)
}

func TestReplay(t *testing.T) {
	out, err := execute(t, "--dir", t.TempDir(), "replay", fixture("refresh.yaml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "4 release will-refresh -> refreshing [onRefresh]", lines[4])
	assert.Equal(t, "6 hide_header refreshing -> none", lines[6])
}

func TestReplayJSON(t *testing.T) {
	out, err := execute(t, "--dir", t.TempDir(), "replay", "--json", fixture("infinite.yaml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)

	var step struct {
		Index     int    `json:"index"`
		Op        string `json:"op"`
		From      string `json:"from"`
		To        string `json:"to"`
		Infinites int    `json:"infinites"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[4]), &step))
	assert.Equal(t, 4, step.Index)
	assert.Equal(t, "release", step.Op)
	assert.Equal(t, "will-infinite", step.From)
	assert.Equal(t, "infiniting", step.To)
	assert.Equal(t, 1, step.Infinites)
}

func TestReplayMalformedTrace(t *testing.T) {
	_, err := execute(t, "--dir", t.TempDir(), "replay", fixture("malformed.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event=1")
}

func TestReplayRequiresTrace(t *testing.T) {
	_, err := execute(t, "--dir", t.TempDir(), "replay")
	require.Error(t, err)
}

func TestInvalidConfigFailsEarly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pullrefresh.yaml"), []byte("pull: {max_show_time: soon}\n"), 0o644))

	_, err := execute(t, "--dir", dir, "replay", fixture("refresh.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_show_time")
}

func TestDemoRefusesNonTerminal(t *testing.T) {
	if isTerminal(os.Stdout) && isTerminal(os.Stdin) {
		t.Skip("running attached to a terminal")
	}
	_, err := execute(t, "--dir", t.TempDir(), "demo")
	assert.ErrorIs(t, err, errNotTerminal)
}
