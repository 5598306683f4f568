package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeed(t *testing.T) {
	f := NewFeed("news", 10, 3)
	assert.Equal(t, 10, f.Len())
	assert.False(t, f.LoadedAll())
	assert.Equal(t, "news #3  (rev 1)", f.Row(2))

	f.NextPage()
	f.NextPage()
	f.NextPage()
	assert.Equal(t, 30, f.Len())
	assert.True(t, f.LoadedAll())

	f.Refresh()
	assert.Equal(t, 10, f.Len())
	assert.Equal(t, "news #1  (rev 2)", f.Row(0))
}

func TestFeedClampsSizes(t *testing.T) {
	f := NewFeed("x", 0, -1)
	assert.Equal(t, 1, f.Len())
	assert.True(t, f.LoadedAll())
}

func TestDefaultRenderers(t *testing.T) {
	r := DefaultRenderers(DefaultStyles(), func() string { return "*" })
	assert.Contains(t, r.RefreshIdle(), CaptionRefreshIdle)
	assert.Contains(t, r.WillRefresh(), CaptionWillRefresh)
	assert.True(t, strings.HasPrefix(r.Refreshing(), "* "))
	assert.Contains(t, r.Refreshing(), CaptionRefreshing)
	assert.True(t, strings.HasPrefix(r.Infiniting(), "* "))
	assert.Contains(t, r.InfiniteIdle(), CaptionInfiniteIdle)
	assert.Contains(t, r.WillInfinite(), CaptionWillInfinite)
	assert.Contains(t, r.InfiniteLoadedAll(), CaptionInfiniteLoadedAll)
	assert.Contains(t, r.EmptyRow(), CaptionEmpty)

	plain := DefaultRenderers(DefaultStyles(), nil)
	assert.False(t, strings.HasPrefix(plain.Refreshing(), "* "))
}
